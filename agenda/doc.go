// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package agenda reads the event and holiday snapshots the dashboard renders.
//
// Events are stored one JSON object per file:
//
//	{
//	  "uid": "1714539600-1714543200-5d41402abc4b2a76b9719d911017c592",
//	  "title": "Team Sync",
//	  "start_time": "2024-05-01T14:00:00+09:00",
//	  "end_time": "2024-05-01T15:00:00+09:00",
//	  "calendar_name": "Work",
//	  "calendar_color": {"r": 72, "g": 176, "b": 213}
//	}
//
// Holidays are a single JSON object mapping "YYYY-MM-DD" to a label.
package agenda
