// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package agenda

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

// DateLayout is the key format of Holidays.
const DateLayout = "2006-01-02"

// Holidays maps "YYYY-MM-DD" to the name of the holiday.
type Holidays map[string]string

// Has reports whether the calendar day of t is a holiday.
func (h Holidays) Has(t time.Time) bool {
	_, ok := h[t.Format(DateLayout)]
	return ok
}

// LoadHolidays reads a holiday file. A missing file is an empty set.
func LoadHolidays(path string) (Holidays, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Holidays{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("agenda: %w", err)
	}
	h := Holidays{}
	if err := json.Unmarshal(b, &h); err != nil {
		return nil, fmt.Errorf("agenda: %s: %w", path, err)
	}
	return h, nil
}
