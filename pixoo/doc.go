// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pixoo drives a Divoom Pixoo LED matrix over its local HTTP API.
//
// Every command is a JSON object POSTed to http://<addr>/post. An animation
// is uploaded in three steps:
//
//	{"Command":"Draw/ResetHttpGifId"}
//	{"Command":"Draw/GetHttpGifId"}  -> {"error_code":0,"PicId":N}
//	{"Command":"Draw/SendHttpGif","PicNum":total,"PicWidth":64,
//	 "PicOffset":index,"PicID":N,"PixSpeed":100,"PicData":"<base64 RGB>"}
//
// the last one once per frame, in order. The device only starts playing once
// it received PicNum frames, so a failed upload never shows a partial
// animation.
//
// Dev implements animation.Uploader for multi-frame uploads and
// display.Drawer for still images.
package pixoo
