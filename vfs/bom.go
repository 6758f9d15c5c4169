// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vfs

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

var utf8bom = []byte{0xef, 0xbb, 0xbf}

// DecodeUTF8 decodes source bytes as utf-8, tolerating and removing a
// leading byte order mark. Invalid utf-8 fails with [KindInvalidUTF8];
// the transform decoder alone cannot report this, as it substitutes
// replacement characters.
func DecodeUTF8(path string, data []byte) (string, error) {
	if !utf8.Valid(bytes.TrimPrefix(data, utf8bom)) {
		return "", Errorf(KindInvalidUTF8, path, nil)
	}
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(data)
	if err != nil {
		return "", Errorf(KindInvalidUTF8, path, err)
	}
	return string(out), nil
}
