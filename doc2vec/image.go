// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package doc2vec

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/h2non/filetype"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"cogentcore.org/vecdoc/base/fingerprint"
	"cogentcore.org/vecdoc/document"
	"cogentcore.org/vecdoc/vector"
)

// image lowers an encoded image payload. The format tag and pixel
// size are taken from the document when present and probed from the
// payload otherwise; the content fingerprint is precomputed over the
// bytes.
func (p *Pass) image(v *document.ImageItem) fingerprint.Fingerprint {
	format := v.Format
	if format == "" {
		format = SniffImageFormat(v.Data)
	}
	w, h := v.PixelW, v.PixelH
	if w == 0 || h == 0 {
		w, h = ProbeImageSize(v.Data, format)
	}

	var attrs []vector.ImageAttr
	if v.Alt != "" {
		attrs = append(attrs, vector.ImageAttr{Kind: vector.ImageAttrAlt, Value: v.Alt})
	}
	if v.Rendering != "" {
		attrs = append(attrs, vector.ImageAttr{Kind: vector.ImageAttrRendering, Value: v.Rendering})
	}

	return p.Intern(vector.ImageItem{
		Image: vector.Image{
			Data:   v.Data,
			Format: format,
			Size:   vector.Axes[uint32]{X: w, Y: h},
			Hash:   fingerprint.Hash128(v.Data),
			Attrs:  attrs,
		},
		Size: vector.Sz(float32(v.Size.W), float32(v.Size.H)),
	})
}

// SniffImageFormat classifies an encoded image payload, returning the
// vector IR format tag.
func SniffImageFormat(data []byte) string {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '<' {
		return "svg+xml"
	}
	t, err := filetype.Match(data)
	if err != nil {
		return ""
	}
	switch t.Extension {
	case "png":
		return "png"
	case "jpg":
		return "jpeg"
	case "gif":
		return "gif"
	case "webp":
		return "webp"
	case "tif":
		return "tiff"
	}
	return ""
}

// ProbeImageSize decodes only the header of an encoded image to get
// its pixel size, returning zeros when the payload cannot be probed.
func ProbeImageSize(data []byte, format string) (w, h uint32) {
	switch format {
	case "png", "jpeg", "gif":
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return 0, 0
		}
		return uint32(cfg.Width), uint32(cfg.Height)
	case "webp":
		cfg, err := webp.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return 0, 0
		}
		return uint32(cfg.Width), uint32(cfg.Height)
	case "tiff":
		cfg, err := tiff.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return 0, 0
		}
		return uint32(cfg.Width), uint32(cfg.Height)
	}
	return 0, 0
}
