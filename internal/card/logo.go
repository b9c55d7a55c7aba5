// Copyright (c) 2026 WSO2 LLC. (https://www.wso2.com).
//
// WSO2 LLC. licenses this file to you under the Apache License,
// Version 2.0 (the "License"); you may not use this file except
// in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package card

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// maxLogoPixels bounds the decoded logo area. The logo ends up at a fifth of the
// QR width, so anything larger only costs memory.
const maxLogoPixels = 4096 * 4096

// decodeLogo decodes raw logo bytes. It returns false when there is no logo or
// the bytes are not a supported image; the caller then skips the overlay.
func decodeLogo(data []byte, logger *zap.Logger) (image.Image, bool) {
	if len(data) == 0 {
		return nil, false
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		logger.Warn("Logo could not be decoded, skipping overlay",
			zap.Error(err),
			zap.Int("logo_bytes", len(data)),
		)
		return nil, false
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > maxLogoPixels {
		logger.Warn("Logo dimensions out of range, skipping overlay",
			zap.String("format", format),
			zap.Int("width", cfg.Width),
			zap.Int("height", cfg.Height),
			zap.Int("max_pixels", maxLogoPixels),
		)
		return nil, false
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		logger.Warn("Logo could not be decoded, skipping overlay",
			zap.Error(err),
			zap.Int("logo_bytes", len(data)),
		)
		return nil, false
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		logger.Warn("Logo has empty bounds, skipping overlay", zap.String("format", format))
		return nil, false
	}

	logger.Debug("Logo decoded",
		zap.String("format", format),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
	)
	return img, true
}

// circularLogo resizes logo to size x size with a Lanczos filter and masks it to
// the inscribed circle. Pixels outside the circle are fully transparent.
func circularLogo(logo image.Image, size int) image.Image {
	resized := imaging.Resize(logo, size, size, imaging.Lanczos)

	dc := gg.NewContext(size, size)
	half := float64(size) / 2
	dc.DrawCircle(half, half, half)
	dc.Clip()
	dc.DrawImage(resized, 0, 0)
	return dc.Image()
}

// overlayLogo draws the circular logo centred on qr, sized to 1/scale of the QR
// width, and returns the square it occupies. A zero rectangle means nothing was drawn.
func overlayLogo(qr *image.RGBA, logo image.Image, scale int) image.Rectangle {
	w, h := qr.Bounds().Dx(), qr.Bounds().Dy()
	size := w / scale
	if size <= 0 {
		return image.Rectangle{}
	}

	pos := image.Pt((w-size)/2, (h-size)/2)
	dc := gg.NewContextForRGBA(qr)
	dc.DrawImage(circularLogo(logo, size), pos.X, pos.Y)
	return image.Rectangle{Min: pos, Max: pos.Add(image.Pt(size, size))}
}
