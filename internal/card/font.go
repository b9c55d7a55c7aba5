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
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// fallbackFontName identifies the embedded face used when the configured font is unavailable.
const fallbackFontName = "goregular"

// captionFont is a parsed font shared read-only between calls.
// Faces hold per-call glyph buffers, so each call creates its own.
type captionFont struct {
	font   *opentype.Font
	size   float64
	source string
}

// loadCaptionFont parses the font at path. Any failure is logged and the embedded
// Go Regular font is used instead; only a broken embedded font is an error.
func loadCaptionFont(path string, size float64, logger *zap.Logger) (*captionFont, error) {
	if path != "" {
		f, err := parseFontFile(path)
		if err == nil {
			logger.Debug("Caption font loaded", zap.String("path", path), zap.Float64("size", size))
			return &captionFont{font: f, size: size, source: path}, nil
		}
		logger.Warn("Caption font unavailable, using embedded fallback",
			zap.String("path", path),
			zap.Error(err),
		)
	}

	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("%w: parse fallback font: %w", ErrRendering, err)
	}
	return &captionFont{font: f, size: size, source: fallbackFontName}, nil
}

func parseFontFile(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return opentype.Parse(data)
}

// newFace returns a fresh face for a single generation call.
func (c *captionFont) newFace() (font.Face, error) {
	face, err := opentype.NewFace(c.font, &opentype.FaceOptions{
		Size:    c.size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create font face: %w", ErrRendering, err)
	}
	return face, nil
}
