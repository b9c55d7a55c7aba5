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
	"image/color"
	"strconv"
	"strings"
)

// Default styling values for a generated card.
const (
	DefaultModuleSize   = 12
	DefaultQuietZone    = 4
	DefaultRadiusRatio  = 0.50
	DefaultFontPath     = "/System/Library/Fonts/Supplemental/Arial.ttf"
	DefaultFontSize     = 60
	DefaultTextTop      = 10
	DefaultTextGap      = 40
	DefaultPadding      = 20
	DefaultMargin       = 10
	DefaultBorderWidth  = 5
	DefaultCornerRadius = 20
	DefaultLogoScale    = 5
)

// Amber is the default accent colour used for the caption and the card border.
var Amber = color.RGBA{R: 255, G: 191, B: 0, A: 255}

// Style holds every parameter that shapes the generated card.
// A Style is a plain value; generators copy it and never mutate it.
type Style struct {
	ModuleSize   int
	QuietZone    int
	RadiusRatio  float64
	Shape        string
	Foreground   color.RGBA
	Background   color.RGBA
	Accent       color.RGBA
	FontPath     string
	FontSize     float64
	TextTop      int
	TextGap      int
	Padding      int
	Margin       int
	BorderWidth  int
	CornerRadius int
	LogoScale    int
}

// DefaultStyle returns the amber-on-white card with circular dots.
func DefaultStyle() Style {
	return Style{
		ModuleSize:   DefaultModuleSize,
		QuietZone:    DefaultQuietZone,
		RadiusRatio:  DefaultRadiusRatio,
		Shape:        ShapeCircle,
		Foreground:   color.RGBA{A: 255},
		Background:   color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Accent:       Amber,
		FontPath:     DefaultFontPath,
		FontSize:     DefaultFontSize,
		TextTop:      DefaultTextTop,
		TextGap:      DefaultTextGap,
		Padding:      DefaultPadding,
		Margin:       DefaultMargin,
		BorderWidth:  DefaultBorderWidth,
		CornerRadius: DefaultCornerRadius,
		LogoScale:    DefaultLogoScale,
	}
}

// Validate reports the first invalid field, wrapped in ErrInvalidStyle.
func (s Style) Validate() error {
	switch {
	case s.ModuleSize <= 0:
		return fmt.Errorf("%w: module size must be > 0, got %d", ErrInvalidStyle, s.ModuleSize)
	case s.QuietZone < 0:
		return fmt.Errorf("%w: quiet zone must be >= 0, got %d", ErrInvalidStyle, s.QuietZone)
	case s.RadiusRatio <= 0 || s.RadiusRatio > 1:
		return fmt.Errorf("%w: %w, got %g", ErrInvalidStyle, ErrInvalidRadius, s.RadiusRatio)
	case s.FontSize <= 0:
		return fmt.Errorf("%w: font size must be > 0, got %g", ErrInvalidStyle, s.FontSize)
	case s.TextTop < 0 || s.TextGap < 0:
		return fmt.Errorf("%w: text offsets must be >= 0", ErrInvalidStyle)
	case s.Padding < 0 || s.Margin < 0:
		return fmt.Errorf("%w: padding and margin must be >= 0", ErrInvalidStyle)
	case s.BorderWidth < 0 || s.BorderWidth > s.Padding:
		return fmt.Errorf("%w: border width must be within [0, padding], got %d", ErrInvalidStyle, s.BorderWidth)
	case s.CornerRadius < 0:
		return fmt.Errorf("%w: corner radius must be >= 0, got %d", ErrInvalidStyle, s.CornerRadius)
	case s.Background.A != 0xff:
		return fmt.Errorf("%w: background must be opaque, got %s", ErrInvalidStyle, HexColor(s.Background))
	case s.LogoScale < 1:
		return fmt.Errorf("%w: logo scale must be >= 1, got %d", ErrInvalidStyle, s.LogoScale)
	}
	if _, ok := drawerFactories[s.Shape]; !ok {
		return fmt.Errorf("%w: %w %q", ErrInvalidStyle, ErrUnknownShape, s.Shape)
	}
	return nil
}

// ParseHexColor parses "#RRGGBB", "RRGGBB", "#RGB" or "#RRGGBBAA" into an RGBA colour.
func ParseHexColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// HexColor formats c as "#RRGGBB", appending the alpha byte when it is not opaque.
func HexColor(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
