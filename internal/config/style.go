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

package config

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wso2-open-operations/common-tools/operations/qr-card-generator/internal/card"
)

// styleFile mirrors card.Style in YAML. Absent keys stay nil and keep the base value.
type styleFile struct {
	ModuleSize   *int     `yaml:"module_size"`
	QuietZone    *int     `yaml:"quiet_zone"`
	RadiusRatio  *float64 `yaml:"radius_ratio"`
	Shape        *string  `yaml:"shape"`
	Foreground   *string  `yaml:"foreground"`
	Background   *string  `yaml:"background"`
	Accent       *string  `yaml:"accent"`
	FontPath     *string  `yaml:"font_path"`
	FontSize     *float64 `yaml:"font_size"`
	TextTop      *int     `yaml:"text_top"`
	TextGap      *int     `yaml:"text_gap"`
	Padding      *int     `yaml:"padding"`
	Margin       *int     `yaml:"margin"`
	BorderWidth  *int     `yaml:"border_width"`
	CornerRadius *int     `yaml:"corner_radius"`
	LogoScale    *int     `yaml:"logo_scale"`
}

// LoadStyleFile reads a YAML style file and applies it on top of base.
//
// Example:
//
//	shape: circle
//	radius_ratio: 0.45
//	accent: "#FFBF00"
//	font_path: /usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf
func LoadStyleFile(path string, base card.Style) (card.Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return card.Style{}, fmt.Errorf("read style file: %w", err)
	}
	return ParseStyle(data, base)
}

// ParseStyle applies YAML style data on top of base.
func ParseStyle(data []byte, base card.Style) (card.Style, error) {
	var f styleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return card.Style{}, fmt.Errorf("parse style file: %w", err)
	}

	s := base
	setInt(&s.ModuleSize, f.ModuleSize)
	setInt(&s.QuietZone, f.QuietZone)
	setInt(&s.TextTop, f.TextTop)
	setInt(&s.TextGap, f.TextGap)
	setInt(&s.Padding, f.Padding)
	setInt(&s.Margin, f.Margin)
	setInt(&s.BorderWidth, f.BorderWidth)
	setInt(&s.CornerRadius, f.CornerRadius)
	setInt(&s.LogoScale, f.LogoScale)
	if f.RadiusRatio != nil {
		s.RadiusRatio = *f.RadiusRatio
	}
	if f.FontSize != nil {
		s.FontSize = *f.FontSize
	}
	if f.Shape != nil {
		s.Shape = *f.Shape
	}
	if f.FontPath != nil {
		s.FontPath = *f.FontPath
	}

	for _, c := range []struct {
		name string
		hex  *string
		dst  *color.RGBA
	}{
		{"foreground", f.Foreground, &s.Foreground},
		{"background", f.Background, &s.Background},
		{"accent", f.Accent, &s.Accent},
	} {
		if c.hex == nil {
			continue
		}
		v, err := card.ParseHexColor(*c.hex)
		if err != nil {
			return card.Style{}, fmt.Errorf("style %s: %w", c.name, err)
		}
		*c.dst = v
	}

	return s, nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
