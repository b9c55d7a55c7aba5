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

// Package config provides configuration management for the QR card service.
// Service settings come from environment variables (optionally seeded from a
// .env file); card styling can additionally be read from a YAML style file.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/wso2-open-operations/common-tools/operations/qr-card-generator/internal/card"
)

// ErrParsingConfig is returned when environment variables cannot be parsed into Config.
var ErrParsingConfig = errors.New("failed to parse environment variables into config")

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
	MaxBodySize     int64         `env:"MAX_BODY_SIZE" envDefault:"5242880"`
	// TempDir holds uploaded logos for the lifetime of one request. Empty means os.TempDir().
	TempDir   string `env:"LOGO_TEMP_DIR"`
	StyleFile string `env:"STYLE_FILE"`

	Style StyleOverrides
}

// StyleOverrides are individual style settings taken from the environment.
// Zero values leave the corresponding style field unchanged.
type StyleOverrides struct {
	ModuleSize  int     `env:"QR_MODULE_SIZE"`
	RadiusRatio float64 `env:"QR_RADIUS_RATIO"`
	Shape       string  `env:"QR_SHAPE"`
	FontPath    string  `env:"CARD_FONT_PATH"`
	FontSize    float64 `env:"CARD_FONT_SIZE"`
	AccentColor string  `env:"CARD_ACCENT_COLOR"`
}

// LoadConfig loads the optional .env file and parses the environment into a Config.
// A missing .env file is not an error.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse parses the current environment into a Config without touching .env files.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParsingConfig, err)
	}
	if cfg.MaxBodySize <= 0 {
		return nil, fmt.Errorf("%w: MAX_BODY_SIZE must be > 0", ErrParsingConfig)
	}
	return &cfg, nil
}

// CardStyle resolves the card style: defaults, then the style file, then
// environment overrides. The result is validated.
func (c *Config) CardStyle() (card.Style, error) {
	style := card.DefaultStyle()
	if c.StyleFile != "" {
		var err error
		style, err = LoadStyleFile(c.StyleFile, style)
		if err != nil {
			return card.Style{}, err
		}
	}

	style, err := c.Style.Apply(style)
	if err != nil {
		return card.Style{}, err
	}
	if err := style.Validate(); err != nil {
		return card.Style{}, err
	}
	return style, nil
}

// Apply copies every non-zero override onto style.
func (o StyleOverrides) Apply(style card.Style) (card.Style, error) {
	if o.ModuleSize != 0 {
		style.ModuleSize = o.ModuleSize
	}
	if o.RadiusRatio != 0 {
		style.RadiusRatio = o.RadiusRatio
	}
	if o.Shape != "" {
		style.Shape = o.Shape
	}
	if o.FontPath != "" {
		style.FontPath = o.FontPath
	}
	if o.FontSize != 0 {
		style.FontSize = o.FontSize
	}
	if o.AccentColor != "" {
		c, err := card.ParseHexColor(o.AccentColor)
		if err != nil {
			return card.Style{}, err
		}
		style.Accent = c
	}
	return style, nil
}
