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

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wso2-open-operations/common-tools/operations/qr-card-generator/internal/card"
	"github.com/wso2-open-operations/common-tools/operations/qr-card-generator/internal/config"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	url       string  // content encoded in the QR code
	caption   string  // text drawn above the code
	logo      string  // optional logo image path
	radius    float64 // module radius ratio, 0 keeps the style value
	shape     string  // module shape, empty keeps the style value
	styleFile string  // YAML style file
	fontPath  string  // caption font, empty keeps the style value
	output    string  // PNG destination
}

func newGenerateCmd(root *rootOpts) *cobra.Command {
	opts := generateOpts{output: "qr_card.png"}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render a QR card to a PNG file",
		Example: `  qrcard generate --url https://example.com --caption "SCAN ME"
  qrcard generate --url https://wso2.com --caption WSO2 --logo logo.png --radius 0.4 --out wso2.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts, root.log)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.url, "url", "u", "", "URL or text to encode (required)")
	f.StringVarP(&opts.caption, "caption", "t", "", "caption drawn above the code")
	f.StringVarP(&opts.logo, "logo", "l", "", "logo image placed in the centre of the code")
	f.Float64VarP(&opts.radius, "radius", "r", 0, "module radius ratio in (0, 1]")
	f.StringVar(&opts.shape, "shape", "", "module shape: "+strings.Join(card.Shapes(), ", "))
	f.StringVar(&opts.styleFile, "style", "", "YAML style file")
	f.StringVar(&opts.fontPath, "font", "", "caption font file (TTF/OTF)")
	f.StringVarP(&opts.output, "out", "o", opts.output, "output PNG path")
	_ = cmd.MarkFlagRequired("url")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts generateOpts, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	style, err := resolveStyle(opts)
	if err != nil {
		return err
	}

	gen, err := card.New(style, log)
	if err != nil {
		return fmt.Errorf("create card generator: %w", err)
	}

	req := card.Request{URL: opts.url, Caption: opts.caption, RadiusRatio: opts.radius}
	if opts.logo != "" {
		logo, err := os.ReadFile(opts.logo)
		if err != nil {
			log.Warn("Logo not found, skipping", zap.String("path", opts.logo), zap.Error(err))
		} else {
			req.Logo = logo
		}
	}

	png, err := gen.Generate(req)
	if err != nil {
		return fmt.Errorf("generate card: %w", err)
	}
	if err := os.WriteFile(opts.output, png, 0o644); err != nil {
		return fmt.Errorf("write card: %w", err)
	}

	log.Info("QR card written",
		zap.String("path", opts.output),
		zap.Int("bytes", len(png)),
		zap.String("font", gen.FontSource()),
	)
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "QR card generated: %s\n", opts.output)
	return err
}

// resolveStyle layers the style sources: defaults, style file, environment, flags.
func resolveStyle(opts generateOpts) (card.Style, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return card.Style{}, err
	}
	if opts.styleFile != "" {
		cfg.StyleFile = opts.styleFile
	}

	style, err := cfg.CardStyle()
	if err != nil {
		return card.Style{}, err
	}
	if opts.shape != "" {
		style.Shape = opts.shape
	}
	if opts.fontPath != "" {
		style.FontPath = opts.fontPath
	}
	return style, style.Validate()
}
