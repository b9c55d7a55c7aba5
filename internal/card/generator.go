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

// Package card renders styled QR cards: a dot-patterned QR code with an optional
// circular logo, a caption above it, and a rounded amber border around both.
//
// Generation is a linear pipeline run synchronously per call:
//
//  1. EncodeMatrix builds the module grid at error-correction level H.
//  2. RenderMatrix paints it with a pluggable ModuleDrawer (circles by default).
//  3. The logo, when present and decodable, is masked to a circle and centred.
//  4. The caption is laid out above the code and the card border is drawn.
//
// A Generator holds only immutable state and can be shared by concurrent callers.
package card

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

// Request is the input of a single card generation.
type Request struct {
	URL     string
	Caption string
	// Logo holds raw image bytes; nil or undecodable data yields a card without a logo.
	Logo []byte
	// RadiusRatio overrides the style's ratio for this call when non-zero.
	RadiusRatio float64
}

// Card is a rendered card together with the layout decided while rendering it.
type Card struct {
	Image  *image.RGBA
	Layout Layout
	Matrix *Matrix
}

// Service generates PNG-encoded QR cards.
type Service interface {
	Generate(req Request) ([]byte, error)
}

// Generator renders QR cards for a fixed Style.
type Generator struct {
	style  Style
	drawer ModuleDrawer
	font   *captionFont
	logger *zap.Logger
}

// New validates style, resolves its module drawer and loads the caption font.
// A missing or unreadable font file is not an error.
func New(style Style, logger *zap.Logger) (*Generator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := style.Validate(); err != nil {
		return nil, err
	}

	drawer, err := NewDrawer(style.Shape, style.RadiusRatio)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStyle, err)
	}

	f, err := loadCaptionFont(style.FontPath, style.FontSize, logger)
	if err != nil {
		return nil, err
	}

	logger.Debug("Card generator initialized",
		zap.String("shape", style.Shape),
		zap.Float64("radius_ratio", style.RadiusRatio),
		zap.Int("module_size", style.ModuleSize),
		zap.String("font", f.source),
	)

	return &Generator{
		style:  style,
		drawer: drawer,
		font:   f,
		logger: logger,
	}, nil
}

// Style returns the style the generator was built with.
func (g *Generator) Style() Style {
	return g.style
}

// FontSource reports the font file in use, or "goregular" when the fallback is active.
func (g *Generator) FontSource() string {
	return g.font.source
}

// Render runs the full pipeline and returns the card image with its layout.
func (g *Generator) Render(req Request) (*Card, error) {
	drawer := g.drawer
	if req.RadiusRatio != 0 && req.RadiusRatio != g.style.RadiusRatio {
		d, err := NewDrawer(g.style.Shape, req.RadiusRatio)
		if err != nil {
			return nil, err
		}
		drawer = d
	}

	g.logger.Debug("Encoding QR matrix",
		zap.Int("url_length", len(req.URL)),
		zap.String("recovery_level", "Highest"),
	)
	m, err := EncodeMatrix(req.URL, g.style.QuietZone)
	if err != nil {
		g.logger.Warn("QR encoding failed", zap.Error(err), zap.Int("url_length", len(req.URL)))
		return nil, err
	}

	qr := RenderMatrix(m, g.style, drawer)
	g.logger.Debug("QR matrix rendered",
		zap.Int("version", m.Version),
		zap.Int("modules", m.Size()),
		zap.Int("qr_width", qr.Bounds().Dx()),
	)

	var logoRect image.Rectangle
	if logo, ok := decodeLogo(req.Logo, g.logger); ok {
		logoRect = overlayLogo(qr, logo, g.style.LogoScale)
	}

	face, err := g.font.newFace()
	if err != nil {
		return nil, err
	}
	defer face.Close()

	comp, captionRect, tb := compose(qr, req.Caption, face, g.style)
	final, border := frameCard(comp.Image(), g.style)

	img, ok := final.Image().(*image.RGBA)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected surface type %T", ErrRendering, final.Image())
	}

	inset := image.Pt(g.style.Margin+g.style.Padding, g.style.Margin+g.style.Padding)
	qrOrigin := inset.Add(image.Pt(0, tb.height+g.style.TextGap))
	layout := Layout{
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
		QR:     qr.Bounds().Add(qrOrigin),
		Border: border,
	}
	if !captionRect.Empty() {
		layout.Caption = captionRect.Add(inset)
	}
	if !logoRect.Empty() {
		layout.Logo = logoRect.Add(qrOrigin)
	}

	return &Card{Image: img, Layout: layout, Matrix: m}, nil
}

// Generate renders the card and encodes it as PNG.
func (g *Generator) Generate(req Request) ([]byte, error) {
	c, err := g.Render(req)
	if err != nil {
		return nil, err
	}

	png, err := EncodePNG(c.Image)
	if err != nil {
		g.logger.Error("Failed to encode card PNG", zap.Error(err))
		return nil, err
	}

	g.logger.Debug("QR card generated",
		zap.String("dimensions", fmt.Sprintf("%dx%d", c.Layout.Width, c.Layout.Height)),
		zap.Int("output_size_bytes", len(png)),
		zap.Bool("logo", !c.Layout.Logo.Empty()),
	)
	return png, nil
}

// EncodePNG encodes img losslessly.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("%w: encode png: %w", ErrRendering, err)
	}
	return buf.Bytes(), nil
}
