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
	"image"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Layout records where each stage placed its output on the final canvas.
type Layout struct {
	Width   int
	Height  int
	QR      image.Rectangle
	Logo    image.Rectangle
	Caption image.Rectangle
	// Border is the outer edge of the border stroke.
	Border image.Rectangle
}

// textBox is the ink bounding box of a caption relative to its origin on the baseline.
type textBox struct {
	bounds fixed.Rectangle26_6
	width  int
	height int
}

func measureCaption(face font.Face, caption string) textBox {
	if caption == "" {
		return textBox{}
	}
	b, _ := font.BoundString(face, caption)
	return textBox{
		bounds: b,
		width:  (b.Max.X - b.Min.X).Ceil(),
		height: (b.Max.Y - b.Min.Y).Ceil(),
	}
}

// compose stacks the caption above the QR image on a canvas of the QR's width.
// The caption ink box is centred horizontally with its top at style.TextTop.
func compose(qr image.Image, caption string, face font.Face, style Style) (*gg.Context, image.Rectangle, textBox) {
	qrW, qrH := qr.Bounds().Dx(), qr.Bounds().Dy()
	tb := measureCaption(face, caption)

	dc := gg.NewContext(qrW, qrH+tb.height+style.TextGap)
	dc.SetColor(style.Background)
	dc.Clear()

	var inkBox image.Rectangle
	if tb.width > 0 {
		textX := (qrW - tb.width) / 2
		dc.SetFontFace(face)
		dc.SetColor(style.Accent)
		dc.DrawString(caption,
			float64(textX)-fixedToFloat(tb.bounds.Min.X),
			float64(style.TextTop)-fixedToFloat(tb.bounds.Min.Y),
		)
		inkBox = image.Rect(textX, style.TextTop, textX+tb.width, style.TextTop+tb.height)
	}

	dc.DrawImage(qr, 0, tb.height+style.TextGap)
	return dc, inkBox, tb
}

// frameCard pads the composition, surrounds it with a blank margin and strokes a
// rounded border whose outer edge sits on the margin boundary. The stroke lies
// entirely inside the padding band.
func frameCard(comp image.Image, style Style) (*gg.Context, image.Rectangle) {
	cw, ch := comp.Bounds().Dx(), comp.Bounds().Dy()
	inset := style.Margin + style.Padding

	dc := gg.NewContext(cw+2*inset, ch+2*inset)
	dc.SetColor(style.Background)
	dc.Clear()
	dc.DrawImage(comp, inset, inset)

	border := image.Rect(style.Margin, style.Margin, style.Margin+cw+2*style.Padding, style.Margin+ch+2*style.Padding)
	if style.BorderWidth > 0 {
		bw := float64(style.BorderWidth)
		dc.SetColor(style.Accent)
		dc.SetLineWidth(bw)
		dc.DrawRoundedRectangle(
			float64(border.Min.X)+bw/2,
			float64(border.Min.Y)+bw/2,
			float64(border.Dx())-bw,
			float64(border.Dy())-bw,
			math.Max(float64(style.CornerRadius)-bw/2, 0),
		)
		dc.Stroke()
	}

	return dc, border
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
