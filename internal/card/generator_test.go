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

package card_test

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wso2-open-operations/common-tools/operations/qr-card-generator/internal/card"
)

func testStyle() card.Style {
	style := card.DefaultStyle()
	// Always use the embedded font so output does not depend on the host.
	style.FontPath = ""
	return style
}

func newGenerator(t *testing.T) *card.Generator {
	t.Helper()
	g, err := card.New(testStyle(), zap.NewNop())
	require.NoError(t, err)
	return g
}

func decodeQR(t *testing.T, img image.Image) string {
	t.Helper()
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	require.NoError(t, err, "creating bitmap")

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	result, err := qrcode.NewQRCodeReader().Decode(bmp, hints)
	require.NoError(t, err, "no QR code found in image")
	return result.GetText()
}

func logoPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 30, G: 90, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// hugeLogoPNG returns a tiny PNG whose IHDR declares a 60000x60000 RGBA image.
func hugeLogoPNG() []byte {
	chunk := make([]byte, 4+13)
	copy(chunk, "IHDR")
	binary.BigEndian.PutUint32(chunk[4:], 60000)
	binary.BigEndian.PutUint32(chunk[8:], 60000)
	chunk[12], chunk[13] = 8, 6

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(13))
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func isAmber(c color.RGBA) bool {
	return c.R > 200 && c.G > 140 && c.G < 230 && c.B < 90
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("rejects invalid styles", func(t *testing.T) {
		t.Parallel()
		style := testStyle()
		style.RadiusRatio = 1.5
		_, err := card.New(style, zap.NewNop())
		assert.ErrorIs(t, err, card.ErrInvalidStyle)
		assert.ErrorIs(t, err, card.ErrInvalidRadius)

		style = testStyle()
		style.Shape = "hexagon"
		_, err = card.New(style, zap.NewNop())
		assert.ErrorIs(t, err, card.ErrUnknownShape)

		style = testStyle()
		style.Background = color.RGBA{R: 255, G: 255, B: 255, A: 0x80}
		_, err = card.New(style, zap.NewNop())
		assert.ErrorIs(t, err, card.ErrInvalidStyle)
	})

	t.Run("missing font file falls back to the embedded font", func(t *testing.T) {
		t.Parallel()
		style := testStyle()
		style.FontPath = "/nonexistent/Arial.ttf"
		g, err := card.New(style, nil)
		require.NoError(t, err)
		assert.Equal(t, "goregular", g.FontSource())

		_, err = g.Generate(card.Request{URL: "https://example.com", Caption: "SCAN ME"})
		assert.NoError(t, err)
	})
}

func TestGenerator_Render(t *testing.T) {
	t.Parallel()
	g := newGenerator(t)

	t.Run("scan me card decodes and is framed in amber", func(t *testing.T) {
		t.Parallel()
		c, err := g.Render(card.Request{URL: "https://example.com", Caption: "SCAN ME"})
		require.NoError(t, err)

		assert.Equal(t, "https://example.com", decodeQR(t, imaging.Crop(c.Image, c.Layout.QR)))

		require.False(t, c.Layout.Caption.Empty())
		assert.Less(t, c.Layout.Caption.Max.Y, c.Layout.QR.Min.Y, "caption sits above the code")
		amber := 0
		for y := c.Layout.Caption.Min.Y; y < c.Layout.Caption.Max.Y; y++ {
			for x := c.Layout.Caption.Min.X; x < c.Layout.Caption.Max.X; x++ {
				if isAmber(c.Image.RGBAAt(x, y)) {
					amber++
				}
			}
		}
		assert.Positive(t, amber, "caption is drawn in the accent colour")

		style := g.Style()
		midX := c.Layout.Width / 2
		assert.True(t, isAmber(c.Image.RGBAAt(midX, style.Margin+style.BorderWidth/2)), "top border")
		assert.True(t, isAmber(c.Image.RGBAAt(midX, c.Layout.Height-1-style.Margin-style.BorderWidth/2)), "bottom border")
		assert.Equal(t, style.Background, c.Image.RGBAAt(0, 0), "outer margin stays blank")
	})

	t.Run("dimensions follow the layout formula", func(t *testing.T) {
		t.Parallel()
		style := g.Style()
		c, err := g.Render(card.Request{URL: "https://example.com", Caption: "SCAN ME"})
		require.NoError(t, err)

		qrSide := c.Matrix.Size() * style.ModuleSize
		inset := style.Margin + style.Padding
		assert.Equal(t, qrSide, c.Layout.QR.Dx())
		assert.Equal(t, qrSide, c.Layout.QR.Dy())
		assert.Equal(t, qrSide+2*inset, c.Layout.Width)
		assert.Equal(t, qrSide+c.Layout.Caption.Dy()+style.TextGap+2*inset, c.Layout.Height)
		assert.Equal(t, c.Layout.Width, c.Image.Bounds().Dx())
		assert.Equal(t, c.Layout.Height, c.Image.Bounds().Dy())
	})

	t.Run("empty caption leaves only the gap above the code", func(t *testing.T) {
		t.Parallel()
		style := g.Style()
		c, err := g.Render(card.Request{URL: "https://example.com"})
		require.NoError(t, err)

		assert.True(t, c.Layout.Caption.Empty())
		assert.Equal(t, style.Margin+style.Padding+style.TextGap, c.Layout.QR.Min.Y)
		assert.Equal(t, "https://example.com", decodeQR(t, imaging.Crop(c.Image, c.Layout.QR)))
	})

	t.Run("logo is inset at the centre and the code still decodes", func(t *testing.T) {
		t.Parallel()
		c, err := g.Render(card.Request{URL: "https://example.com", Caption: "SCAN ME", Logo: logoPNG(t)})
		require.NoError(t, err)

		require.False(t, c.Layout.Logo.Empty())
		assert.Equal(t, c.Layout.QR.Dx()/5, c.Layout.Logo.Dx())
		centre := c.Image.RGBAAt(
			(c.Layout.Logo.Min.X+c.Layout.Logo.Max.X)/2,
			(c.Layout.Logo.Min.Y+c.Layout.Logo.Max.Y)/2,
		)
		assert.InDelta(t, 200, centre.B, 3)
		assert.InDelta(t, 30, centre.R, 3)
		assert.Equal(t, "https://example.com", decodeQR(t, imaging.Crop(c.Image, c.Layout.QR)))
	})
}

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()
	g := newGenerator(t)
	req := card.Request{URL: "https://example.com", Caption: "SCAN ME"}

	t.Run("returns a decodable png", func(t *testing.T) {
		t.Parallel()
		out, err := g.Generate(req)
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(out))
		require.NoError(t, err, "result should be a valid PNG image")
		assert.Positive(t, img.Bounds().Dx())
	})

	t.Run("identical inputs give identical bytes", func(t *testing.T) {
		t.Parallel()
		first, err := g.Generate(req)
		require.NoError(t, err)
		second, err := g.Generate(req)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(first, second), "output must be deterministic")
	})

	t.Run("undecodable logo yields the same card as no logo", func(t *testing.T) {
		t.Parallel()
		plain, err := g.Generate(req)
		require.NoError(t, err)

		broken := req
		broken.Logo = []byte("\x89PNG\r\n\x1a\n truncated")
		withBroken, err := g.Generate(broken)
		require.NoError(t, err, "a broken logo must not fail the request")
		assert.True(t, bytes.Equal(plain, withBroken))
	})

	t.Run("logo declaring huge dimensions is skipped", func(t *testing.T) {
		t.Parallel()
		plain, err := g.Generate(req)
		require.NoError(t, err)

		huge := req
		huge.Logo = hugeLogoPNG()
		out, err := g.Generate(huge)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(plain, out))
	})

	t.Run("surrounding whitespace survives the round trip", func(t *testing.T) {
		t.Parallel()
		c, err := g.Render(card.Request{URL: " https://example.com ", Caption: "SCAN ME"})
		require.NoError(t, err)
		assert.Equal(t, " https://example.com ", decodeQR(t, imaging.Crop(c.Image, c.Layout.QR)))
	})

	t.Run("radius override changes the dots", func(t *testing.T) {
		t.Parallel()
		plain, err := g.Generate(req)
		require.NoError(t, err)

		small := req
		small.RadiusRatio = 0.3
		out, err := g.Generate(small)
		require.NoError(t, err)
		assert.False(t, bytes.Equal(plain, out))

		same := req
		same.RadiusRatio = card.DefaultRadiusRatio
		out, err = g.Generate(same)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(plain, out))
	})

	t.Run("rejects radius overrides outside (0, 1]", func(t *testing.T) {
		t.Parallel()
		bad := req
		bad.RadiusRatio = 1.2
		out, err := g.Generate(bad)
		assert.ErrorIs(t, err, card.ErrInvalidRadius)
		assert.Nil(t, out)
	})

	t.Run("returns encoding error for oversized urls", func(t *testing.T) {
		t.Parallel()
		long := card.Request{
			URL:     "https://example.com/?q=" + strings.Repeat("x", 4096),
			Caption: "TOO LONG",
		}
		out, err := g.Generate(long)
		require.Error(t, err)
		assert.ErrorIs(t, err, card.ErrEncoding)
		assert.Nil(t, out, "no partial image is returned")
	})

	t.Run("returns error for empty urls", func(t *testing.T) {
		t.Parallel()
		out, err := g.Generate(card.Request{Caption: "SCAN ME"})
		assert.ErrorIs(t, err, card.ErrEmptyURL)
		assert.Nil(t, out)
	})

	t.Run("concurrent calls are independent", func(t *testing.T) {
		t.Parallel()
		want, err := g.Generate(req)
		require.NoError(t, err)

		const workers = 8
		results := make([][]byte, workers)
		errs := make([]error, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], errs[i] = g.Generate(req)
			}(i)
		}
		wg.Wait()

		for i := 0; i < workers; i++ {
			require.NoError(t, errs[i])
			assert.True(t, bytes.Equal(want, results[i]), "worker %d produced different output", i)
		}
	})
}

func TestGenerator_Shapes(t *testing.T) {
	t.Parallel()

	for _, shape := range []string{card.ShapeSquare, card.ShapeRounded} {
		shape := shape
		t.Run(shape+" modules decode", func(t *testing.T) {
			t.Parallel()
			style := testStyle()
			style.Shape = shape
			g, err := card.New(style, zap.NewNop())
			require.NoError(t, err)

			c, err := g.Render(card.Request{URL: "https://wso2.com", Caption: "WSO2"})
			require.NoError(t, err)
			assert.Equal(t, "https://wso2.com", decodeQR(t, imaging.Crop(c.Image, c.Layout.QR)))
		})
	}
}
