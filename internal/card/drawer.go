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
	"math"
	"sort"

	"github.com/fogleman/gg"
)

// Module shape names accepted by NewDrawer.
const (
	ShapeCircle  = "circle"
	ShapeSquare  = "square"
	ShapeRounded = "rounded"
	ShapeDiamond = "diamond"
)

// Box is the pixel rectangle addressed by a drawer call. It may cover a single
// module or a merged run of modules.
type Box struct {
	X0, Y0, X1, Y1 float64
}

// CellBox returns the box of the module at (col, row) for the given module size.
func CellBox(col, row, size int) Box {
	return Box{
		X0: float64(col * size),
		Y0: float64(row * size),
		X1: float64((col + 1) * size),
		Y1: float64((row + 1) * size),
	}
}

// Center returns the midpoint of the box.
func (b Box) Center() (float64, float64) {
	return (b.X0 + b.X1) / 2, (b.Y0 + b.Y1) / 2
}

// Short returns the shorter side of the box.
func (b Box) Short() float64 {
	return math.Min(b.X1-b.X0, b.Y1-b.Y0)
}

// ModuleDrawer paints one module box onto dc using dc's current colour.
// Implementations must do nothing for inactive boxes.
type ModuleDrawer interface {
	Draw(dc *gg.Context, box Box, active bool)
}

// CircleDrawer paints each dark module as a disc of radius Short()*RadiusRatio.
// Ratios above ~0.71 make neighbouring discs merge into a solid fill.
type CircleDrawer struct {
	RadiusRatio float64
}

func (d CircleDrawer) Draw(dc *gg.Context, box Box, active bool) {
	if !active {
		return
	}
	x, y := box.Center()
	dc.DrawCircle(x, y, box.Short()*d.RadiusRatio)
	dc.Fill()
}

// SquareDrawer paints dark modules as full squares.
type SquareDrawer struct{}

func (SquareDrawer) Draw(dc *gg.Context, box Box, active bool) {
	if !active {
		return
	}
	dc.DrawRectangle(box.X0, box.Y0, box.X1-box.X0, box.Y1-box.Y0)
	dc.Fill()
}

// RoundedSquareDrawer paints dark modules as full squares whose corner radius is
// Short()*RadiusRatio, capped at half the shorter side.
type RoundedSquareDrawer struct {
	RadiusRatio float64
}

func (d RoundedSquareDrawer) Draw(dc *gg.Context, box Box, active bool) {
	if !active {
		return
	}
	r := math.Min(box.Short()*d.RadiusRatio, box.Short()/2)
	dc.DrawRoundedRectangle(box.X0, box.Y0, box.X1-box.X0, box.Y1-box.Y0, r)
	dc.Fill()
}

// DiamondDrawer paints dark modules as a square rotated 45 degrees whose
// half-diagonal is Short()*RadiusRatio.
type DiamondDrawer struct {
	RadiusRatio float64
}

func (d DiamondDrawer) Draw(dc *gg.Context, box Box, active bool) {
	if !active {
		return
	}
	x, y := box.Center()
	r := box.Short() * d.RadiusRatio
	dc.MoveTo(x, y-r)
	dc.LineTo(x+r, y)
	dc.LineTo(x, y+r)
	dc.LineTo(x-r, y)
	dc.ClosePath()
	dc.Fill()
}

var drawerFactories = map[string]func(ratio float64) ModuleDrawer{
	ShapeCircle:  func(r float64) ModuleDrawer { return CircleDrawer{RadiusRatio: r} },
	ShapeSquare:  func(float64) ModuleDrawer { return SquareDrawer{} },
	ShapeRounded: func(r float64) ModuleDrawer { return RoundedSquareDrawer{RadiusRatio: r} },
	ShapeDiamond: func(r float64) ModuleDrawer { return DiamondDrawer{RadiusRatio: r} },
}

// NewDrawer returns the module drawer registered for shape.
func NewDrawer(shape string, ratio float64) (ModuleDrawer, error) {
	if ratio <= 0 || ratio > 1 {
		return nil, fmt.Errorf("%w, got %g", ErrInvalidRadius, ratio)
	}
	factory, ok := drawerFactories[shape]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownShape, shape)
	}
	return factory(ratio), nil
}

// Shapes lists the registered shape names in sorted order.
func Shapes() []string {
	names := make([]string, 0, len(drawerFactories))
	for name := range drawerFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
