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

	"github.com/fogleman/gg"
)

// RenderMatrix paints m onto a new background-filled RGBA image, calling drawer
// once per module with the module's pixel box in the foreground colour.
// The quiet zone is part of m and is left as background.
func RenderMatrix(m *Matrix, style Style, drawer ModuleDrawer) *image.RGBA {
	side := m.Size() * style.ModuleSize
	dc := gg.NewContext(side, side)
	dc.SetColor(style.Background)
	dc.Clear()

	dc.SetColor(style.Foreground)
	for row := 0; row < m.Size(); row++ {
		for col := 0; col < m.Size(); col++ {
			drawer.Draw(dc, CellBox(col, row, style.ModuleSize), m.Dark(col, row))
		}
	}

	return dc.Image().(*image.RGBA)
}
