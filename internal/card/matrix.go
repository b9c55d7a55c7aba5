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

	"github.com/skip2/go-qrcode"
)

// Matrix is a square grid of QR modules, true meaning dark.
// Modules already includes QuietZone light modules on every side.
type Matrix struct {
	Modules   [][]bool
	Version   int
	QuietZone int
}

// Size returns the number of modules along one side, quiet zone included.
func (m *Matrix) Size() int {
	return len(m.Modules)
}

// Dark reports whether the module at (col, row) is dark.
func (m *Matrix) Dark(col, row int) bool {
	return m.Modules[row][col]
}

// EncodeMatrix encodes content at error-correction level H, letting the encoder
// pick the smallest version that fits, and surrounds it with quietZone light modules.
func EncodeMatrix(content string, quietZone int) (*Matrix, error) {
	if content == "" {
		return nil, ErrEmptyURL
	}
	if quietZone < 0 {
		quietZone = 0
	}

	q, err := qrcode.New(content, qrcode.Highest)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	q.DisableBorder = true

	bitmap := q.Bitmap()
	n := len(bitmap) + 2*quietZone
	modules := make([][]bool, n)
	for row := range modules {
		modules[row] = make([]bool, n)
	}
	for row, line := range bitmap {
		copy(modules[row+quietZone][quietZone:], line)
	}

	return &Matrix{
		Modules:   modules,
		Version:   q.VersionNumber,
		QuietZone: quietZone,
	}, nil
}
