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

import "errors"

var (
	// ErrEmptyURL is returned when the URL to encode is empty or only whitespace.
	ErrEmptyURL = errors.New("url cannot be empty")

	// ErrEncoding is returned when the QR encoder cannot fit the payload at level H.
	ErrEncoding = errors.New("failed to encode QR matrix")

	// ErrRendering is returned when a drawing or PNG encoding step fails.
	ErrRendering = errors.New("failed to render QR card")

	// ErrInvalidStyle is returned when a Style fails validation.
	ErrInvalidStyle = errors.New("invalid card style")

	// ErrInvalidRadius is returned when a radius ratio is outside (0, 1].
	ErrInvalidRadius = errors.New("radius ratio must be in (0, 1]")

	// ErrUnknownShape is returned when no module drawer is registered for a shape name.
	ErrUnknownShape = errors.New("unknown module shape")

	// ErrInvalidColor is returned when a hex colour string cannot be parsed.
	ErrInvalidColor = errors.New("invalid hex colour")
)
