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

package http

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// logoFilePrefix marks temporary logo files written by this service.
const logoFilePrefix = "qrcard-logo-"

// spoolLogo copies an uploaded logo into a uniquely named file under dir.
// The returned cleanup removes the file and is safe to call on every path.
func spoolLogo(src io.Reader, dir string) (path string, cleanup func(), err error) {
	if dir == "" {
		dir = os.TempDir()
	}
	path = filepath.Join(dir, logoFilePrefix+uuid.NewString())

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", func() {}, fmt.Errorf("create temp logo file: %w", err)
	}
	cleanup = func() { _ = os.Remove(path) }

	if _, err := io.Copy(f, src); err != nil {
		_ = f.Close()
		cleanup()
		return "", func() {}, fmt.Errorf("write temp logo file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", func() {}, fmt.Errorf("close temp logo file: %w", err)
	}
	return path, cleanup, nil
}
