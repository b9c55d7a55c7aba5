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

package server

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wso2-open-operations/common-tools/operations/qr-card-generator/internal/card"
	"github.com/wso2-open-operations/common-tools/operations/qr-card-generator/internal/config"
)

type stubService struct{}

func (stubService) Generate(card.Request) ([]byte, error) { return []byte("png"), nil }

func testConfig() *config.Config {
	return &config.Config{
		Port:            "0",
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		ShutdownTimeout: time.Second,
		MaxBodySize:     1 << 20,
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Port = "9090"
	srv := New(cfg, stubService{}, zap.NewNop())

	assert.Equal(t, ":9090", srv.Addr)
	assert.Equal(t, time.Second, srv.ReadTimeout)
	assert.Equal(t, time.Second, srv.WriteTimeout)
	assert.Equal(t, 2*time.Second, srv.ReadHeaderTimeout)
	assert.Equal(t, 60*time.Second, srv.IdleTimeout)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServe(t *testing.T) {
	t.Run("stops cleanly when the context is cancelled", func(t *testing.T) {
		t.Parallel()

		srv := New(testConfig(), stubService{}, zap.NewNop())
		srv.Addr = "127.0.0.1:0"

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- Serve(ctx, srv, time.Second, zap.NewNop()) }()

		cancel()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("Serve did not return after cancellation")
		}
	})

	t.Run("reports listen failures", func(t *testing.T) {
		t.Parallel()

		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer ln.Close()

		srv := New(testConfig(), stubService{}, zap.NewNop())
		srv.Addr = ln.Addr().String()

		err = Serve(context.Background(), srv, time.Second, zap.NewNop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server failed to start")
	})
}

func TestRunRejectsInvalidStyle(t *testing.T) {
	t.Setenv("QR_SHAPE", "star")

	cfg, err := config.Parse()
	require.NoError(t, err)

	err = Run(context.Background(), cfg, zap.NewNop())
	require.ErrorIs(t, err, card.ErrUnknownShape)
}
