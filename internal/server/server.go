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

// Package server wires configuration, the card generator and the HTTP transport
// into a running service with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wso2-open-operations/common-tools/operations/qr-card-generator/internal/card"
	"github.com/wso2-open-operations/common-tools/operations/qr-card-generator/internal/config"
	transport "github.com/wso2-open-operations/common-tools/operations/qr-card-generator/internal/transport/http"
)

// New builds the HTTP server for cfg around svc.
func New(cfg *config.Config, svc card.Service, logger *zap.Logger) *http.Server {
	h := transport.NewHandler(svc, logger, cfg.MaxBodySize, cfg.TempDir)
	logger.Debug("HTTP handler initialized", zap.Int64("max_body_size", cfg.MaxBodySize))

	// Configure HTTP server with timeouts and security settings
	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           transport.NewRouter(h, logger),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}
}

// Run resolves the card style, starts the service and blocks until ctx is
// cancelled, then shuts down within cfg.ShutdownTimeout.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	style, err := cfg.CardStyle()
	if err != nil {
		return fmt.Errorf("resolve card style: %w", err)
	}

	gen, err := card.New(style, logger)
	if err != nil {
		return fmt.Errorf("create card generator: %w", err)
	}
	logger.Debug("Card generator initialized", zap.String("font", gen.FontSource()))

	return Serve(ctx, New(cfg, gen, logger), cfg.ShutdownTimeout, logger)
}

// Serve runs srv until ctx is cancelled or the listener fails.
func Serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *zap.Logger) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed to start: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down server...", zap.Duration("timeout", shutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server forced to shutdown", zap.Error(err))
			if errors.Is(err, context.DeadlineExceeded) {
				logger.Warn("Shutdown timeout exceeded, closing connections")
				_ = srv.Close()
			}
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Server exited gracefully")
	return nil
}
