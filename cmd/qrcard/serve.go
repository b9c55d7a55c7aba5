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

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wso2-open-operations/common-tools/operations/qr-card-generator/internal/config"
	"github.com/wso2-open-operations/common-tools/operations/qr-card-generator/internal/logger"
	"github.com/wso2-open-operations/common-tools/operations/qr-card-generator/internal/server"
)

func newServeCmd(root *rootOpts) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the QR card HTTP service",
		Long:  `serve runs the HTTP service configured from the environment (PORT, MAX_BODY_SIZE, STYLE_FILE, ...) until interrupted.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}

			return server.Run(cmd.Context(), cfg, serveLogger(root))
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")
	return cmd
}

// serveLogger returns the debug CLI logger under --verbose, otherwise the
// service logger configured by LOG_ENV and LOG_LEVEL.
func serveLogger(root *rootOpts) *zap.Logger {
	if root.verbose && root.log != nil {
		return root.log
	}
	return logger.InitLogger()
}
