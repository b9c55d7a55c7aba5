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
// KIND, either express or implied. See the License for the
// specific language governing permissions and limitations
// under the License.

// Package logger provides centralized logging configuration for the QR card service.
package logger

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger is the process-wide logger, set by InitLogger.
	Logger *zap.Logger

	initOnce sync.Once
	levelMap = map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	}
)

// InitLogger initializes Logger from LOG_ENV (dev/prod) and LOG_LEVEL (debug/info/warn/error)
// and returns it. Subsequent calls return the same logger.
func InitLogger() *zap.Logger {
	initOnce.Do(func() {
		Logger = New(os.Getenv("LOG_ENV"), os.Getenv("LOG_LEVEL"))
		Logger.Info("Logger initialized",
			zap.String("LOG_ENV", os.Getenv("LOG_ENV")),
			zap.String("LOG_LEVEL", levelFromString(os.Getenv("LOG_LEVEL")).String()),
		)
	})
	return Logger
}

// New builds a logger without touching the package-level Logger.
// Production uses JSON output for structured log parsing; anything else uses
// the human-readable console encoder.
func New(logEnv, logLevel string) *zap.Logger {
	var cfg zap.Config
	if logEnv == "prod" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(levelFromString(logLevel))

	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// Sync flushes any buffered log entries.
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

// levelFromString parses a LOG_LEVEL value, defaulting to info.
func levelFromString(s string) zapcore.Level {
	if level, ok := levelMap[strings.ToLower(strings.TrimSpace(s))]; ok {
		return level
	}
	return zapcore.InfoLevel
}
