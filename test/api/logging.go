/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogFileName is created in the report directory.
const LogFileName = "api_tests.log"

// NewLogger returns a logger writing human readable lines to w, typically
// GinkgoWriter, and to the log file in the report directory.  The returned
// function flushes and closes the file.
func NewLogger(config *TestConfig, w io.Writer) (logr.Logger, func(), error) {
	if err := os.MkdirAll(config.ReportDir, 0o755); err != nil {
		return logr.Discard(), nil, fmt.Errorf("creating report directory: %w", err)
	}

	path := filepath.Join(config.ReportDir, LogFileName)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return logr.Discard(), nil, fmt.Errorf("opening log file: %w", err)
	}

	level := parseLevel(config.LogLevel)

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.ConsoleSeparator = " - "
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(w), level),
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(file), level),
	)

	zapLogger := zap.New(core)

	closer := func() {
		_ = zapLogger.Sync()
		_ = file.Close()
	}

	return zapr.NewLogger(zapLogger).WithName("apitest"), closer, nil
}

// parseLevel accepts zap level names as well as the WARNING and CRITICAL
// spellings common in existing LOG_LEVEL settings.  Unknown names log at info.
func parseLevel(name string) zapcore.Level {
	switch strings.ToUpper(name) {
	case "WARNING":
		return zapcore.WarnLevel
	case "CRITICAL":
		return zapcore.ErrorLevel
	}

	level, err := zapcore.ParseLevel(name)
	if err != nil {
		return zapcore.InfoLevel
	}

	return level
}
