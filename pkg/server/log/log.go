/* Copyright 2025 Dnote Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package log provides structured JSON logging for the server
package log

import (
	"io"
	"os"
	"sort"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	fieldKeyLevel     = "level"
	fieldKeyMessage   = "msg"
	fieldKeyTimestamp = "ts"

	// LevelDebug represents debug log level
	LevelDebug = "debug"
	// LevelInfo represents info log level
	LevelInfo = "info"
	// LevelWarn represents warn log level
	LevelWarn = "warn"
	// LevelError represents error log level
	LevelError = "error"
)

var (
	// currentLevel is the currently configured log level
	currentLevel = LevelInfo
	atomicLevel  = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	mu     sync.RWMutex
	logger = newLogger(os.Stderr)
)

func newLogger(w io.Writer) *zap.Logger {
	enc := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		LevelKey:       fieldKeyLevel,
		MessageKey:     fieldKeyMessage,
		TimeKey:        fieldKeyTimestamp,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	})

	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), atomicLevel))
}

// SetOutput redirects the log to w
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	logger = newLogger(w)
}

// Fields represents a set of information to be included in the log
type Fields map[string]interface{}

// Entry represents a log entry
type Entry struct {
	Fields Fields
}

// WithFields creates a log entry with the given fields
func WithFields(fields Fields) Entry {
	return Entry{Fields: fields}
}

func zapLevel(level string) zapcore.Level {
	switch level {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// SetLevel sets the global log level
func SetLevel(level string) {
	mu.Lock()
	defer mu.Unlock()

	currentLevel = level
	atomicLevel.SetLevel(zapLevel(level))
}

// shouldLog returns true if the given level should be logged based on currentLevel
func shouldLog(level string) bool {
	return atomicLevel.Enabled(zapLevel(level))
}

// Debug logs the given entry at a debug level
func (e Entry) Debug(msg string) {
	e.write(LevelDebug, msg)
}

// Info logs the given entry at an info level
func (e Entry) Info(msg string) {
	e.write(LevelInfo, msg)
}

// Warn logs the given entry at a warning level
func (e Entry) Warn(msg string) {
	e.write(LevelWarn, msg)
}

// Error logs the given entry at an error level
func (e Entry) Error(msg string) {
	e.write(LevelError, msg)
}

// ErrorWrap logs the given entry with the error attached under "error"
func (e Entry) ErrorWrap(err error, msg string) {
	fields := make(Fields, len(e.Fields)+1)
	for k, v := range e.Fields {
		fields[k] = v
	}
	fields["error"] = err

	Entry{Fields: fields}.Error(msg)
}

func (e Entry) zapFields() []zap.Field {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ret := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		switch v := e.Fields[k].(type) {
		case error:
			ret = append(ret, zap.String(k, v.Error()))
		default:
			ret = append(ret, zap.Any(k, v))
		}
	}

	return ret
}

func (e Entry) write(level, msg string) {
	if !shouldLog(level) {
		return
	}

	mu.RLock()
	l := logger
	mu.RUnlock()

	if ce := l.Check(zapLevel(level), msg); ce != nil {
		ce.Write(e.zapFields()...)
	}
}

// Debug logs a debug message without additional fields
func Debug(msg string) {
	Entry{}.Debug(msg)
}

// Info logs an info message without additional fields
func Info(msg string) {
	Entry{}.Info(msg)
}

// Warn logs a warning message without additional fields
func Warn(msg string) {
	Entry{}.Warn(msg)
}

// Error logs an error message without additional fields
func Error(msg string) {
	Entry{}.Error(msg)
}

// ErrorWrap logs an error message without additional fields. The error is
// attached under "error".
func ErrorWrap(err error, msg string) {
	Entry{}.ErrorWrap(err, msg)
}
