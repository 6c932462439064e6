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

// Package log prints user facing messages of the command line and builds
// the structured logger of the sync engine
package log

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	debugEnvName  = "GODNOTES_DEBUG"
	debugEnvValue = "1"
	indent        = "  "
)

var (
	// ColorRed is a red foreground color
	ColorRed = color.New(color.FgRed)
	// ColorGreen is a green foreground color
	ColorGreen = color.New(color.FgGreen)
	// ColorGray is a gray foreground color
	ColorGray = color.New(color.FgHiBlack)

	colorBlue = color.New(color.FgBlue)
)

// Output is where messages are written. It defaults to the color aware
// standard output.
var Output io.Writer = color.Output

// marker is the symbol printed in front of a message
type marker struct {
	c      *color.Color
	symbol string
}

var (
	markInfo    = marker{colorBlue, "•"}
	markSuccess = marker{ColorGreen, "✔"}
	markWarn    = marker{ColorRed, "•"}
	markError   = marker{ColorRed, "⨯"}
)

func (m marker) print(msg string) {
	fmt.Fprintf(Output, "%s%s %s", indent, m.c.Sprint(m.symbol), msg)
}

// Info prints information
func Info(msg string) { markInfo.print(msg) }

// Infof prints information with optional format verbs
func Infof(msg string, v ...interface{}) { markInfo.print(fmt.Sprintf(msg, v...)) }

// Success prints a success message
func Success(msg string) { markSuccess.print(msg) }

// Successf prints a success message with optional format verbs
func Successf(msg string, v ...interface{}) { markSuccess.print(fmt.Sprintf(msg, v...)) }

// Warnf prints a warning message with optional format verbs
func Warnf(msg string, v ...interface{}) { markWarn.print(fmt.Sprintf(msg, v...)) }

// Error prints an error message
func Error(msg string) { markError.print(msg) }

// Errorf prints an error message with optional format verbs
func Errorf(msg string, v ...interface{}) { markError.print(fmt.Sprintf(msg, v...)) }

// Plain prints a message without any prefix symbol
func Plain(msg string) {
	fmt.Fprintf(Output, "%s%s", indent, msg)
}

// Plainf prints a message without any prefix symbol. It takes optional format verbs.
func Plainf(msg string, v ...interface{}) {
	Plain(fmt.Sprintf(msg, v...))
}

// Askf prints a question. The symbol is gray when the input is masked.
func Askf(msg string, masked bool, v ...interface{}) {
	c := ColorGreen
	if masked {
		c = ColorGray
	}

	fmt.Fprintf(Output, "%s%s %s: ", indent, c.Sprint("[?]"), fmt.Sprintf(msg, v...))
}

// IsDebug returns true if debug output is enabled
func IsDebug() bool {
	return os.Getenv(debugEnvName) == debugEnvValue
}

// Debug prints to the console if GODNOTES_DEBUG is set
func Debug(msg string, v ...interface{}) {
	if IsDebug() {
		fmt.Fprintf(Output, "%s %s", ColorGray.Sprint("DEBUG:"), fmt.Sprintf(msg, v...))
	}
}

// NewEngineLogger returns the structured logger of the sync engine. It
// writes warnings and errors to stderr, and everything in debug mode.
func NewEngineLogger(debug bool) *zap.SugaredLogger {
	return newEngineLogger(os.Stderr, debug || IsDebug())
}

func newEngineLogger(w io.Writer, debug bool) *zap.SugaredLogger {
	level := zapcore.WarnLevel
	if debug {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		zap.NewAtomicLevelAt(level),
	)

	return zap.New(core).Sugar()
}
