// Package logging holds the generator's process-wide structured logger.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global logger. It is a no-op until Initialize is called.
var Logger *zap.SugaredLogger

func init() {
	Logger = zap.NewNop().Sugar()
}

// Initialize builds the global logger writing to stderr.
func Initialize(jsonOutput, verbose bool) error {
	return InitializeTo(os.Stderr, jsonOutput, verbose)
}

// InitializeTo builds the global logger writing to w: JSON lines for machine
// consumption, or a compact console format. Debug entries are kept only when
// verbose is set.
func InitializeTo(w io.Writer, jsonOutput, verbose bool) error {
	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}

	var enc zapcore.Encoder
	if jsonOutput {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		cfg.CallerKey = ""
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(cfg)
	}

	Logger = zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level)).Sugar()

	return nil
}

// Sync flushes buffered entries. Errors from syncing terminals are ignored.
func Sync() {
	_ = Logger.Sync()
}
