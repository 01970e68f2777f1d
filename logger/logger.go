package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global logger instance
	Logger *zap.SugaredLogger
	// Flag to track if JSON output is enabled
	JSONOutput bool

	// Logs go to stderr so fact output on stdout stays machine-readable.
	output zapcore.WriteSyncer = zapcore.Lock(os.Stderr)
)

func init() {
	// Initialize with a safe no-op logger at package load time
	// This prevents nil pointer panics if logger is used before Initialize() is called
	Logger = zap.NewNop().Sugar()
}

// Initialize sets up the global logger for the given output mode and
// verbosity (flag count of -v).
func Initialize(jsonOutput bool, verbosity int) error {
	JSONOutput = jsonOutput

	if theme := os.Getenv("SYSFACTS_LOG_THEME"); theme != "" {
		SetTheme(theme)
	}

	zapLogger, err := build(jsonOutput, VerbosityToLevel(verbosity), output)
	if err != nil {
		return err
	}

	Logger = zapLogger.Sugar()
	return nil
}

// SetOutput redirects console and JSON log output. Used by tests and by the
// CLI when it wants logs on a specific stream.
func SetOutput(w io.Writer) {
	output = zapcore.AddSync(w)
}

func build(jsonOutput bool, level zapcore.Level, ws zapcore.WriteSyncer) (*zap.Logger, error) {
	if jsonOutput {
		// JSON structured output for machine consumption
		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		return zap.New(
			zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), ws, level),
		), nil
	}

	// Human-readable console output with minimal, calm formatting
	return zap.New(
		zapcore.NewCore(newMinimalEncoder(), ws, level),
	), nil
}

// Cleanup flushes any buffered log entries
func Cleanup() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

// Infow logs an info message with structured fields
func Infow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Infow(msg, keysAndValues...)
	}
}

// Debugw logs a debug message with structured fields
func Debugw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Debugw(msg, keysAndValues...)
	}
}
