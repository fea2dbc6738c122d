package log

import (
	"io"
	"os"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the process logger.
type Options struct {
	File string // optional rotated JSON log file
	Mode string // "production" raises the level to info; anything else logs debug
}

func init() {
	zap.ReplaceGlobals(zap.New(jsonCore(zapcore.AddSync(os.Stdout), zapcore.DebugLevel)))
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		MessageKey:     "action",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
	}
}

func jsonCore(w zapcore.WriteSyncer, lvl zapcore.LevelEnabler) zapcore.Core {
	return zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), w, lvl)
}

// Init installs the process logger: JSON lines on stdout, teed into a rotated
// file when opts.File is set.
func Init(opts Options) {
	lvl := zapcore.DebugLevel
	if opts.Mode == "production" {
		lvl = zapcore.InfoLevel
	}
	core := jsonCore(zapcore.AddSync(os.Stdout), lvl)
	if opts.File != "" {
		rotated := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
		}
		core = zapcore.NewTee(core, jsonCore(zapcore.AddSync(rotated), lvl))
	}
	zap.ReplaceGlobals(zap.New(core))
}

// SetOutput redirects every level to w and returns a func restoring the
// previous logger. Used by tests to capture entries.
func SetOutput(w io.Writer) func() {
	return zap.ReplaceGlobals(zap.New(jsonCore(zapcore.AddSync(w), zapcore.DebugLevel)))
}

// Sync flushes buffered entries.
func Sync() { _ = zap.L().Sync() }

func write(level zapcore.Level, c *fiber.Ctx, action string, err error, fields map[string]any) {
	ce := zap.L().Check(level, action)
	if ce == nil {
		return
	}
	zf := make([]zap.Field, 0, 8)
	if c != nil {
		zf = append(zf,
			zap.String("ip", c.IP()),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
		)
		if st := c.Response().StatusCode(); st != 0 {
			zf = append(zf, zap.Int("status", st))
		}
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			zf = append(zf, zap.String("req_id", rid))
		}
	}
	if err != nil {
		zf = append(zf, zap.String("err", err.Error()))
	}
	if len(fields) > 0 {
		zf = append(zf, zap.Any("fields", fields))
	}
	ce.Write(zf...)
}

func Debug(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.DebugLevel, c, action, nil, fields)
}
func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.InfoLevel, c, action, nil, fields)
}

// Audit records a state change made through the app.
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	tagged := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		tagged[k] = v
	}
	tagged["audit"] = true
	write(zapcore.InfoLevel, c, action, nil, tagged)
}
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.WarnLevel, c, action, nil, fields)
}
func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(zapcore.ErrorLevel, c, action, err, fields)
}
