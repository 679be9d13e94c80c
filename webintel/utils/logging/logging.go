package logging

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type ctxKey string

const traceIDKey ctxKey = "trace_id"

// Loggers bundles the four log streams. Build once at startup and pass down.
type Loggers struct {
	App     *zap.Logger
	Request *zap.Logger
	Timer   *zap.Logger
	Error   *zap.Logger
}

// NewLoggers creates dir and attaches a rotating file to each stream.
func NewLoggers(dir string) (*Loggers, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, err
	}
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	newCore := func(name string, maxSize, maxAge int, level zapcore.Level) zapcore.Core {
		return zapcore.NewCore(encoder,
			zapcore.AddSync(&lumberjack.Logger{
				Filename: filepath.Join(dir, name), MaxSize: maxSize, MaxAge: maxAge, Compress: true,
			}),
			level,
		)
	}

	return &Loggers{
		App:     zap.New(newCore("app.log", 100, 28, zap.InfoLevel)),
		Request: zap.New(newCore("request.log", 50, 7, zap.InfoLevel)),
		Timer:   zap.New(newCore("timer.log", 50, 7, zap.InfoLevel)),
		Error:   zap.New(newCore("error.log", 100, 30, zap.ErrorLevel)),
	}, nil
}

// NewNop discards everything. Used by tests and the CLI when no log dir is wanted.
func NewNop() *Loggers {
	return FromLogger(zap.NewNop())
}

// FromLogger routes all four streams to l.
func FromLogger(l *zap.Logger) *Loggers {
	return &Loggers{App: l, Request: l, Timer: l, Error: l}
}

func (l *Loggers) Sync() {
	_ = l.App.Sync()
	_ = l.Request.Sync()
	_ = l.Timer.Sync()
	_ = l.Error.Sync()
}

// LogDuration lets you do: defer loggers.LogDuration(ctx, "FuncName")()
func (l *Loggers) LogDuration(ctx context.Context, name string) func() {
	start := time.Now()
	traceID := TraceID(ctx)

	return func() {
		fields := []zap.Field{
			zap.String("func", name),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		}
		if traceID != "" {
			fields = append(fields, zap.String("trace_id", traceID))
		}
		l.Timer.Info("Function timed", fields...)
	}
}

func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceIDKey, id)
}

func TraceID(ctx context.Context) string {
	id, _ := ctx.Value(traceIDKey).(string)
	return id
}

// TraceField is the zap field for the trace id carried by ctx.
func TraceField(ctx context.Context) zap.Field {
	return zap.String("trace_id", TraceID(ctx))
}
