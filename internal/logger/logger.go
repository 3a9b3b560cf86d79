package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures the log sinks.
type Options struct {
	Level string
	// Dir enables the rotating file sinks. Empty logs to the console only.
	Dir          string
	FileName     string
	MaxSizeMB    int
	MaxBackups   int
	DailyBackups int
	// Location renders timestamps in the market timezone.
	Location *time.Location
	Console  io.Writer
}

// Logger wraps the zap logger with the rotating file sinks it writes to.
type Logger struct {
	*zap.Logger
	level zap.AtomicLevel
	size  *lumberjack.Logger
	daily *lumberjack.Logger
}

// NewLogger builds a console logger plus, when Dir is set, a size-rotated
// file and a daily file rotated by RotateDaily.
func NewLogger(opts Options) (*Logger, error) {
	lvl, err := zapcore.ParseLevel(defaultString(opts.Level, "info"))
	if err != nil {
		return nil, err
	}
	level := zap.NewAtomicLevelAt(lvl)

	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.In(loc).Format("2006-01-02 15:04:05 MST"))
	}
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	console := opts.Console
	if console == nil {
		console = os.Stdout
	}
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(console), level),
	}

	l := &Logger{level: level}
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return nil, err
		}
		name := defaultString(opts.FileName, "trader.log")
		base := strings.TrimSuffix(name, filepath.Ext(name))

		l.size = &lumberjack.Logger{
			Filename:   filepath.Join(opts.Dir, name),
			MaxSize:    defaultInt(opts.MaxSizeMB, 5),
			MaxBackups: defaultInt(opts.MaxBackups, 3),
		}
		l.daily = &lumberjack.Logger{
			Filename:   filepath.Join(opts.Dir, base+"-daily.log"),
			MaxSize:    1024,
			MaxBackups: defaultInt(opts.DailyBackups, 7),
			LocalTime:  true,
		}
		fileEnc := zapcore.NewJSONEncoder(encCfg)
		cores = append(cores,
			zapcore.NewCore(fileEnc, zapcore.AddSync(l.size), level),
			zapcore.NewCore(fileEnc, zapcore.AddSync(l.daily), level),
		)
	}

	l.Logger = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	return l, nil
}

// SetLevel changes the level at runtime.
func (l *Logger) SetLevel(level zapcore.Level) { l.level.SetLevel(level) }

// RotateDaily starts a new daily file. Housekeeping calls it at midnight.
func (l *Logger) RotateDaily() error {
	if l.daily == nil {
		return nil
	}
	return l.daily.Rotate()
}

// Sync flushes buffered entries and closes the files.
func (l *Logger) Sync() error {
	if l.Logger == nil {
		return nil
	}
	_ = l.Logger.Sync()
	if l.size != nil {
		_ = l.size.Close()
	}
	if l.daily != nil {
		return l.daily.Close()
	}
	return nil
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func defaultInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
