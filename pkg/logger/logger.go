package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Config holds the logger options loaded from the main config file.
type Config struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

var log = zerolog.New(os.Stderr).With().Timestamp().Logger()

// InitGlobalLogger replaces the package-level logger according to cfg.
func InitGlobalLogger(cfg *Config) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var w = zerolog.New(os.Stderr)
	if cfg.Pretty {
		w = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	log = w.Level(level).With().Timestamp().Logger()
}

func Debug(msg string, keysAndValues ...any) {
	emit(log.Debug(), msg, keysAndValues)
}

func Info(msg string, keysAndValues ...any) {
	emit(log.Info(), msg, keysAndValues)
}

func Warn(msg string, keysAndValues ...any) {
	emit(log.Warn(), msg, keysAndValues)
}

func Error(msg string, keysAndValues ...any) {
	emit(log.Error(), msg, keysAndValues)
}

func emit(e *zerolog.Event, msg string, keysAndValues []any) {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, keysAndValues[i+1])
	}
	e.Msg(msg)
}
