package main

import (
	"github.com/filecoin-project/go-state-types/rt"
	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"github.com/ahm-project/migrator/actors/migration/ahm"
)

// zapLogger writes migration logs through zap.
type zapLogger struct {
	s *zap.SugaredLogger
}

var _ ahm.Logger = zapLogger{}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, xerrors.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.Encoding = "console"
	return cfg.Build()
}

func (l zapLogger) Log(level rt.LogLevel, msg string, args ...interface{}) {
	switch level {
	case rt.DEBUG:
		l.s.Debugf(msg, args...)
	case rt.INFO:
		l.s.Infof(msg, args...)
	case rt.WARN:
		l.s.Warnf(msg, args...)
	case rt.ERROR:
		l.s.Errorf(msg, args...)
	}
}
