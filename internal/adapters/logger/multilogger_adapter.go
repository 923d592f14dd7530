package logger_adapter

import (
	"errors"

	"listing-service/internal/core/port"
)

var errNoLoggers = errors.New("multilogger: at least one logger is required")

// fanout - один логический логгер поверх нескольких приёмников (stdout, fluent).
type fanout []port.LoggerPort

// NewMultiloggerAdapter пропускает nil-приёмники. Если остался один, он и возвращается.
func NewMultiloggerAdapter(loggers ...port.LoggerPort) (port.LoggerPort, error) {
	sinks := make(fanout, 0, len(loggers))
	for _, l := range loggers {
		if l != nil {
			sinks = append(sinks, l)
		}
	}
	switch len(sinks) {
	case 0:
		return nil, errNoLoggers
	case 1:
		return sinks[0], nil
	}
	return sinks, nil
}

func (f fanout) each(write func(port.LoggerPort)) {
	for _, sink := range f {
		write(sink)
	}
}

func (f fanout) Info(msg string, fields port.Fields) {
	f.each(func(l port.LoggerPort) { l.Info(msg, fields) })
}

func (f fanout) Warn(msg string, fields port.Fields) {
	f.each(func(l port.LoggerPort) { l.Warn(msg, fields) })
}

func (f fanout) Error(msg string, err error, fields port.Fields) {
	f.each(func(l port.LoggerPort) { l.Error(msg, err, fields) })
}

func (f fanout) Debug(msg string, fields port.Fields) {
	f.each(func(l port.LoggerPort) { l.Debug(msg, fields) })
}

func (f fanout) WithFields(fields port.Fields) port.LoggerPort {
	scoped := make(fanout, len(f))
	for i, sink := range f {
		scoped[i] = sink.WithFields(fields)
	}
	return scoped
}
