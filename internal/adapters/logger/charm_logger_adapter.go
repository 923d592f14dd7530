package logger_adapter

import (
	"io"
	"os"
	"sort"

	"github.com/charmbracelet/log"

	"listing-service/internal/core/port"
)

// CharmLoggerAdapter - LoggerPort для CLI: короткий человекочитаемый вывод в терминал.
type CharmLoggerAdapter struct {
	logger *log.Logger
}

// NewCharmLoggerAdapter пишет в w (по умолчанию stderr, чтобы не мешать выводу команд).
func NewCharmLoggerAdapter(w io.Writer, verbose bool) *CharmLoggerAdapter {
	if w == nil {
		w = os.Stderr
	}
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return &CharmLoggerAdapter{logger: log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})}
}

func keyvals(fields port.Fields) []interface{} {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	kv := make([]interface{}, 0, len(keys)*2)
	for _, k := range keys {
		kv = append(kv, k, fields[k])
	}
	return kv
}

func (a *CharmLoggerAdapter) Info(msg string, fields port.Fields) {
	a.logger.Info(msg, keyvals(fields)...)
}

func (a *CharmLoggerAdapter) Warn(msg string, fields port.Fields) {
	a.logger.Warn(msg, keyvals(fields)...)
}

func (a *CharmLoggerAdapter) Error(msg string, err error, fields port.Fields) {
	kv := keyvals(fields)
	if err != nil {
		kv = append(kv, "error", err)
	}
	a.logger.Error(msg, kv...)
}

func (a *CharmLoggerAdapter) Debug(msg string, fields port.Fields) {
	a.logger.Debug(msg, keyvals(fields)...)
}

func (a *CharmLoggerAdapter) WithFields(fields port.Fields) port.LoggerPort {
	return &CharmLoggerAdapter{logger: a.logger.With(keyvals(fields)...)}
}
