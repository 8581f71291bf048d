package metrics

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// NDJSONSink writes one newline-delimited JSON object per Record to a
// rotating log file. The underlying zerolog.Logger is not safe for the
// kind of structured-field building Emit does here, so a mutex guards the
// whole write rather than relying on zerolog's own locking.
type NDJSONSink struct {
	mu     sync.Mutex
	logger zerolog.Logger
	writer *lumberjack.Logger
}

// NDJSONConfig controls the rotating file NDJSONSink writes to.
type NDJSONConfig struct {
	// Filename is the active log file path. If empty, a timestamped
	// default under the current directory is used.
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// NewNDJSONSink opens (creating if needed) the rotating log file described
// by cfg and returns a Sink that writes to it.
func NewNDJSONSink(cfg NDJSONConfig) *NDJSONSink {
	filename := cfg.Filename
	if filename == "" {
		filename = "suppy-" + nowStamp() + ".ndjson"
	}

	maxSize := cfg.MaxSizeMB
	if maxSize == 0 {
		maxSize = 100
	}
	maxBackups := cfg.MaxBackups
	if maxBackups == 0 {
		maxBackups = 5
	}
	maxAge := cfg.MaxAgeDays
	if maxAge == 0 {
		maxAge = 28
	}

	writer := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
	}

	return &NDJSONSink{
		logger: zerolog.New(writer),
		writer: writer,
	}
}

// nowStamp is split out so tests can't accidentally depend on wall-clock
// formatting; production callers just want a unique, sortable suffix.
func nowStamp() string {
	return time.Now().UTC().Format("20060102T150405")
}

func (s *NDJSONSink) Emit(r Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	level := zerolog.InfoLevel
	if r.Level == LevelDebug {
		level = zerolog.DebugLevel
	}

	s.logger.WithLevel(level).
		Time("timestamp", time.Now()).
		Int("period", r.Period).
		Int("loop", r.Loop).
		Str("node", r.Node).
		Str("event", r.Event).
		Float64("quantity", r.Quantity).
		Msg(r.Message)
}

func (s *NDJSONSink) Close() error {
	return s.writer.Close()
}
