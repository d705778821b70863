package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"lizard-economy/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	outputMu sync.RWMutex
	output   io.Writer = os.Stdout
	fileSink *sizeLimitedWriter
)

// Init configures the global zerolog logger. When cfg.File is set, every line
// is also appended to a size-capped file.
func Init(cfg config.LogConfig) error {
	level := zerolog.InfoLevel
	if v := strings.TrimSpace(cfg.Level); v != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(v)); err == nil {
			level = parsed
		}
	}

	var sink io.Writer = os.Stdout
	var file *sizeLimitedWriter
	if path := strings.TrimSpace(cfg.File); path != "" {
		w, err := newSizeLimitedWriter(path, cfg.MaxMB)
		if err != nil {
			return err
		}
		file = w
		sink = io.MultiWriter(os.Stdout, w)
	}

	console := sink
	if cfg.Pretty {
		console = zerolog.ConsoleWriter{Out: os.Stdout}
		if file != nil {
			console = zerolog.MultiLevelWriter(zerolog.ConsoleWriter{Out: os.Stdout}, file)
		}
	}

	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(console).With().Timestamp().Logger()
	if cfg.SampleEvery > 1 {
		logger = logger.Sample(&zerolog.BasicSampler{N: uint32(cfg.SampleEvery)})
	}
	log.Logger = logger

	outputMu.Lock()
	prev := fileSink
	output = sink
	fileSink = file
	outputMu.Unlock()
	if prev != nil {
		_ = prev.Close()
	}
	return nil
}

// Writer returns the raw sink used by non-zerolog loggers such as the HTTP
// request logger.
func Writer() io.Writer {
	outputMu.RLock()
	defer outputMu.RUnlock()
	return output
}

func Close() error {
	outputMu.Lock()
	defer outputMu.Unlock()
	output = os.Stdout
	if fileSink == nil {
		return nil
	}
	err := fileSink.Close()
	fileSink = nil
	return err
}
