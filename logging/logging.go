package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/spacejam/parameter"
)

// Setup configures file logging
// Disabled unless debug is set: returns a no-op logger, a nil file and discards the standard logger
// Enabled: writes to dir/spacejam.log, rotating the previous file to .old once it passes MaxLogSize
func Setup(debug bool, dir, sessionID string) (zerolog.Logger, *os.File, error) {
	if !debug {
		log.SetOutput(io.Discard)
		return zerolog.Nop(), nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("creating log directory: %w", err)
	}

	path := filepath.Join(dir, parameter.LogFileName)
	if err := rotate(path, parameter.MaxLogSize); err != nil {
		return zerolog.Nop(), nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("opening log file: %w", err)
	}

	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        file,
		TimeFormat: time.RFC3339Nano,
		NoColor:    true,
	}).Level(zerolog.DebugLevel).With().Timestamp().Str("session", sessionID).Logger()

	// Route stray standard library logging into the same file
	log.SetFlags(0)
	log.SetOutput(logger)

	logger.Info().Str("path", path).Msg("Logging set up")
	return logger, file, nil
}

// rotate moves path to path.old when it exceeds maxSize
func rotate(path string, maxSize int64) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("checking log file: %w", err)
	}
	if info.Size() <= maxSize {
		return nil
	}
	if err := os.Rename(path, path+".old"); err != nil {
		return fmt.Errorf("rotating log file: %w", err)
	}
	return nil
}
