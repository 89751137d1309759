package core

import (
	"io"

	"github.com/rs/zerolog"
)

// NewLogger builds a zerolog logger writing to w filtered at the given level.
// Unknown or empty levels fall back to info.
func NewLogger(level string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
