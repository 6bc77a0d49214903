package exif66

import (
	"encoding/binary"
	"log/slog"

	"github.com/garyhouston/exif66/internal/options"
)

// Config holds the settings used while parsing and serializing. It is
// copied into each Metadata, so concurrent parses never share it.
type Config struct {
	// Logger receives debug traces of the directory walk. Nil disables
	// tracing.
	Logger *slog.Logger
	// Order is the byte order of a new Metadata. Parsed metadata uses
	// the order found in its header.
	Order EndianEngine
	// ImageData enables relocation of strip, tile and thumbnail data
	// referenced from TIFF-space IFDs.
	ImageData bool
}

// Option configures parsing and serialization.
type Option = options.Option[*Config]

func defaultConfig() Config {
	return Config{Order: binary.BigEndian, ImageData: true}
}

func newConfig(opts []Option) (Config, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// WithLogger traces the directory walk to logger at debug level.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(cfg *Config) {
		cfg.Logger = logger
	})
}

// WithByteOrder sets the byte order of metadata created with New.
func WithByteOrder(order binary.ByteOrder) Option {
	return options.New(func(cfg *Config) error {
		engine, err := engineFor(order)
		if err != nil {
			return err
		}
		cfg.Order = engine
		return nil
	})
}

// WithImageData enables or disables relocation of image data. When
// disabled, strip and thumbnail offsets are written back unchanged and
// will no longer point at the data.
func WithImageData(enabled bool) Option {
	return options.NoError(func(cfg *Config) {
		cfg.ImageData = enabled
	})
}

func (cfg *Config) debug(msg string, args ...any) {
	if cfg.Logger != nil {
		cfg.Logger.Debug(msg, args...)
	}
}
