package snapshot

import (
	"fmt"

	"github.com/arloliu/scanjoin/endian"
	"github.com/arloliu/scanjoin/errs"
	"github.com/arloliu/scanjoin/format"
	"github.com/arloliu/scanjoin/internal/options"
)

// encoderConfig holds the encoding parameters assembled from options.
type encoderConfig struct {
	engine      endian.EndianEngine
	bigEndian   bool
	compression format.CompressionType
}

// Option configures the snapshot encoder.
type Option = options.Option[*encoderConfig]

func defaultConfig() *encoderConfig {
	return &encoderConfig{
		engine:      endian.GetLittleEndianEngine(),
		compression: format.CompressionZstd,
	}
}

// WithLittleEndian encodes the snapshot in little-endian byte order.
// This is the default.
func WithLittleEndian() Option {
	return options.NoError(func(cfg *encoderConfig) {
		cfg.engine = endian.GetLittleEndianEngine()
		cfg.bigEndian = false
	})
}

// WithBigEndian encodes the snapshot in big-endian byte order.
func WithBigEndian() Option {
	return options.NoError(func(cfg *encoderConfig) {
		cfg.engine = endian.GetBigEndianEngine()
		cfg.bigEndian = true
	})
}

// WithCompression selects the body compression codec.
// The default is format.CompressionZstd.
func WithCompression(compression format.CompressionType) Option {
	return options.New(func(cfg *encoderConfig) error {
		switch compression {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			cfg.compression = compression
			return nil
		default:
			return fmt.Errorf("%w: compression 0x%02X", errs.ErrInvalidHeaderFlags, uint8(compression))
		}
	})
}
