package snapshot

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the payload compression.
type Compression uint8

const (
	// CompressionNone stores the body as is.
	CompressionNone Compression = 0
	// CompressionZstd compresses with zstd (better ratio).
	CompressionZstd Compression = 1
	// CompressionLZ4 compresses with LZ4 blocks (faster).
	CompressionLZ4 Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

const (
	// lz4MaxRatio bounds the expansion of an LZ4 block.
	lz4MaxRatio = 255
	// zstdMaxRatio bounds the expansion of a zstd frame: a block decodes to
	// at most 128 KiB and takes at least four bytes.
	zstdMaxRatio = 1 << 15
)

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// compress returns the payload for body. When compression does not shrink
// the body by at least 10% the body is stored uncompressed and
// CompressionNone is returned.
func compress(body []byte, c Compression) ([]byte, Compression, error) {
	var out []byte
	switch c {
	case CompressionNone:
		return body, CompressionNone, nil
	case CompressionZstd:
		enc := getZstdEncoder()
		out = enc.EncodeAll(body, nil)
		zstdEncoderPool.Put(enc)
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(body)))
		n, err := lz4.CompressBlock(body, buf, nil)
		if err != nil {
			return nil, 0, err
		}
		out = buf[:n]
	default:
		return nil, 0, fmt.Errorf("unknown compression %v", c)
	}
	if len(out) == 0 || float64(len(out)) > float64(len(body))*0.9 {
		return body, CompressionNone, nil
	}
	return out, c, nil
}

func decompress(payload []byte, c Compression, rawSize int) ([]byte, error) {
	switch c {
	case CompressionNone:
		if len(payload) != rawSize {
			return nil, fmt.Errorf("%w: payload %d bytes, body %d", ErrCorrupt, len(payload), rawSize)
		}
		return payload, nil
	case CompressionZstd:
		if rawSize > zstdMaxRatio*len(payload) {
			return nil, fmt.Errorf("%w: zstd body size %d out of range", ErrCorrupt, rawSize)
		}
		var h zstd.Header
		if err := h.Decode(payload); err != nil {
			return nil, fmt.Errorf("%w: zstd: %w", ErrCorrupt, err)
		}
		if h.HasFCS && h.FrameContentSize != uint64(rawSize) {
			return nil, fmt.Errorf("%w: zstd frame declares %d bytes, body %d", ErrCorrupt, h.FrameContentSize, rawSize)
		}
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)
		body, err := dec.DecodeAll(payload, make([]byte, 0, rawSize))
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %w", ErrCorrupt, err)
		}
		if len(body) != rawSize {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return body, nil
	case CompressionLZ4:
		if rawSize > lz4MaxRatio*len(payload)+lz4MaxRatio {
			return nil, fmt.Errorf("%w: lz4 body size %d out of range", ErrCorrupt, rawSize)
		}
		body := make([]byte, rawSize)
		n, err := lz4.UncompressBlock(payload, body)
		if err != nil {
			return nil, fmt.Errorf("%w: lz4: %w", ErrCorrupt, err)
		}
		if n != rawSize {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return body, nil
	default:
		return nil, fmt.Errorf("%w: unknown compression %v", ErrCorrupt, c)
	}
}
