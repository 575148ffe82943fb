package snapshot

import "github.com/hupe1980/pointmerge/internal/resource"

type options struct {
	compression Compression
	rc          *resource.Controller
}

// Option configures encoding and publishing.
type Option func(*options)

// WithCompression selects the payload compression. The default is
// CompressionZstd.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithResourceController throttles Publish and LoadCurrent through the IO
// limiter of rc.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

func applyOptions(opts []Option) options {
	o := options{compression: CompressionZstd}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
