package assets

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported model format")
	ErrNoGeometry        = errors.New("model has no triangle geometry")
	ErrUnknownPattern    = errors.New("unknown fabric pattern")
	ErrUnknownTexture    = errors.New("unknown fabric texture")
	ErrLoaderClosed      = errors.New("loader closed")
	ErrLoadPanicked      = errors.New("model loader panicked")
)
