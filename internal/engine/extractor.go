package engine

import (
	"context"
	"io"
)

// Extractor streams the regular-file entries of one archive container format
// into a sink as newline-delimited text.
type Extractor interface {
	Named

	// Suffix returns the filename suffix this extractor handles (e.g. ".tar.gz").
	Suffix() string

	// Extract opens the archive at path and appends its content to sink.
	// The sink is owned by the caller and is never closed by the extractor.
	Extract(ctx context.Context, path string, sink io.Writer) error
}
