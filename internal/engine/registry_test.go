package engine

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeExtractor struct {
	suffix string
}

func (f *fakeExtractor) Name() string   { return "fake" + f.suffix }
func (f *fakeExtractor) Kind() string   { return "extractor" }
func (f *fakeExtractor) Suffix() string { return f.suffix }

func (f *fakeExtractor) Extract(context.Context, string, io.Writer) error {
	return nil
}

func TestRegistry_LookupLongestSuffixFirst(t *testing.T) {
	registry := NewRegistry(zaptest.NewLogger(t))
	registry.Register(&fakeExtractor{suffix: ".gz"})
	registry.Register(&fakeExtractor{suffix: ".tar.gz"})

	extractor, err := registry.Lookup("Spark.tar.gz")
	require.NoError(t, err)
	assert.Equal(t, ".tar.gz", extractor.Suffix(), "a .tar.gz file must never match the shorter .gz handler")

	extractor, err = registry.Lookup("trace.gz")
	require.NoError(t, err)
	assert.Equal(t, ".gz", extractor.Suffix())
}

func TestRegistry_LookupUnknownSuffix(t *testing.T) {
	registry := NewRegistry(zaptest.NewLogger(t))
	registry.Register(&fakeExtractor{suffix: ".zip"})

	_, err := registry.Lookup("notes.txt")
	require.Error(t, err)

	var unsupported *UnsupportedArchiveError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "notes.txt", unsupported.Filename)
	assert.Equal(t, []string{".zip"}, unsupported.Available)
}

func TestRegistry_LookupEmpty(t *testing.T) {
	registry := NewRegistry(zaptest.NewLogger(t))

	_, err := registry.Lookup("anything.zip")
	require.Error(t, err)

	var unsupported *UnsupportedArchiveError
	require.True(t, errors.As(err, &unsupported))
	assert.Empty(t, unsupported.Available)
}

func TestRegistry_Available(t *testing.T) {
	registry := NewRegistry(zaptest.NewLogger(t))
	registry.Register(&fakeExtractor{suffix: ".zip"})
	registry.Register(&fakeExtractor{suffix: ".tar.gz"})

	assert.Equal(t, []string{".tar.gz", ".zip"}, registry.Available())
}
