package engine

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// UnsupportedArchiveError is returned when no registered extractor handles a
// filename.
type UnsupportedArchiveError struct {
	Filename  string   // the filename that was looked up
	Available []string // registered suffixes
}

func (e *UnsupportedArchiveError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("unsupported archive %q: no extractors registered", e.Filename)
	}
	return fmt.Sprintf("unsupported archive %q (recognized suffixes: %v)", e.Filename, e.Available)
}

// Registry maps archive filename suffixes to extractors.
type Registry struct {
	mu         sync.RWMutex
	extractors map[string]Extractor
	logger     *zap.Logger
}

func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		extractors: make(map[string]Extractor),
		logger:     logger,
	}
}

// Register adds an extractor under its suffix, replacing any previous
// extractor registered for the same suffix.
func (r *Registry) Register(extractor Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extractors[extractor.Suffix()] = extractor
	r.logger.Debug("registered extractor",
		zap.String("extractor", extractor.Name()),
		zap.String("suffix", extractor.Suffix()))
}

// Lookup returns the extractor whose suffix matches the end of filename.
// Longer suffixes are tried first so that "x.tar.gz" can never match a
// shorter ".gz" handler and the stem is never mis-derived.
func (r *Registry) Lookup(filename string) (Extractor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	suffixes := lo.Keys(r.extractors)
	slices.SortFunc(suffixes, func(a, b string) int {
		if d := len(b) - len(a); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})

	for _, suffix := range suffixes {
		if strings.HasSuffix(filename, suffix) {
			return r.extractors[suffix], nil
		}
	}

	return nil, &UnsupportedArchiveError{Filename: filename, Available: r.available()}
}

// Available returns the registered suffixes in sorted order.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.available()
}

func (r *Registry) available() []string {
	suffixes := lo.Keys(r.extractors)
	slices.Sort(suffixes)
	return suffixes
}
