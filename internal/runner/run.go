// Package runner drives one conversion pass: it scans a directory for
// dataset archives and flattens each one into a sibling text file.
package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/PSeitz/loghub-dataset-converter/internal/engine"
	"github.com/PSeitz/loghub-dataset-converter/internal/engine/extractors"
)

// OutputSuffix is appended to an archive's stem to name its output file.
const OutputSuffix = "_logs.txt"

// OutputName derives the output filename for an archive whose trailing
// suffix has already been matched by the registry.
func OutputName(name, suffix string) string {
	return strings.TrimSuffix(name, suffix) + OutputSuffix
}

// Runner converts every recognized archive in one directory, sequentially
// and in name order. Each archive gets a freshly created output file; the
// first fatal error aborts the whole run.
type Runner struct {
	fs       afero.Fs
	logger   *zap.Logger
	registry *engine.Registry
}

// New creates a runner with both supported archive formats registered.
func New(fs afero.Fs, logger *zap.Logger) *Runner {
	registry := engine.NewRegistry(logger.Named("registry"))
	registry.Register(extractors.NewTarGz(fs, logger.Named("targz")))
	registry.Register(extractors.NewZip(fs, logger.Named("zip")))

	return &Runner{fs: fs, logger: logger, registry: registry}
}

// Run converts every recognized archive directly under dir (no recursion).
// Files whose name matches no registered suffix are skipped silently.
// Output files written for archives earlier in the run remain on disk when
// a later archive fails.
func (r *Runner) Run(ctx context.Context, dir string) error {
	entries, err := afero.ReadDir(r.fs, dir)
	if err != nil {
		return fmt.Errorf("failed to scan directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if !entry.Mode().IsRegular() {
			continue
		}

		extractor, err := r.registry.Lookup(entry.Name())
		if err != nil {
			// Not an archive we recognize.
			continue
		}

		if err := r.convert(ctx, extractor, dir, entry.Name()); err != nil {
			return fmt.Errorf("failed to convert %s: %w", entry.Name(), err)
		}
	}

	r.logger.Info("all datasets processed")
	return nil
}

// convert runs one archive through its extractor into a freshly truncated
// output file. The output handle is closed on success and on error alike so
// a failed archive never leaks a descriptor into the next one.
func (r *Runner) convert(ctx context.Context, extractor engine.Extractor, dir, name string) (err error) {
	inPath := filepath.Join(dir, name)
	outPath := filepath.Join(dir, OutputName(name, extractor.Suffix()))

	r.logger.Info("converting archive",
		zap.String("archive", inPath),
		zap.String("output", outPath),
		zap.String("extractor", extractor.Name()))

	out, err := r.fs.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", outPath, err)
	}
	defer func() {
		err = errors.Join(err, out.Close())
	}()

	sink := bufio.NewWriter(out)
	if err := extractor.Extract(ctx, inPath, sink); err != nil {
		return err
	}
	if err := sink.Flush(); err != nil {
		return fmt.Errorf("failed to flush output file %s: %w", outPath, err)
	}

	r.logger.Info("wrote output", zap.String("output", outPath))
	return nil
}
