// Package extractors implements the archive container formats understood by
// the converter.
package extractors

import (
	"archive/tar"
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

var newline = []byte("\n")

// TarGz extracts gzip-compressed tar archives. Each regular-file entry is
// decoded as UTF-8 text and written to the sink one line at a time, with a
// single terminator per line. Lines that are not valid UTF-8 are dropped
// with a warning; everything else that goes wrong is fatal for the archive.
type TarGz struct {
	fs     afero.Fs
	logger *zap.Logger
}

func NewTarGz(fs afero.Fs, logger *zap.Logger) *TarGz {
	return &TarGz{fs: fs, logger: logger}
}

func (e *TarGz) Name() string { return "targz" }

func (e *TarGz) Kind() string { return "extractor" }

func (e *TarGz) Suffix() string { return ".tar.gz" }

// Extract streams the archive in a single forward pass. Entries are written
// in the order they appear in the tar stream; anything that is not a regular
// file contributes nothing to the output.
func (e *TarGz) Extract(ctx context.Context, path string, sink io.Writer) error {
	f, err := e.fs.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open archive %s: %w", path, err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("failed to read gzip header of %s: %w", path, err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("extraction of %s cancelled: %w", path, err)
		}

		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read tar header in %s: %w", path, err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}

		e.logger.Debug("extracting entry", zap.String("entry", header.Name))
		if err := e.writeLines(header.Name, tr, sink); err != nil {
			return fmt.Errorf("failed to extract entry %s from %s: %w", header.Name, path, err)
		}
	}
}

// writeLines copies one entry's content to the sink line by line. Invalid
// UTF-8 drops the offending line only; read and write errors are fatal.
func (e *TarGz) writeLines(entry string, r io.Reader, sink io.Writer) error {
	br := bufio.NewReader(r)
	for lineNo := 1; ; lineNo++ {
		line, err := br.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read entry content: %w", err)
		}

		if len(line) > 0 {
			trimmed := trimLineEnding(line)
			if utf8.Valid(trimmed) {
				if _, werr := sink.Write(trimmed); werr != nil {
					return fmt.Errorf("failed to write line: %w", werr)
				}
				if _, werr := sink.Write(newline); werr != nil {
					return fmt.Errorf("failed to write line terminator: %w", werr)
				}
			} else {
				e.logger.Warn("skipping invalid UTF-8 line",
					zap.String("entry", entry),
					zap.Int("line", lineNo))
			}
		}

		if errors.Is(err, io.EOF) {
			return nil
		}
	}
}

// trimLineEnding strips a trailing LF and, if present before it, a CR.
func trimLineEnding(line []byte) []byte {
	line = bytes.TrimSuffix(line, []byte("\n"))
	return bytes.TrimSuffix(line, []byte("\r"))
}
