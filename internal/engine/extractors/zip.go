package extractors

import (
	"archive/zip"
	"context"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Zip extracts zip archives. Regular-file entries are copied to the sink
// byte for byte, in index order, with one terminator appended per entry.
// The source's own line terminators are preserved verbatim and no UTF-8
// validation happens on this path.
type Zip struct {
	fs     afero.Fs
	logger *zap.Logger
}

func NewZip(fs afero.Fs, logger *zap.Logger) *Zip {
	return &Zip{fs: fs, logger: logger}
}

func (e *Zip) Name() string { return "zip" }

func (e *Zip) Kind() string { return "extractor" }

func (e *Zip) Suffix() string { return ".zip" }

// Extract iterates the central directory from entry 0 to entry count - 1.
// Any failure to open or copy an entry is fatal for the archive.
func (e *Zip) Extract(ctx context.Context, path string, sink io.Writer) error {
	f, err := e.fs.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open archive %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat archive %s: %w", path, err)
	}

	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		return fmt.Errorf("failed to open zip central directory of %s: %w", path, err)
	}

	for i := 0; i < len(zr.File); i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("extraction of %s cancelled: %w", path, err)
		}

		entry := zr.File[i]
		if entry.FileInfo().IsDir() {
			continue
		}

		e.logger.Debug("copying entry", zap.String("entry", entry.Name))
		if err := copyEntry(entry, sink); err != nil {
			return fmt.Errorf("failed to extract entry %s from %s: %w", entry.Name, path, err)
		}
	}

	return nil
}

func copyEntry(entry *zip.File, sink io.Writer) error {
	rc, err := entry.Open()
	if err != nil {
		return fmt.Errorf("failed to open entry: %w", err)
	}
	defer rc.Close()

	if _, err := io.Copy(sink, rc); err != nil {
		return fmt.Errorf("failed to copy entry content: %w", err)
	}
	if _, err := sink.Write(newline); err != nil {
		return fmt.Errorf("failed to write entry terminator: %w", err)
	}

	return nil
}
