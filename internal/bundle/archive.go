package bundle

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/flate"

	"github.com/vk/snakepack/internal/ctxlog"
)

// archiveSuffix is the fixed tail of every archive this package writes.
const archiveSuffix = "_with_deps.zip"

// ArchiveName returns the archive file name for a source target's stem.
func ArchiveName(stem string) string {
	return stem + archiveSuffix
}

// WriteArchive writes all entries into a single deflate-compressed zip file
// at outPath. Each entry is written under its declared archive path.
// Duplicate archive paths produced by overlapping dependency and package
// names are written as declared; the overlap is logged as a warning and is a
// documented limitation, not an error.
func WriteArchive(ctx context.Context, outPath string, entries []Entry) error {
	logger := ctxlog.FromContext(ctx)

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create archive %s: %w", outPath, err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.DefaultCompression)
	})

	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if _, dup := seen[entry.ArchivePath]; dup {
			logger.Warn("⚠️ Duplicate archive path.", "path", entry.ArchivePath)
		}
		seen[entry.ArchivePath] = struct{}{}

		if err := writeEntry(zw, entry); err != nil {
			zw.Close()
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize archive %s: %w", outPath, err)
	}

	logger.Info("🗜️ Archive written.", "archive", outPath, "entries", len(entries))
	return nil
}

// writeEntry copies one file into the archive under its archive path.
func writeEntry(zw *zip.Writer, entry Entry) error {
	in, err := os.Open(entry.SourcePath)
	if err != nil {
		return fmt.Errorf("open archive entry %s: %w", entry.SourcePath, err)
	}
	defer in.Close()

	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:   entry.ArchivePath,
		Method: zip.Deflate,
	})
	if err != nil {
		return fmt.Errorf("create archive entry %s: %w", entry.ArchivePath, err)
	}

	if _, err := io.Copy(w, in); err != nil {
		return fmt.Errorf("write archive entry %s: %w", entry.ArchivePath, err)
	}
	return nil
}
