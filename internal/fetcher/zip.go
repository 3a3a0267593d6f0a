package fetcher

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/salesmix/internal/model"
)

// readZIP loads the single data file of a ZIP archive. The entry is
// extracted to a temporary directory and read by its own extension.
func readZIP(ctx context.Context, zipPath string, opts Options) (*model.Table, error) {
	dir, err := os.MkdirTemp("", "salesmix-zip-")
	if err != nil {
		return nil, eris.Wrap(err, "zip: create temp dir")
	}
	defer os.RemoveAll(dir) //nolint:errcheck

	path, err := extractDataFile(zipPath, dir)
	if err != nil {
		return nil, err
	}
	return ReadTable(ctx, path, opts)
}

// extractDataFile extracts the only CSV, XLSX or JSON entry of the archive.
func extractDataFile(zipPath, destDir string) (string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", eris.Wrap(err, "zip: open archive")
	}
	defer r.Close() //nolint:errcheck

	var files []*zip.File
	for _, f := range r.File {
		if f.FileInfo().IsDir() || strings.HasPrefix(filepath.Base(f.Name), ".") {
			continue
		}
		switch strings.ToLower(filepath.Ext(f.Name)) {
		case ".csv", ".txt", ".tsv", ".xlsx", ".xlsm", ".json":
			files = append(files, f)
		}
	}

	if len(files) != 1 {
		return "", eris.Errorf("zip: expected exactly 1 data file, got %d", len(files))
	}
	return extractEntry(files[0], destDir)
}

func extractEntry(f *zip.File, destDir string) (string, error) {
	// Reject entries escaping destDir.
	destPath := filepath.Join(destDir, f.Name)
	if !strings.HasPrefix(filepath.Clean(destPath), filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", eris.Errorf("zip: illegal path %q", f.Name)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return "", eris.Wrap(err, "zip: create parent directory")
	}

	rc, err := f.Open()
	if err != nil {
		return "", eris.Wrap(err, "zip: open entry")
	}
	defer rc.Close() //nolint:errcheck

	out, err := os.Create(destPath)
	if err != nil {
		return "", eris.Wrap(err, "zip: create file")
	}
	defer out.Close() //nolint:errcheck

	if _, err := io.Copy(out, rc); err != nil {
		return "", eris.Wrap(err, "zip: write file")
	}
	return destPath, nil
}
