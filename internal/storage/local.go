package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// PublicPrefix is the logical path prefix recorded in contact_files rows.
// It is what the stored path looks like from the web root, not a disk path.
const PublicPrefix = "/uploads/contact_files"

// ErrOutsideUploadDir is returned when a stored path resolves outside the
// allowed upload directory (traversal, symlink escape) or does not exist.
// Callers must not distinguish the two cases in responses.
var ErrOutsideUploadDir = errors.New("file missing or outside upload directory")

// LocalStorage writes contact attachments into a single allow-listed
// directory under the site document root and resolves logical paths back to
// canonical disk paths.
type LocalStorage struct {
	rootPath  string
	uploadDir string
}

func NewLocalStorage(rootPath, uploadDir string) *LocalStorage {
	return &LocalStorage{rootPath: rootPath, uploadDir: uploadDir}
}

// Save writes src into the upload directory under storedName, creating the
// directory with standard permissions if absent. It returns the number of
// bytes written. There is no temp-file rename step: a partial write surfaces
// as an error and the row for it is never inserted.
func (s *LocalStorage) Save(storedName string, src io.Reader) (int64, error) {

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return 0, fmt.Errorf("create upload directory: %w", err)
	}

	dest := filepath.Join(s.uploadDir, storedName)

	f, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", storedName, err)
	}
	defer f.Close()

	written, err := io.Copy(f, src)
	if err != nil {
		return written, fmt.Errorf("write %s: %w", storedName, err)
	}

	return written, nil
}

// PublicPath returns the logical path recorded in the database for a stored
// name, e.g. /uploads/contact_files/contact_42_x1y2z3.pdf.
func (s *LocalStorage) PublicPath(storedName string) string {
	return PublicPrefix + "/" + storedName
}

// Resolve maps a logical stored path back to a canonical absolute disk path.
// The result must exist and its canonical form must sit under the canonical
// upload directory; anything else returns ErrOutsideUploadDir so handlers can
// answer with the same generic not-found either way.
func (s *LocalStorage) Resolve(storedPath string) (string, error) {

	allowedDir, err := filepath.EvalSymlinks(s.uploadDir)
	if err != nil {
		return "", ErrOutsideUploadDir
	}
	allowedDir, err = filepath.Abs(allowedDir)
	if err != nil {
		return "", ErrOutsideUploadDir
	}

	joined := filepath.Join(s.rootPath, strings.TrimPrefix(storedPath, "/"))

	// EvalSymlinks also fails when the file does not exist, which is exactly
	// the not-found case.
	full, err := filepath.EvalSymlinks(joined)
	if err != nil {
		return "", ErrOutsideUploadDir
	}
	full, err = filepath.Abs(full)
	if err != nil {
		return "", ErrOutsideUploadDir
	}

	if full != allowedDir && !strings.HasPrefix(full, allowedDir+string(filepath.Separator)) {
		return "", ErrOutsideUploadDir
	}

	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return "", ErrOutsideUploadDir
	}

	return full, nil
}
