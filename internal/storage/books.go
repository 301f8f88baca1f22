package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// Domain errors for book file access.
var (
	ErrBookNotFound = errors.New("book not found")
	ErrBookExists   = errors.New("book already exists")
	ErrBadFilename  = errors.New("invalid book filename")
)

// Gateway stores and serves PDF books in a single flat directory.
// The stored filename (slug + ".pdf") is the only addressing scheme.
type Gateway struct {
	booksDir string
	tmpDir   string
}

// NewGateway creates the books and temp directories if needed.
func NewGateway(booksDir, tmpDir string) (*Gateway, error) {
	for _, dir := range []string{booksDir, tmpDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create dir %q: %w", dir, err)
		}
	}
	return &Gateway{booksDir: booksDir, tmpDir: tmpDir}, nil
}

// hasSeparator reports whether name could escape the books directory.
func hasSeparator(name string) bool {
	return strings.ContainsAny(name, `/\`) || strings.Contains(name, "..")
}

// Fetch opens a stored book for reading and reports its size.
// Names with path separators are rejected up front; a missing file and a
// rejected name both come back as ErrBookNotFound, and the single Open call
// is the only filesystem access, so there is no check-then-read gap.
func (g *Gateway) Fetch(name string) (io.ReadCloser, int64, error) {
	if name == "" || hasSeparator(name) {
		return nil, 0, ErrBookNotFound
	}
	f, err := os.Open(filepath.Join(g.booksDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, ErrBookNotFound
		}
		return nil, 0, fmt.Errorf("open book %q: %w", name, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, fmt.Errorf("stat book %q: %w", name, err)
	}
	return f, info.Size(), nil
}

// SaveTemp writes an incoming upload to a uniquely named temp file and
// returns its path. The caller must remove the file when done.
func (g *Gateway) SaveTemp(r io.Reader) (string, error) {
	path := filepath.Join(g.tmpDir, uuid.NewString())
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return path, nil
}

// Store moves the uploaded temp file into the books directory under a
// slugified name derived from originalName, returning the stored filename.
// The target is opened with O_EXCL, so "already exists" is decided by the
// filesystem atomically rather than by a separate existence check.
// The temp file is left in place; callers remove it on every outcome.
func (g *Gateway) Store(originalName, tempPath string) (string, error) {
	s := slugify(originalName)
	if s == "" {
		return "", ErrBadFilename
	}
	stored := s + ".pdf"

	src, err := os.Open(tempPath)
	if err != nil {
		return "", fmt.Errorf("open temp file %q: %w", tempPath, err)
	}
	defer func() { _ = src.Close() }()

	dst, err := os.OpenFile(filepath.Join(g.booksDir, stored), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return "", fmt.Errorf("store %q: %w", stored, ErrBookExists)
		}
		return "", fmt.Errorf("create book %q: %w", stored, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(filepath.Join(g.booksDir, stored))
		return "", fmt.Errorf("copy book %q: %w", stored, err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(filepath.Join(g.booksDir, stored))
		return "", fmt.Errorf("close book %q: %w", stored, err)
	}
	return stored, nil
}

// Count returns the number of stored books.
func (g *Gateway) Count() (int, error) {
	entries, err := os.ReadDir(g.booksDir)
	if err != nil {
		return 0, fmt.Errorf("read books dir: %w", err)
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir() {
			n++
		}
	}
	return n, nil
}

// slugify turns a human filename into a lowercase ASCII token:
// extension stripped, non-alphanumeric runs collapsed to "-".
func slugify(originalName string) string {
	base := originalName
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	return slug.Make(base)
}
