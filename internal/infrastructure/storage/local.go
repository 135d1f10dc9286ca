package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/video-digest/internal/domain/entities"
	"github.com/johnquangdev/video-digest/internal/domain/services"
)

// LocalStorage keeps uploaded videos in a directory on the local filesystem
type LocalStorage struct {
	dir    string
	logger *zap.Logger
}

var _ services.MediaStore = (*LocalStorage)(nil)

// NewLocalStorage creates the upload directory if needed
func NewLocalStorage(dir string, logger *zap.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{dir: dir, logger: logger}, nil
}

// Dir returns the upload directory
func (s *LocalStorage) Dir() string { return s.dir }

// Save stores r under a uuid-prefixed, sanitized version of originalName
func (s *LocalStorage) Save(ctx context.Context, originalName string, r io.Reader) (*entities.MediaFile, error) {
	name := strings.ReplaceAll(uuid.NewString(), "-", "") + "_" + SanitizeFilename(originalName)
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}

	size, err := io.Copy(f, &contextReader{ctx: ctx, r: r})
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("write upload file: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("💾 Upload stored",
			zap.String("filename", name),
			zap.Int64("size", size),
		)
	}
	return s.Stat(name)
}

// Stat returns the stored file; the error wraps os.ErrNotExist for unknown names
func (s *LocalStorage) Stat(filename string) (*entities.MediaFile, error) {
	if filename == "" || filepath.Base(filename) != filename {
		return nil, fmt.Errorf("invalid filename %q: %w", filename, os.ErrNotExist)
	}

	path := filepath.Join(s.dir, filename)
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory: %w", filename, os.ErrNotExist)
	}

	return &entities.MediaFile{
		Filename:   filename,
		Path:       path,
		Size:       info.Size(),
		UploadTime: info.ModTime().UTC(),
	}, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename reduces a client-supplied name to a safe ASCII base name
func SanitizeFilename(name string) string {
	if strings.TrimSpace(name) == "" {
		return "video"
	}
	// Clients may send full paths from either OS
	name = strings.ReplaceAll(name, `\`, "/")
	name = filepath.Base(name)

	name = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, name)
	name = unsafeFilenameChars.ReplaceAllString(name, "")

	ext := filepath.Ext(name)
	stem := strings.TrimLeft(strings.TrimSuffix(name, ext), "._")
	if stem == "" {
		stem = "video"
	}
	return stem + ext
}

// contextReader stops a long copy when the request is cancelled
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
