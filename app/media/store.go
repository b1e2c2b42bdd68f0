package media

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrUnsupportedType is returned for uploads outside the media whitelist.
var ErrUnsupportedType = errors.New("unsupported media type")

// Store persists uploaded media and resolves it to a public URL.
type Store interface {
	Save(userID, filename string, r io.Reader) (string, error)
}

// extensions maps allowed upload extensions to their media class.
var extensions = map[string]string{
	".jpg":  "image",
	".jpeg": "image",
	".png":  "image",
	".webp": "image",
	".mp4":  "video",
	".webm": "video",
}

// MediaClass reports whether a filename is an allowed image or video
// upload.
func MediaClass(filename string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	class, ok := extensions[ext]
	return class, ok
}

// DiskStore writes uploads under a local media directory, one
// subdirectory per user, and serves them from the configured base URL.
type DiskStore struct {
	mediaDir string
	baseURL  string
}

func NewDiskStore(mediaDir, baseURL string) *DiskStore {
	return &DiskStore{
		mediaDir: mediaDir,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}
}

// Save stores an upload under a fresh random name, preserving only the
// extension from the original filename.
func (s *DiskStore) Save(userID, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := extensions[ext]; !ok {
		return "", ErrUnsupportedType
	}

	dir := filepath.Join(s.mediaDir, userID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	name := uuid.NewString() + ext
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write media file: %w", err)
	}

	return fmt.Sprintf("%s/media/%s/%s", s.baseURL, userID, name), nil
}
