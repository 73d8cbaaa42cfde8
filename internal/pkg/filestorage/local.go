package filestorage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mertpolat/coursehub/internal/pkg/logger"
)

// tempPrefix marks in-flight writes so ListKeys never reports them.
const tempPrefix = ".upload-"

// LocalStorage stores files on the local filesystem. Writes go to a
// temporary file in the same directory and are renamed into place only after
// the copy completes, so a cancelled or failed upload leaves nothing behind
// under the final key.
type LocalStorage struct {
	basePath string // Root directory where files are stored
	baseURL  string // Base URL prepended to keys when building file URLs
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

// Save writes content to a temporary file and renames it to key on success.
func (ls *LocalStorage) Save(key string, content io.Reader) (string, error) {
	if key == "" || filepath.Base(key) != key {
		return "", fmt.Errorf("invalid storage key: %q", key)
	}

	tmp, err := os.CreateTemp(ls.basePath, tempPrefix+"*")
	if err != nil {
		logger.Error().Err(err).Str("key", key).Msg("Failed to create temporary upload file")
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, content); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		logger.Error().Err(err).Str("key", key).Msg("Failed to write upload content")
		return "", fmt.Errorf("failed to save file content: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		logger.Error().Err(err).Str("key", key).Msg("Failed to flush upload content")
		return "", fmt.Errorf("failed to flush file content: %w", err)
	}

	dstPath := filepath.Join(ls.basePath, key)
	if err := os.Rename(tmpPath, dstPath); err != nil {
		_ = os.Remove(tmpPath)
		logger.Error().Err(err).Str("key", key).Msg("Failed to commit upload")
		return "", fmt.Errorf("failed to commit file: %w", err)
	}

	url := ls.URLFor(key)
	logger.Info().Str("key", key).Str("url", url).Msg("File saved successfully")
	return url, nil
}

// Delete removes the stored bytes for key. A missing file counts as a
// successful delete, keeping the operation idempotent.
func (ls *LocalStorage) Delete(key string) error {
	if key == "" {
		return nil
	}

	filename := filepath.Base(key)
	if filename == "" || filename == "." || filename == "/" {
		return fmt.Errorf("invalid storage key: %q", key)
	}

	physicalPath := filepath.Join(ls.basePath, filename)
	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}

// ListKeys returns the committed keys in the storage directory with their
// modification times, skipping in-flight temporary files. The mtime records
// when the content finished writing, which lets callers tell a settled
// object from one committed moments ago.
func (ls *LocalStorage) ListKeys() ([]StorageObject, error) {
	entries, err := os.ReadDir(ls.basePath)
	if err != nil {
		logger.Error().Err(err).Str("path", ls.basePath).Msg("Failed to list storage directory")
		return nil, fmt.Errorf("failed to list storage directory: %w", err)
	}

	objects := make([]StorageObject, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), tempPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Deleted between ReadDir and Info; nothing left to report.
			continue
		}
		objects = append(objects, StorageObject{Key: entry.Name(), ModTime: info.ModTime()})
	}
	return objects, nil
}

// URLFor returns the URL for a stored key.
func (ls *LocalStorage) URLFor(key string) string {
	if ls.baseURL != "" {
		return strings.TrimRight(ls.baseURL, "/") + "/" + key
	}
	return filepath.Join("uploads", key)
}
