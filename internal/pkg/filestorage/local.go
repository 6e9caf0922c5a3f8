package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/apavel/studygate/internal/pkg/logger"
)

// LocalStorage stores admission documents on the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files will be stored
	baseURL  string // The base URL prepended to returned file references
}

// NewLocalStorage creates a new LocalStorage instance.
// basePath is the required directory path on the server.
// baseURL is optional; if provided, it will be prepended to returned file references.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

// SaveFile stores an uploaded file under the given subdirectory and returns
// its reference.
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", fmt.Errorf("no file provided")
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	fullDirPath := ls.basePath
	if subPath != "" {
		fullDirPath = filepath.Join(ls.basePath, subPath)
		if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
			logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create subdirectory")
			return "", fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	// Unique filename to prevent collisions
	ext := filepath.Ext(fileHeader.Filename)
	uniqueFilename := uuid.New().String() + ext

	dstPath := filepath.Join(fullDirPath, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	ref := path(subPath, uniqueFilename)
	if ls.baseURL != "" {
		ref = strings.TrimRight(ls.baseURL, "/") + "/" + ref
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("ref", ref).Msg("File saved")
	return ref, nil
}

// DeleteFile removes a stored object. Accepts the reference returned by
// SaveFile. Returns nil if the file does not exist (idempotent).
func (ls *LocalStorage) DeleteFile(fileRef string) error {
	if fileRef == "" {
		return nil
	}

	rel := ls.stripBaseURL(fileRef)
	physicalPath := filepath.Join(ls.basePath, filepath.FromSlash(rel))

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// DeleteDir removes a subdirectory and all objects stored under it.
func (ls *LocalStorage) DeleteDir(subPath string) error {
	if subPath == "" || subPath == "." || strings.Contains(subPath, "..") {
		return fmt.Errorf("invalid storage subdirectory: %s", subPath)
	}

	fullDirPath := filepath.Join(ls.basePath, subPath)
	if err := os.RemoveAll(fullDirPath); err != nil {
		logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to delete storage directory")
		return fmt.Errorf("failed to delete storage directory: %w", err)
	}

	return nil
}

func (ls *LocalStorage) stripBaseURL(fileRef string) string {
	rel := fileRef
	if ls.baseURL != "" {
		rel = strings.TrimPrefix(rel, strings.TrimRight(ls.baseURL, "/"))
	}
	return strings.TrimLeft(rel, "/")
}

func path(subPath, filename string) string {
	if subPath == "" {
		return filename
	}
	return subPath + "/" + filename
}
