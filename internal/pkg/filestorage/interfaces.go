package filestorage

import (
	"mime/multipart"
)

// FileStorage defines the interface for storing admission documents. Each
// account's documents live under a subdirectory keyed by the account id so a
// failed multi-file upload can be cleaned up in one call.
type FileStorage interface {
	// SaveFile stores a file under the given subdirectory and returns a
	// stable reference to the stored object.
	SaveFile(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a single stored object.
	DeleteFile(fileRef string) error

	// DeleteDir removes a subdirectory and everything stored under it.
	DeleteDir(subPath string) error
}
