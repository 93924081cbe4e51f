package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/verixa-platform/verixa-api/api"
	"github.com/verixa-platform/verixa-api/domain"
	"github.com/verixa-platform/verixa-api/storage"
)

const minimumFileLifespan = time.Minute * 5

// File is an uploaded report document. The bytes live in S3; this row keeps the
// metadata and a retrieval URL.
type File struct {
	ID            uuid.UUID `db:"id"`
	URL           string    `db:"url" validate:"required"`
	URLExpiration time.Time `db:"url_expiration"`
	Name          string    `db:"name" validate:"required"`
	Size          int       `db:"size" validate:"required,min=0"`
	ContentType   string    `db:"content_type" validate:"required"`
	CreatedByID   uuid.UUID `db:"created_by_id" validate:"required"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`

	Content []byte `db:"-"`
}

// String can be helpful for serializing the model
func (f File) String() string {
	jf, _ := json.Marshal(f)
	return string(jf)
}

// Files is merely for convenience and brevity
type Files []File

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
func (f *File) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(f), nil
}

// Store takes a byte slice and stores it into S3 and saves the metadata in the database file table.
func (f *File) Store(tx *pop.Connection) error {
	if len(f.Content) > domain.MaxFileSize {
		err := fmt.Errorf("file too large (%d bytes), max is %d bytes", len(f.Content), domain.MaxFileSize)
		return api.NewAppError(err, api.ErrorStoreFileTooLarge, api.CategoryUser)
	}

	if f.ContentType == "" {
		contentType, err := validateContentType(f.Content)
		if err != nil {
			return api.NewAppError(err, api.ErrorStoreFileBadContentType, api.CategoryUser)
		}
		f.ContentType = contentType
	}

	if f.Name == "" {
		return api.NewAppError(errors.New("filename is missing"), api.ErrorValidation, api.CategoryUser)
	}

	f.ID = domain.GetUUID()

	docURL, err := storage.StoreDocument(f.Path(), f.ContentType, f.Content)
	if err != nil {
		err = fmt.Errorf("error storing file %s: %w", f.ID, err)
		return api.NewAppError(err, api.ErrorUnableToStoreFile, api.CategoryInternal)
	}

	f.URL = docURL.URL
	f.URLExpiration = docURL.Expiration
	f.Size = len(f.Content)
	if err = f.Create(tx); err != nil {
		err = fmt.Errorf("error creating file %s: %w", f.ID, err)
		return api.NewAppError(err, api.ErrorUnableToStoreFile, api.CategoryInternal)
	}

	return nil
}

// FindByID locates a file by ID and loads it, including a valid URL.
func (f *File) FindByID(tx *pop.Connection, id uuid.UUID) error {
	if err := find(tx, f, id); err != nil {
		return err
	}
	return f.RefreshURL(tx)
}

// RefreshURL ensures the file URL is good for at least a few minutes
func (f *File) RefreshURL(tx *pop.Connection) error {
	if f.URLExpiration.After(time.Now().Add(minimumFileLifespan)) {
		return nil
	}

	newURL, err := storage.GetDocumentURL(f.Path())
	if err != nil {
		return api.NewAppError(err, api.ErrorUnableToStoreFile, api.CategoryInternal)
	}
	f.URL = newURL.URL
	f.URLExpiration = newURL.Expiration
	return f.Update(tx)
}

func validateContentType(content []byte) (string, error) {
	detectedType := http.DetectContentType(content)
	if domain.IsStringInSlice(detectedType, domain.AllowedFileUploadTypes) {
		return detectedType, nil
	}
	return "", fmt.Errorf("invalid file type %s", detectedType)
}

// Create stores the File data as a new record in the database.
func (f *File) Create(tx *pop.Connection) error {
	return create(tx, f)
}

// Update writes the File data to an existing database record.
func (f *File) Update(tx *pop.Connection) error {
	return update(tx, f)
}

// ConvertToAPI converts a models.File to an api.FileUploadResponse
func (f *File) ConvertToAPI() api.FileUploadResponse {
	return api.FileUploadResponse{
		ID:          f.ID,
		URL:         f.URL,
		Name:        f.Name,
		Size:        f.Size,
		ContentType: f.ContentType,
	}
}

// Path combines the ID and the filename to make the complete file path
func (f *File) Path() string {
	return fmt.Sprintf("%s/%s", f.ID.String(), f.Name)
}
