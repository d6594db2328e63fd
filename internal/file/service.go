package file

import (
	"context"
	"errors"
	"io"
	"log"
	"mime/multipart"

	"gorm.io/gorm"

	"github.com/Chelo123Mau/P-RENAPP/internal/storage"
)

const (
	// MaxFilesPerRequest caps one multipart upload batch.
	MaxFilesPerRequest = 15
	// MaxFileSize caps a single attachment at 20 MB.
	MaxFileSize = 20 << 20
)

var (
	ErrTooManyFiles = errors.New("Demasiados archivos, máximo 15 por solicitud")
	ErrFileTooLarge = errors.New("El archivo supera el tamaño máximo de 20MB")
	ErrNoFiles      = errors.New("No se recibieron archivos")
)

type Service interface {
	SaveUploads(ctx context.Context, userID uint, draftKey string, fieldKey *string, docType string, headers []*multipart.FileHeader) ([]File, error)
	ListDrafts(userID uint, draftKey string) ([]File, error)
	ListForUser(userID uint, docType string) ([]File, error)
	ListForEntity(entityID uint, docType string) ([]File, error)
	ListForProject(projectID uint, docType string) ([]File, error)
	ListByDocType(docType string, limit, offset int) ([]File, int64, error)

	ReassignToEntity(tx *gorm.DB, draftKey string, userID uint, entityID uint) error
	ReassignToProject(tx *gorm.DB, draftKey string, userID uint, projectID uint) error
}

type service struct {
	repo  Repository
	blobs storage.Store
}

func NewService(repo Repository, blobs storage.Store) Service {
	return &service{repo: repo, blobs: blobs}
}

// SaveUploads stores each part in the blob store and records a File row
// linked to the caller's draft key. The batch is all or nothing: when a
// part fails, every file already persisted in this request is removed.
func (s *service) SaveUploads(ctx context.Context, userID uint, draftKey string, fieldKey *string, docType string, headers []*multipart.FileHeader) ([]File, error) {
	if len(headers) == 0 {
		return nil, ErrNoFiles
	}
	if len(headers) > MaxFilesPerRequest {
		return nil, ErrTooManyFiles
	}

	switch docType {
	case DocTypeUsuario, DocTypeEntidad, DocTypeProyecto:
	default:
		docType = DocTypeUsuario
	}

	saved := make([]File, 0, len(headers))
	for _, header := range headers {
		f, err := s.saveOne(ctx, userID, draftKey, fieldKey, docType, header)
		if err != nil {
			s.discard(ctx, saved)
			return nil, err
		}
		saved = append(saved, *f)
	}
	return saved, nil
}

func (s *service) saveOne(ctx context.Context, userID uint, draftKey string, fieldKey *string, docType string, header *multipart.FileHeader) (*File, error) {
	if header.Size > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(io.LimitReader(src, MaxFileSize+1))
	src.Close()
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	mime := header.Header.Get("Content-Type")
	obj, err := s.blobs.Put(ctx, data, header.Filename, mime)
	if err != nil {
		return nil, err
	}

	dk := draftKey
	f := File{
		CreatedByUserID: userID,
		DraftKey:        &dk,
		FieldKey:        fieldKey,
		DocType:         docType,
		Name:            header.Filename,
		StorageKey:      obj.Key,
		URL:             obj.URL,
		Mime:            mime,
		Size:            obj.Size,
	}
	if err := s.repo.Create(&f); err != nil {
		// Keep storage consistent when the row cannot be written.
		_ = s.blobs.Delete(ctx, obj.Key)
		return nil, err
	}
	return &f, nil
}

// discard undoes the files already written in a failed batch. Cleanup
// failures are logged; the client retries the whole request anyway.
func (s *service) discard(ctx context.Context, saved []File) {
	for _, f := range saved {
		if err := s.repo.Delete(f.ID); err != nil {
			log.Printf("⚠️ Could not remove file row %d after failed batch: %v", f.ID, err)
		}
		if err := s.blobs.Delete(ctx, f.StorageKey); err != nil {
			log.Printf("⚠️ Could not remove blob %s after failed batch: %v", f.StorageKey, err)
		}
	}
}

func (s *service) ListDrafts(userID uint, draftKey string) ([]File, error) {
	return s.repo.FindByDraftKey(draftKey, userID)
}

func (s *service) ListForUser(userID uint, docType string) ([]File, error) {
	return s.repo.FindByOwner(userID, docType)
}

func (s *service) ListForEntity(entityID uint, docType string) ([]File, error) {
	return s.repo.FindByEntityID(entityID, docType)
}

func (s *service) ListForProject(projectID uint, docType string) ([]File, error) {
	return s.repo.FindByProjectID(projectID, docType)
}

func (s *service) ListByDocType(docType string, limit, offset int) ([]File, int64, error) {
	return s.repo.ListByDocType(docType, limit, offset)
}

// ReassignToEntity runs inside the entity creation transaction. Zero
// reassigned rows is not an error, the applicant may have no uploads.
func (s *service) ReassignToEntity(tx *gorm.DB, draftKey string, userID uint, entityID uint) error {
	n, err := s.repo.ReassignToEntity(tx, draftKey, userID, entityID)
	if err != nil {
		return err
	}
	if n == 0 {
		log.Printf("⚠️ No draft files found for draftKey=%s user=%d", draftKey, userID)
	}
	return nil
}

func (s *service) ReassignToProject(tx *gorm.DB, draftKey string, userID uint, projectID uint) error {
	n, err := s.repo.ReassignToProject(tx, draftKey, userID, projectID)
	if err != nil {
		return err
	}
	if n == 0 {
		log.Printf("⚠️ No draft files found for draftKey=%s user=%d", draftKey, userID)
	}
	return nil
}
