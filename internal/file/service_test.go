package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/Chelo123Mau/P-RENAPP/internal/storage"
)

type fakeRepo struct {
	nextID      uint
	createErrOn int
	created     []File
	deleted     []uint
}

func (r *fakeRepo) Create(f *File) error {
	if r.createErrOn > 0 && len(r.created)+1 == r.createErrOn {
		return errors.New("insert failed")
	}
	r.nextID++
	f.ID = r.nextID
	r.created = append(r.created, *f)
	return nil
}

func (r *fakeRepo) Delete(id uint) error {
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeRepo) FindByDraftKey(draftKey string, userID uint) ([]File, error) { return nil, nil }

func (r *fakeRepo) FindByOwner(userID uint, docType string) ([]File, error) { return nil, nil }

func (r *fakeRepo) FindByEntityID(entityID uint, docType string) ([]File, error) { return nil, nil }

func (r *fakeRepo) FindByProjectID(projectID uint, docType string) ([]File, error) { return nil, nil }

func (r *fakeRepo) ListByDocType(docType string, limit, offset int) ([]File, int64, error) {
	return nil, 0, nil
}

func (r *fakeRepo) ReassignToEntity(tx *gorm.DB, draftKey string, userID uint, entityID uint) (int64, error) {
	return 0, nil
}

func (r *fakeRepo) ReassignToProject(tx *gorm.DB, draftKey string, userID uint, projectID uint) (int64, error) {
	return 0, nil
}

type fakeStore struct {
	puts    int
	failOn  int
	deleted []string
}

func (s *fakeStore) Put(ctx context.Context, data []byte, filename string, contentType string) (*storage.StoredObject, error) {
	s.puts++
	if s.failOn > 0 && s.puts == s.failOn {
		return nil, errors.New("bucket unavailable")
	}
	key := fmt.Sprintf("blob-%d", s.puts)
	return &storage.StoredObject{Key: key, URL: "/uploads/" + key, Size: int64(len(data))}, nil
}

func (s *fakeStore) Delete(ctx context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return nil
}

func buildHeaders(t *testing.T, contents ...string) []*multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for i, c := range contents {
		part, err := w.CreateFormFile("file", fmt.Sprintf("doc%d.pdf", i+1))
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte(c)); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}
	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	return form.File["file"]
}

func TestSaveUploadsLinksDraftKey(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, &fakeStore{})

	saved, err := svc.SaveUploads(context.Background(), 3, "dk-123", nil, DocTypeEntidad, buildHeaders(t, "uno", "dos"))
	assert.NoError(t, err)
	assert.Len(t, saved, 2)
	for _, f := range saved {
		assert.Equal(t, uint(3), f.CreatedByUserID)
		assert.Equal(t, DocTypeEntidad, f.DocType)
		if assert.NotNil(t, f.DraftKey) {
			assert.Equal(t, "dk-123", *f.DraftKey)
		}
	}
}

func TestSaveUploadsRollsBackBatchOnStoreFailure(t *testing.T) {
	repo := &fakeRepo{}
	store := &fakeStore{failOn: 2}
	svc := NewService(repo, store)

	_, err := svc.SaveUploads(context.Background(), 3, "dk-123", nil, DocTypeUsuario, buildHeaders(t, "uno", "dos"))
	assert.Error(t, err)
	assert.Equal(t, []uint{1}, repo.deleted)
	assert.Equal(t, []string{"blob-1"}, store.deleted)
}

func TestSaveUploadsRollsBackBatchOnInsertFailure(t *testing.T) {
	repo := &fakeRepo{createErrOn: 2}
	store := &fakeStore{}
	svc := NewService(repo, store)

	_, err := svc.SaveUploads(context.Background(), 3, "dk-123", nil, DocTypeUsuario, buildHeaders(t, "uno", "dos"))
	assert.Error(t, err)
	assert.Equal(t, []uint{1}, repo.deleted)
	assert.ElementsMatch(t, []string{"blob-1", "blob-2"}, store.deleted)
}

func TestSaveUploadsRejectsEmptyBatch(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeStore{})

	_, err := svc.SaveUploads(context.Background(), 3, "dk-123", nil, DocTypeUsuario, nil)
	assert.ErrorIs(t, err, ErrNoFiles)
}

func TestSaveUploadsRejectsTooManyFiles(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeStore{})

	headers := make([]*multipart.FileHeader, MaxFilesPerRequest+1)
	_, err := svc.SaveUploads(context.Background(), 3, "dk-123", nil, DocTypeUsuario, headers)
	assert.ErrorIs(t, err, ErrTooManyFiles)
}

func TestSaveUploadsRejectsOversizedFile(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeStore{})

	headers := []*multipart.FileHeader{{Filename: "big.pdf", Size: MaxFileSize + 1}}
	_, err := svc.SaveUploads(context.Background(), 3, "dk-123", nil, DocTypeUsuario, headers)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}
