package project

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/Chelo123Mau/P-RENAPP/internal/auditlog"
	"github.com/Chelo123Mau/P-RENAPP/internal/entity"
	"github.com/Chelo123Mau/P-RENAPP/internal/file"
	"github.com/Chelo123Mau/P-RENAPP/internal/submission"
)

type fakeRepo struct {
	createErr error
	project   *Project
	draft     *ProjectDraft
}

func (r *fakeRepo) Transaction(fn func(tx *gorm.DB) error) error { return fn(nil) }

func (r *fakeRepo) UpsertDraft(d *ProjectDraft) error {
	r.draft = d
	return nil
}

func (r *fakeRepo) FindDraftByUserID(userID uint) (*ProjectDraft, error) {
	if r.draft == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.draft, nil
}

func (r *fakeRepo) CreateTx(tx *gorm.DB, p *Project) error {
	if r.createErr != nil {
		return r.createErr
	}
	p.ID = 11
	r.project = p
	return nil
}

func (r *fakeRepo) FindByID(id uint) (*Project, error) {
	if r.project == nil || r.project.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return r.project, nil
}

func (r *fakeRepo) ListByUserID(userID uint) ([]Project, error) { return nil, nil }

func (r *fakeRepo) UpdateStatus(id uint, status submission.Status) error { return nil }

func (r *fakeRepo) ListByStatuses(statuses []submission.Status, q, sort string, limit, offset int) ([]Project, int64, error) {
	return nil, 0, nil
}

func (r *fakeRepo) ListAll(q string, limit, offset int) ([]Project, int64, error) {
	return nil, 0, nil
}

func (r *fakeRepo) CountByStatuses(statuses []submission.Status) (int64, error) { return 0, nil }

type fakeEntities struct {
	entity.Service
	e   *entity.Entity
	err error
}

func (f *fakeEntities) FindByUserID(userID uint) (*entity.Entity, error) { return f.e, f.err }

type fakeFiles struct {
	file.Service
	reassignErr error
	called      bool
	draftKey    string
	userID      uint
	projectID   uint
}

func (f *fakeFiles) ReassignToProject(tx *gorm.DB, draftKey string, userID uint, projectID uint) error {
	f.called = true
	f.draftKey = draftKey
	f.userID = userID
	f.projectID = projectID
	return f.reassignErr
}

type fakeAudit struct{}

func (fakeAudit) LogAction(ctx context.Context, userID *uint, refID *uint, scope string, action string, details map[string]interface{}, ip string, status string) {
}

func (fakeAudit) HistoryForUser(ctx context.Context, userID uint, page, limit int) (*auditlog.Paginated, error) {
	return nil, nil
}

func (fakeAudit) List(ctx context.Context, filter auditlog.Filter) (*auditlog.Paginated, error) {
	return nil, nil
}

func TestCreateWithoutEntity(t *testing.T) {
	entities := &fakeEntities{err: gorm.ErrRecordNotFound}
	svc := NewService(&fakeRepo{}, entities, &fakeFiles{}, fakeAudit{})

	_, err := svc.Create(context.Background(), 5, "", map[string]interface{}{"titulo": "Reforestación Yungas"}, "10.0.0.1")
	assert.ErrorIs(t, err, ErrNoEntity)
}

func TestCreateWithUnapprovedEntity(t *testing.T) {
	entities := &fakeEntities{e: &entity.Entity{ID: 4, UserID: 5, Status: submission.StatusEnviado}}
	svc := NewService(&fakeRepo{}, entities, &fakeFiles{}, fakeAudit{})

	_, err := svc.Create(context.Background(), 5, "", map[string]interface{}{"titulo": "Reforestación Yungas"}, "10.0.0.1")
	assert.ErrorIs(t, err, ErrEntityNotApproved)
}

func TestCreateLinksEntityAndClaimsDraftFiles(t *testing.T) {
	entities := &fakeEntities{e: &entity.Entity{ID: 4, UserID: 5, Status: submission.StatusAprobado}}
	files := &fakeFiles{}
	svc := NewService(&fakeRepo{}, entities, files, fakeAudit{})

	p, err := svc.Create(context.Background(), 5, "dk-456", map[string]interface{}{"titulo": "Reforestación Yungas"}, "10.0.0.1")
	assert.NoError(t, err)
	assert.Equal(t, uint(4), p.EntityID)
	assert.Equal(t, submission.StatusEnviado, p.Status)
	assert.True(t, files.called)
	assert.Equal(t, "dk-456", files.draftKey)
	assert.Equal(t, uint(5), files.userID)
	assert.Equal(t, p.ID, files.projectID)
}

func TestCreateAbortsWhenReassignmentFails(t *testing.T) {
	reassignErr := errors.New("update failed")
	entities := &fakeEntities{e: &entity.Entity{ID: 4, UserID: 5, Status: submission.StatusAprobado}}
	svc := NewService(&fakeRepo{}, entities, &fakeFiles{reassignErr: reassignErr}, fakeAudit{})

	_, err := svc.Create(context.Background(), 5, "dk-456", map[string]interface{}{"titulo": "Reforestación Yungas"}, "10.0.0.1")
	assert.ErrorIs(t, err, reassignErr)
}

func TestDraftRoundTrip(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, &fakeEntities{}, &fakeFiles{}, fakeAudit{})

	data := map[string]interface{}{"titulo": "Reforestación Yungas", "modeloMercado": "Voluntario"}
	err := svc.SaveDraft(context.Background(), 5, data, "10.0.0.1")
	assert.NoError(t, err)
	assert.NotNil(t, repo.draft)
	assert.Equal(t, uint(5), repo.draft.UserID)

	got, err := svc.GetDraft(5)
	assert.NoError(t, err)
	assert.Equal(t, "Reforestación Yungas", got["titulo"])
	assert.Equal(t, "Voluntario", got["modeloMercado"])
}

func TestGetDraftEmptyWhenMissing(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeEntities{}, &fakeFiles{}, fakeAudit{})

	got, err := svc.GetDraft(5)
	assert.NoError(t, err)
	assert.Empty(t, got)
}
