package review

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Chelo123Mau/P-RENAPP/internal/auth"
	"github.com/Chelo123Mau/P-RENAPP/internal/entity"
	"github.com/Chelo123Mau/P-RENAPP/internal/notification"
	"github.com/Chelo123Mau/P-RENAPP/internal/profile"
	"github.com/Chelo123Mau/P-RENAPP/internal/project"
	"github.com/Chelo123Mau/P-RENAPP/internal/storage"
	"github.com/Chelo123Mau/P-RENAPP/internal/submission"
)

type fakeRepo struct {
	decisions []Decision
}

func (r *fakeRepo) CreateDecision(d *Decision) error {
	r.decisions = append(r.decisions, *d)
	return nil
}

func (r *fakeRepo) ListDecisions(scope string, refID uint) ([]Decision, error) {
	return r.decisions, nil
}

type fakeUsers struct {
	auth.Repository
	approvalUser uint
	approved     *bool
	completed    bool
}

func (f *fakeUsers) SetApproval(userID uint, approved bool, profileCompleted bool) error {
	f.approvalUser = userID
	f.approved = &approved
	f.completed = profileCompleted
	return nil
}

func (f *fakeUsers) FindByID(userID uint) (auth.User, error) {
	return auth.User{ID: userID, Email: "ana@example.com"}, nil
}

type fakeProfiles struct {
	profile.Service
	decided       *profile.UserProfile
	listedStatus  submission.Status
	listAllCalled bool
}

func (f *fakeProfiles) Decide(ctx context.Context, profileID uint, ev submission.Event, role string, reviewerID uint, ip string) (*profile.UserProfile, error) {
	return f.decided, nil
}

func (f *fakeProfiles) ListByStatus(st submission.Status, q, sort string, limit, offset int) ([]profile.UserProfile, int64, error) {
	f.listedStatus = st
	return []profile.UserProfile{{ID: 1, Nombres: "Ana", Apellidos: "Quispe", Status: st}}, 1, nil
}

func (f *fakeProfiles) ListAll(q string, limit, offset int) ([]profile.UserProfile, int64, error) {
	f.listAllCalled = true
	return nil, 0, nil
}

type fakeEntities struct {
	entity.Service
	listedStatus  submission.Status
	listAllCalled bool
}

func (f *fakeEntities) ListByStatus(st submission.Status, q, sort string, limit, offset int) ([]entity.Entity, int64, error) {
	f.listedStatus = st
	return []entity.Entity{{ID: 1, Name: "Coop Illimani", Status: st}}, 1, nil
}

func (f *fakeEntities) ListAll(q string, limit, offset int) ([]entity.Entity, int64, error) {
	f.listAllCalled = true
	return nil, 0, nil
}

type fakeProjects struct {
	project.Service
	listedStatus  submission.Status
	listAllCalled bool
}

func (f *fakeProjects) ListByStatus(st submission.Status, q, sort string, limit, offset int) ([]project.Project, int64, error) {
	f.listedStatus = st
	return []project.Project{{ID: 1, Title: "Reforestación Yungas", Status: st}}, 1, nil
}

func (f *fakeProjects) ListAll(q string, limit, offset int) ([]project.Project, int64, error) {
	f.listAllCalled = true
	return nil, 0, nil
}

type fakeStore struct {
	puts int
}

func (s *fakeStore) Put(ctx context.Context, data []byte, filename string, contentType string) (*storage.StoredObject, error) {
	s.puts++
	return &storage.StoredObject{Key: filename, URL: "/uploads/" + filename, Size: int64(len(data))}, nil
}

func (s *fakeStore) Delete(ctx context.Context, key string) error { return nil }

type fakeNotify struct {
	notification.Service
	events []notification.DecisionEvent
}

func (f *fakeNotify) Notify(ctx context.Context, ev notification.DecisionEvent) {
	f.events = append(f.events, ev)
}

func TestDecideUserObserveRevokesApproval(t *testing.T) {
	users := &fakeUsers{}
	profiles := &fakeProfiles{
		decided: &profile.UserProfile{ID: 2, UserID: 9, Nombres: "Ana", Apellidos: "Quispe", Status: submission.StatusObservaciones},
	}
	notify := &fakeNotify{}
	svc := NewService(&fakeRepo{}, users, profiles, &fakeEntities{}, &fakeProjects{}, &fakeStore{}, notify)

	d, err := svc.DecideUser(context.Background(), 2, submission.EventObserve, submission.RoleAdmin, 1, "Falta el documento", "10.0.0.1")
	assert.NoError(t, err)
	assert.Equal(t, uint(9), users.approvalUser)
	if assert.NotNil(t, users.approved) {
		assert.False(t, *users.approved)
	}
	assert.True(t, users.completed)
	assert.Equal(t, string(submission.StatusObservaciones), d.Verdict)
	assert.Empty(t, d.ActaURL)
	assert.Len(t, notify.events, 1)
}

func TestDecideUserApproveGrantsApproval(t *testing.T) {
	users := &fakeUsers{}
	profiles := &fakeProfiles{
		decided: &profile.UserProfile{ID: 2, UserID: 9, Nombres: "Ana", Apellidos: "Quispe", Status: submission.StatusAprobado},
	}
	store := &fakeStore{}
	notify := &fakeNotify{}
	svc := NewService(&fakeRepo{}, users, profiles, &fakeEntities{}, &fakeProjects{}, store, notify)

	d, err := svc.DecideUser(context.Background(), 2, submission.EventApprove, submission.RoleAdmin, 1, "", "10.0.0.1")
	assert.NoError(t, err)
	assert.Equal(t, uint(9), users.approvalUser)
	if assert.NotNil(t, users.approved) {
		assert.True(t, *users.approved)
	}
	assert.True(t, users.completed)
	assert.Equal(t, string(submission.StatusAprobado), d.Verdict)
	assert.NotEmpty(t, d.ActaURL)
	assert.Equal(t, 1, store.puts)
}

func TestExportRegistryApprovedOnly(t *testing.T) {
	profiles := &fakeProfiles{}
	entities := &fakeEntities{}
	projects := &fakeProjects{}
	svc := NewService(&fakeRepo{}, &fakeUsers{}, profiles, entities, projects, &fakeStore{}, &fakeNotify{})

	data, name, mime, err := svc.ExportRegistry("users", "csv")
	assert.NoError(t, err)
	assert.Equal(t, submission.StatusAprobado, profiles.listedStatus)
	assert.False(t, profiles.listAllCalled)
	assert.Contains(t, string(data), "Ana")
	assert.Contains(t, name, "registro_usuarios")
	assert.Equal(t, "text/csv", mime)

	data, _, _, err = svc.ExportRegistry("entities", "csv")
	assert.NoError(t, err)
	assert.Equal(t, submission.StatusAprobado, entities.listedStatus)
	assert.False(t, entities.listAllCalled)
	assert.Contains(t, string(data), "Coop Illimani")

	data, _, _, err = svc.ExportRegistry("projects", "csv")
	assert.NoError(t, err)
	assert.Equal(t, submission.StatusAprobado, projects.listedStatus)
	assert.False(t, projects.listAllCalled)
	assert.Contains(t, string(data), "Reforestación Yungas")
}

func TestExportRegistryUnknownTarget(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeUsers{}, &fakeProfiles{}, &fakeEntities{}, &fakeProjects{}, &fakeStore{}, &fakeNotify{})

	_, _, _, err := svc.ExportRegistry("decisions", "csv")
	assert.Error(t, err)
}
