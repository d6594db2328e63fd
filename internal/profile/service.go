package profile

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/Chelo123Mau/P-RENAPP/internal/auditlog"
	"github.com/Chelo123Mau/P-RENAPP/internal/auth"
	"github.com/Chelo123Mau/P-RENAPP/internal/submission"
)

var ErrNotSubmitted = errors.New("No existe un registro enviado")

type Service interface {
	SaveDraft(ctx context.Context, userID uint, data map[string]interface{}, ip string) (*ProfileDraft, error)
	GetDraft(userID uint) (map[string]interface{}, error)
	Submit(ctx context.Context, userID uint, data map[string]interface{}, ip string) (*UserProfile, error)
	Effective(userID uint) (*UserProfile, error)

	FindByID(id uint) (*UserProfile, error)
	FindByUserID(userID uint) (*UserProfile, error)
	Decide(ctx context.Context, profileID uint, ev submission.Event, role string, reviewerID uint, ip string) (*UserProfile, error)
	ListPending(q, sort string, limit, offset int) ([]UserProfile, int64, error)
	ListByStatus(st submission.Status, q, sort string, limit, offset int) ([]UserProfile, int64, error)
	ListAll(q string, limit, offset int) ([]UserProfile, int64, error)
	CountPending() (int64, error)
}

type service struct {
	repo  Repository
	users auth.Repository
	audit auditlog.Service
}

func NewService(repo Repository, users auth.Repository, audit auditlog.Service) Service {
	return &service{repo: repo, users: users, audit: audit}
}

// currentStatus resolves the applicant's effective status, StatusNone
// when nothing was submitted yet.
func (s *service) currentStatus(userID uint) (submission.Status, *UserProfile) {
	p, err := s.repo.FindByUserID(userID)
	if err != nil {
		return submission.StatusNone, nil
	}
	return p.Status, p
}

func (s *service) SaveDraft(ctx context.Context, userID uint, data map[string]interface{}, ip string) (*ProfileDraft, error) {
	current, _ := s.currentStatus(userID)
	if _, err := submission.Transition(current, submission.EventSaveDraft, submission.RoleUser, true); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	draft := &ProfileDraft{UserID: userID, Data: raw}
	if err := s.repo.UpsertDraft(draft); err != nil {
		return nil, err
	}

	s.audit.LogAction(ctx, &userID, nil, string(submission.ScopeUsuario), auditlog.ActionDraftSaved, nil, ip, auditlog.StatusSuccess)
	return draft, nil
}

func (s *service) GetDraft(userID uint) (map[string]interface{}, error) {
	draft, err := s.repo.FindDraftByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return map[string]interface{}{}, nil
		}
		return nil, err
	}

	var data map[string]interface{}
	if err := json.Unmarshal(draft.Data, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// Submit normalizes the form and upserts the registration record in
// ENVIADO. Resubmission after observations overwrites the previous
// snapshot.
func (s *service) Submit(ctx context.Context, userID uint, data map[string]interface{}, ip string) (*UserProfile, error) {
	current, existing := s.currentStatus(userID)
	next, err := submission.Transition(current, submission.EventSubmit, submission.RoleUser, true)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	norm := Normalize(data)

	p := existing
	if p == nil {
		p = &UserProfile{UserID: userID}
	}
	p.Nombres = norm.Nombres
	p.Apellidos = norm.Apellidos
	p.TipoDocumento = norm.TipoDocumento
	p.NroDocumento = norm.NroDocumento
	p.Pais = norm.Pais
	p.Departamento = norm.Departamento
	p.Ciudad = norm.Ciudad
	p.Direccion = norm.Direccion
	p.Institucion = norm.Institucion
	p.Cargo = norm.Cargo
	p.Telefono = norm.Telefono
	p.FechaNacimiento = norm.FechaNacimiento
	p.Status = next
	p.Data = raw

	if err := s.repo.SaveProfile(p); err != nil {
		return nil, err
	}

	if err := s.users.SetProfileCompleted(userID, true); err != nil {
		log.Printf("⚠️ Failed to mark profile completed for user %d: %v", userID, err)
	}

	s.audit.LogAction(ctx, &userID, &p.ID, string(submission.ScopeUsuario), auditlog.ActionSubmitted, map[string]interface{}{
		"nroDocumento": norm.NroDocumento,
	}, ip, auditlog.StatusSuccess)
	return p, nil
}

func (s *service) Effective(userID uint) (*UserProfile, error) {
	p, err := s.repo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotSubmitted
		}
		return nil, err
	}
	return p, nil
}

func (s *service) FindByID(id uint) (*UserProfile, error) {
	return s.repo.FindByID(id)
}

func (s *service) FindByUserID(userID uint) (*UserProfile, error) {
	return s.repo.FindByUserID(userID)
}

// Decide applies a staff decision to a submitted registration.
func (s *service) Decide(ctx context.Context, profileID uint, ev submission.Event, role string, reviewerID uint, ip string) (*UserProfile, error) {
	p, err := s.repo.FindByID(profileID)
	if err != nil {
		return nil, err
	}

	next, err := submission.Transition(p.Status, ev, role, false)
	if err != nil {
		return nil, err
	}

	if next != p.Status {
		if err := s.repo.UpdateStatus(p.ID, next); err != nil {
			return nil, err
		}
		p.Status = next
	}

	action := auditlog.ActionApproved
	if ev == submission.EventObserve {
		action = auditlog.ActionObserved
	}
	s.audit.LogAction(ctx, &reviewerID, &p.ID, string(submission.ScopeUsuario), action, map[string]interface{}{
		"targetUserId": p.UserID,
	}, ip, auditlog.StatusSuccess)
	return p, nil
}

func (s *service) ListPending(q, sort string, limit, offset int) ([]UserProfile, int64, error) {
	return s.repo.ListByStatuses(submission.PendingStatuses(), q, sort, limit, offset)
}

func (s *service) ListByStatus(st submission.Status, q, sort string, limit, offset int) ([]UserProfile, int64, error) {
	return s.repo.ListByStatuses([]submission.Status{st}, q, sort, limit, offset)
}

func (s *service) ListAll(q string, limit, offset int) ([]UserProfile, int64, error) {
	return s.repo.ListAll(q, limit, offset)
}

func (s *service) CountPending() (int64, error) {
	return s.repo.CountByStatuses(submission.PendingStatuses())
}
