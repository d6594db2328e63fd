package project

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"github.com/Chelo123Mau/P-RENAPP/internal/auditlog"
	"github.com/Chelo123Mau/P-RENAPP/internal/entity"
	"github.com/Chelo123Mau/P-RENAPP/internal/file"
	"github.com/Chelo123Mau/P-RENAPP/internal/submission"
)

var (
	ErrNoEntity          = errors.New("Primero registre una entidad")
	ErrEntityNotApproved = errors.New("La entidad debe estar aprobada para registrar proyectos")
	ErrNotFound          = errors.New("Proyecto no encontrado")
	ErrNotOwner          = errors.New("El proyecto no pertenece al usuario")
)

type Service interface {
	SaveDraft(ctx context.Context, userID uint, data map[string]interface{}, ip string) error
	GetDraft(userID uint) (map[string]interface{}, error)
	Create(ctx context.Context, userID uint, draftKey string, data map[string]interface{}, ip string) (*Project, error)
	Mine(userID uint) ([]Project, error)
	RequestChange(ctx context.Context, userID uint, projectID uint, ip string) (*Project, error)

	FindByID(id uint) (*Project, error)
	Decide(ctx context.Context, projectID uint, ev submission.Event, role string, reviewerID uint, ip string) (*Project, error)
	ListPending(q, sort string, limit, offset int) ([]Project, int64, error)
	ListByStatus(st submission.Status, q, sort string, limit, offset int) ([]Project, int64, error)
	ListAll(q string, limit, offset int) ([]Project, int64, error)
	CountPending() (int64, error)
}

type service struct {
	repo     Repository
	entities entity.Service
	files    file.Service
	audit    auditlog.Service
}

func NewService(repo Repository, entities entity.Service, files file.Service, audit auditlog.Service) Service {
	return &service{repo: repo, entities: entities, files: files, audit: audit}
}

func (s *service) SaveDraft(ctx context.Context, userID uint, data map[string]interface{}, ip string) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if err := s.repo.UpsertDraft(&ProjectDraft{UserID: userID, Data: raw}); err != nil {
		return err
	}
	s.audit.LogAction(ctx, &userID, nil, string(submission.ScopeProyecto), auditlog.ActionDraftSaved, data, ip, auditlog.StatusSuccess)
	return nil
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

// Create registers a project under the caller's approved entity and
// claims the draft files in the same transaction.
func (s *service) Create(ctx context.Context, userID uint, draftKey string, data map[string]interface{}, ip string) (*Project, error) {
	e, err := s.entities.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEntity
		}
		return nil, err
	}
	if e.Status != submission.StatusAprobado {
		return nil, ErrEntityNotApproved
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	norm := Normalize(data)

	p := &Project{
		UserID:             userID,
		EntityID:           e.ID,
		Title:              norm.Title,
		TitularMedida:      norm.TitularMedida,
		RepresentanteLegal: norm.RepresentanteLegal,
		NumeroIdentidad:    norm.NumeroIdentidad,
		NumeroDocNotariado: norm.NumeroDocNotariado,
		ModeloMercado:      norm.ModeloMercado,
		AreaProyecto:       norm.AreaProyecto,
		Status:             submission.StatusEnviado,
		Data:               raw,
	}

	err = s.repo.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, p); err != nil {
			return err
		}
		if draftKey != "" {
			if err := s.files.ReassignToProject(tx, draftKey, userID, p.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.LogAction(ctx, &userID, &p.ID, string(submission.ScopeProyecto), auditlog.ActionCreated, map[string]interface{}{
		"title":    p.Title,
		"entityId": e.ID,
		"draftKey": draftKey,
	}, ip, auditlog.StatusSuccess)
	return p, nil
}

func (s *service) Mine(userID uint) ([]Project, error) {
	return s.repo.ListByUserID(userID)
}

func (s *service) RequestChange(ctx context.Context, userID uint, projectID uint, ip string) (*Project, error) {
	p, err := s.FindByID(projectID)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, ErrNotOwner
	}

	next, err := submission.Transition(p.Status, submission.EventRequestChange, submission.RoleUser, true)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(p.ID, next); err != nil {
		return nil, err
	}
	p.Status = next

	s.audit.LogAction(ctx, &userID, &p.ID, string(submission.ScopeProyecto), auditlog.ActionChangeRequest, nil, ip, auditlog.StatusSuccess)
	return p, nil
}

func (s *service) FindByID(id uint) (*Project, error) {
	p, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *service) Decide(ctx context.Context, projectID uint, ev submission.Event, role string, reviewerID uint, ip string) (*Project, error) {
	p, err := s.FindByID(projectID)
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
	s.audit.LogAction(ctx, &reviewerID, &p.ID, string(submission.ScopeProyecto), action, map[string]interface{}{
		"title": p.Title,
	}, ip, auditlog.StatusSuccess)
	return p, nil
}

func (s *service) ListPending(q, sort string, limit, offset int) ([]Project, int64, error) {
	return s.repo.ListByStatuses(submission.PendingStatuses(), q, sort, limit, offset)
}

func (s *service) ListByStatus(st submission.Status, q, sort string, limit, offset int) ([]Project, int64, error) {
	return s.repo.ListByStatuses([]submission.Status{st}, q, sort, limit, offset)
}

func (s *service) ListAll(q string, limit, offset int) ([]Project, int64, error) {
	return s.repo.ListAll(q, limit, offset)
}

func (s *service) CountPending() (int64, error) {
	return s.repo.CountByStatuses(submission.PendingStatuses())
}
