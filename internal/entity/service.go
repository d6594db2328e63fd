package entity

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Chelo123Mau/P-RENAPP/internal/auditlog"
	"github.com/Chelo123Mau/P-RENAPP/internal/file"
	"github.com/Chelo123Mau/P-RENAPP/internal/submission"
)

var (
	ErrDuplicateEntity = errors.New("Ya existe una entidad para este usuario")
	ErrNotFound        = errors.New("Entidad no encontrada")
	ErrNotOwner        = errors.New("No autorizado para esta entidad")
)

type Service interface {
	SaveDraft(ctx context.Context, userID uint, data map[string]interface{}, ip string) error
	GetDraft(userID uint) (map[string]interface{}, error)
	Create(ctx context.Context, userID uint, draftKey string, data map[string]interface{}, ip string) (*Entity, error)
	Mine(userID uint) (*Entity, error)
	RequestChange(ctx context.Context, userID uint, entityID uint, ip string) (*Entity, error)

	FindByID(id uint) (*Entity, error)
	FindByUserID(userID uint) (*Entity, error)
	Decide(ctx context.Context, entityID uint, ev submission.Event, role string, reviewerID uint, ip string) (*Entity, error)
	ListPending(q, sort string, limit, offset int) ([]Entity, int64, error)
	ListByStatus(st submission.Status, q, sort string, limit, offset int) ([]Entity, int64, error)
	ListAll(q string, limit, offset int) ([]Entity, int64, error)
	CountPending() (int64, error)
}

type service struct {
	repo  Repository
	files file.Service
	audit auditlog.Service
}

func NewService(repo Repository, files file.Service, audit auditlog.Service) Service {
	return &service{repo: repo, files: files, audit: audit}
}

func (s *service) SaveDraft(ctx context.Context, userID uint, data map[string]interface{}, ip string) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if err := s.repo.UpsertDraft(&EntityDraft{UserID: userID, Data: raw}); err != nil {
		return err
	}
	s.audit.LogAction(ctx, &userID, nil, string(submission.ScopeEntidad), auditlog.ActionDraftSaved, data, ip, auditlog.StatusSuccess)
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

// Create registers the entity and claims the applicant's draft files in
// one transaction. Either both land or neither does.
func (s *service) Create(ctx context.Context, userID uint, draftKey string, data map[string]interface{}, ip string) (*Entity, error) {
	exists, err := s.repo.ExistsForUser(userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEntity
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	norm := Normalize(data)

	e := &Entity{
		UserID:                userID,
		Name:                  norm.Name,
		Telefono:              norm.Telefono,
		Correo:                norm.Correo,
		Web:                   norm.Web,
		Direccion:             norm.Direccion,
		TipoEntidad:           norm.TipoEntidad,
		FechaConstitucion:     norm.FechaConstitucion,
		MunicipioConstitucion: norm.MunicipioConstitucion,
		RepresentanteLegal:    norm.RepresentanteLegal,
		NumeroComercial:       norm.NumeroComercial,
		NIT:                   norm.NIT,
		NacionalOExtranjera:   norm.NacionalOExtranjera,
		Status:                submission.StatusEnviado,
		Data:                  raw,
	}

	err = s.repo.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, e); err != nil {
			return err
		}
		if draftKey != "" {
			if err := s.files.ReassignToEntity(tx, draftKey, userID, e.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// The unique index on user_id closes the check-then-insert race.
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEntity
		}
		return nil, err
	}

	s.audit.LogAction(ctx, &userID, &e.ID, string(submission.ScopeEntidad), auditlog.ActionCreated, map[string]interface{}{
		"name":     e.Name,
		"draftKey": draftKey,
	}, ip, auditlog.StatusSuccess)
	return e, nil
}

func (s *service) Mine(userID uint) (*Entity, error) {
	e, err := s.repo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// RequestChange moves the owner's approved entity into the modification
// queue so staff review the requested update.
func (s *service) RequestChange(ctx context.Context, userID uint, entityID uint, ip string) (*Entity, error) {
	e, err := s.FindByID(entityID)
	if err != nil {
		return nil, err
	}
	if e.UserID != userID {
		return nil, ErrNotOwner
	}

	next, err := submission.Transition(e.Status, submission.EventRequestChange, submission.RoleUser, true)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(e.ID, next); err != nil {
		return nil, err
	}
	e.Status = next

	s.audit.LogAction(ctx, &userID, &e.ID, string(submission.ScopeEntidad), auditlog.ActionChangeRequest, nil, ip, auditlog.StatusSuccess)
	return e, nil
}

func (s *service) FindByID(id uint) (*Entity, error) {
	e, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *service) FindByUserID(userID uint) (*Entity, error) {
	return s.repo.FindByUserID(userID)
}

func (s *service) Decide(ctx context.Context, entityID uint, ev submission.Event, role string, reviewerID uint, ip string) (*Entity, error) {
	e, err := s.FindByID(entityID)
	if err != nil {
		return nil, err
	}

	next, err := submission.Transition(e.Status, ev, role, false)
	if err != nil {
		return nil, err
	}
	if next != e.Status {
		if err := s.repo.UpdateStatus(e.ID, next); err != nil {
			return nil, err
		}
		e.Status = next
	}

	action := auditlog.ActionApproved
	if ev == submission.EventObserve {
		action = auditlog.ActionObserved
	}
	s.audit.LogAction(ctx, &reviewerID, &e.ID, string(submission.ScopeEntidad), action, map[string]interface{}{
		"name": e.Name,
	}, ip, auditlog.StatusSuccess)
	return e, nil
}

func (s *service) ListPending(q, sort string, limit, offset int) ([]Entity, int64, error) {
	return s.repo.ListByStatuses(submission.PendingStatuses(), q, sort, limit, offset)
}

func (s *service) ListByStatus(st submission.Status, q, sort string, limit, offset int) ([]Entity, int64, error) {
	return s.repo.ListByStatuses([]submission.Status{st}, q, sort, limit, offset)
}

func (s *service) ListAll(q string, limit, offset int) ([]Entity, int64, error) {
	return s.repo.ListAll(q, limit, offset)
}

func (s *service) CountPending() (int64, error) {
	return s.repo.CountByStatuses(submission.PendingStatuses())
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// Postgres unique_violation surfaces as SQLSTATE 23505.
	return err != nil && strings.Contains(err.Error(), "23505")
}
