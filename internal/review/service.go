package review

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Chelo123Mau/P-RENAPP/internal/auth"
	"github.com/Chelo123Mau/P-RENAPP/internal/entity"
	"github.com/Chelo123Mau/P-RENAPP/internal/notification"
	"github.com/Chelo123Mau/P-RENAPP/internal/profile"
	"github.com/Chelo123Mau/P-RENAPP/internal/project"
	"github.com/Chelo123Mau/P-RENAPP/internal/report"
	"github.com/Chelo123Mau/P-RENAPP/internal/storage"
	"github.com/Chelo123Mau/P-RENAPP/internal/submission"
)

// Summary is the reviewer dashboard counters.
type Summary struct {
	PendingUsers    int64 `json:"pendingUsers"`
	PendingEntities int64 `json:"pendingEntities"`
	PendingProjects int64 `json:"pendingProjects"`
}

type Service interface {
	PendingUsers(status, q, sort string, limit, offset int) ([]profile.UserProfile, int64, error)
	PendingEntities(status, q, sort string, limit, offset int) ([]entity.Entity, int64, error)
	PendingProjects(status, q, sort string, limit, offset int) ([]project.Project, int64, error)
	GetSummary() (*Summary, error)

	ListUsers(q string, limit, offset int) ([]profile.UserProfile, int64, error)
	UserProfileByID(profileID uint) (*profile.UserProfile, []Decision, error)

	DecideUser(ctx context.Context, profileID uint, ev submission.Event, role string, reviewerID uint, comment string, ip string) (*Decision, error)
	DecideEntity(ctx context.Context, entityID uint, ev submission.Event, role string, reviewerID uint, comment string, ip string) (*Decision, error)
	DecideProject(ctx context.Context, projectID uint, ev submission.Event, role string, reviewerID uint, comment string, ip string) (*Decision, error)

	Decisions(scope string, refID uint) ([]Decision, error)
	ExportRegistry(registry, format string) ([]byte, string, string, error)
}

type service struct {
	repo     Repository
	users    auth.Repository
	profiles profile.Service
	entities entity.Service
	projects project.Service
	blobs    storage.Store
	notify   notification.Service
	exporter report.RegistryExporter
}

func NewService(
	repo Repository,
	users auth.Repository,
	profiles profile.Service,
	entities entity.Service,
	projects project.Service,
	blobs storage.Store,
	notify notification.Service,
) Service {
	return &service{
		repo:     repo,
		users:    users,
		profiles: profiles,
		entities: entities,
		projects: projects,
		blobs:    blobs,
		notify:   notify,
		exporter: report.NewRegistryExporter(),
	}
}

// ===============================
// Queues
// ===============================

func (s *service) PendingUsers(status, q, sort string, limit, offset int) ([]profile.UserProfile, int64, error) {
	if st, ok := submission.ParseStatus(status); ok && st != submission.StatusNone {
		return s.profiles.ListByStatus(st, q, sort, limit, offset)
	}
	return s.profiles.ListPending(q, sort, limit, offset)
}

func (s *service) PendingEntities(status, q, sort string, limit, offset int) ([]entity.Entity, int64, error) {
	if st, ok := submission.ParseStatus(status); ok && st != submission.StatusNone {
		return s.entities.ListByStatus(st, q, sort, limit, offset)
	}
	return s.entities.ListPending(q, sort, limit, offset)
}

func (s *service) PendingProjects(status, q, sort string, limit, offset int) ([]project.Project, int64, error) {
	if st, ok := submission.ParseStatus(status); ok && st != submission.StatusNone {
		return s.projects.ListByStatus(st, q, sort, limit, offset)
	}
	return s.projects.ListPending(q, sort, limit, offset)
}

func (s *service) GetSummary() (*Summary, error) {
	users, err := s.profiles.CountPending()
	if err != nil {
		return nil, err
	}
	entities, err := s.entities.CountPending()
	if err != nil {
		return nil, err
	}
	projects, err := s.projects.CountPending()
	if err != nil {
		return nil, err
	}
	return &Summary{
		PendingUsers:    users,
		PendingEntities: entities,
		PendingProjects: projects,
	}, nil
}

func (s *service) ListUsers(q string, limit, offset int) ([]profile.UserProfile, int64, error) {
	return s.profiles.ListAll(q, limit, offset)
}

func (s *service) UserProfileByID(profileID uint) (*profile.UserProfile, []Decision, error) {
	p, err := s.profiles.FindByID(profileID)
	if err != nil {
		return nil, nil, err
	}
	decisions, err := s.repo.ListDecisions(string(submission.ScopeUsuario), p.ID)
	if err != nil {
		return nil, nil, err
	}
	return p, decisions, nil
}

// ===============================
// Decisions
// ===============================

// DecideUser applies a verdict to a registration. Approval also flips
// the account's is_approved and profile_completed flags.
func (s *service) DecideUser(ctx context.Context, profileID uint, ev submission.Event, role string, reviewerID uint, comment string, ip string) (*Decision, error) {
	p, err := s.profiles.Decide(ctx, profileID, ev, role, reviewerID, ip)
	if err != nil {
		return nil, err
	}

	switch ev {
	case submission.EventApprove:
		if err := s.users.SetApproval(p.UserID, true, true); err != nil {
			return nil, err
		}
	case submission.EventObserve:
		// An observed registration is no longer an approved account,
		// even when it had been approved before a change request.
		if err := s.users.SetApproval(p.UserID, false, true); err != nil {
			return nil, err
		}
	}

	title := strings.TrimSpace(p.Nombres + " " + p.Apellidos)
	snapshot := decodeSnapshot(p.Data)
	return s.recordDecision(ctx, string(submission.ScopeUsuario), p.ID, p.UserID, reviewerID, ev, comment,
		"Acta de Registro de Usuario", title, snapshot)
}

func (s *service) DecideEntity(ctx context.Context, entityID uint, ev submission.Event, role string, reviewerID uint, comment string, ip string) (*Decision, error) {
	e, err := s.entities.Decide(ctx, entityID, ev, role, reviewerID, ip)
	if err != nil {
		return nil, err
	}

	snapshot := decodeSnapshot(e.Data)
	return s.recordDecision(ctx, string(submission.ScopeEntidad), e.ID, e.UserID, reviewerID, ev, comment,
		"Acta de Registro de Entidad", e.Name, snapshot)
}

func (s *service) DecideProject(ctx context.Context, projectID uint, ev submission.Event, role string, reviewerID uint, comment string, ip string) (*Decision, error) {
	p, err := s.projects.Decide(ctx, projectID, ev, role, reviewerID, ip)
	if err != nil {
		return nil, err
	}

	snapshot := decodeSnapshot(p.Data)
	return s.recordDecision(ctx, string(submission.ScopeProyecto), p.ID, p.UserID, reviewerID, ev, comment,
		"Acta de Registro de Proyecto", p.Title, snapshot)
}

// recordDecision appends the immutable decision row, renders the acta
// for approvals and notifies the applicant.
func (s *service) recordDecision(ctx context.Context, scope string, refID, targetUserID, reviewerID uint, ev submission.Event, comment, actaTitle, recordTitle string, snapshot map[string]interface{}) (*Decision, error) {
	verdict := string(submission.StatusAprobado)
	if ev == submission.EventObserve {
		verdict = string(submission.StatusObservaciones)
	}

	actaURL := ""
	if ev == submission.EventApprove {
		snapshot["estado"] = verdict
		snapshot["fechaDecision"] = time.Now().Format("2006-01-02 15:04:05")
		if comment != "" {
			snapshot["comentario"] = comment
		}

		// The decision stands even when the acta cannot be produced.
		if data, err := report.Render(actaTitle, snapshot); err != nil {
			log.Printf("⚠️ Acta render failed for %s %d: %v", scope, refID, err)
		} else if obj, err := s.blobs.Put(ctx, data, fmt.Sprintf("acta_%s_%d.pdf", strings.ToLower(scope), refID), "application/pdf"); err != nil {
			log.Printf("⚠️ Acta upload failed for %s %d: %v", scope, refID, err)
		} else {
			actaURL = obj.URL
		}
	}

	d := &Decision{
		Scope:        scope,
		RefID:        refID,
		TargetUserID: targetUserID,
		ReviewerID:   reviewerID,
		Verdict:      verdict,
		Comment:      comment,
		ActaURL:      actaURL,
	}
	if err := s.repo.CreateDecision(d); err != nil {
		return nil, err
	}

	email := ""
	if user, err := s.users.FindByID(targetUserID); err == nil {
		email = user.Email
	} else {
		log.Printf("⚠️ Could not resolve applicant %d for notification: %v", targetUserID, err)
	}

	s.notify.Notify(ctx, notification.DecisionEvent{
		UserID:   targetUserID,
		Email:    email,
		Scope:    scope,
		RefID:    refID,
		Title:    recordTitle,
		Decision: verdict,
		Comment:  comment,
		ActaURL:  actaURL,
	})

	return d, nil
}

func (s *service) Decisions(scope string, refID uint) ([]Decision, error) {
	return s.repo.ListDecisions(scope, refID)
}

// ===============================
// Registry export
// ===============================

const exportLimit = 10000

// ExportRegistry produces the public registry of approved records only.
func (s *service) ExportRegistry(registry, format string) ([]byte, string, string, error) {
	var data report.RegistryData

	switch registry {
	case report.RegistryUsers:
		rows, _, err := s.profiles.ListByStatus(submission.StatusAprobado, "", "", exportLimit, 0)
		if err != nil {
			return nil, "", "", err
		}
		data.Profiles = rows
	case report.RegistryEntities:
		rows, _, err := s.entities.ListByStatus(submission.StatusAprobado, "", "", exportLimit, 0)
		if err != nil {
			return nil, "", "", err
		}
		data.Entities = rows
	case report.RegistryProjects:
		rows, _, err := s.projects.ListByStatus(submission.StatusAprobado, "", "", exportLimit, 0)
		if err != nil {
			return nil, "", "", err
		}
		data.Projects = rows
	default:
		return nil, "", "", fmt.Errorf("unsupported registry: %s", registry)
	}

	return s.exporter.Export(registry, format, data)
}

func decodeSnapshot(raw []byte) map[string]interface{} {
	snapshot := map[string]interface{}{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &snapshot); err != nil {
			snapshot = map[string]interface{}{}
		}
	}
	return snapshot
}
