package notification

import (
	"context"
	"fmt"
	"log"

	"github.com/Chelo123Mau/P-RENAPP/internal/submission"
	"github.com/Chelo123Mau/P-RENAPP/utils"
)

type Service interface {
	// Notify publishes the event through Kafka, or delivers it directly
	// when no broker is configured or publishing fails.
	Notify(ctx context.Context, ev DecisionEvent)
	// Deliver writes the inbox item and sends the email. Called by the
	// Kafka consumer and by the direct fallback.
	Deliver(ev DecisionEvent) error

	Inbox(userID uint, limit, offset int) ([]InboxItem, int64, error)
	MarkRead(userID uint, itemID uint) error
}

type service struct {
	repo     Repository
	producer *Producer
}

func NewService(repo Repository, producer *Producer) Service {
	return &service{repo: repo, producer: producer}
}

func (s *service) Notify(ctx context.Context, ev DecisionEvent) {
	if s.producer != nil {
		if err := s.producer.PublishDecision(ctx, ev); err == nil {
			return
		} else {
			log.Printf("⚠️ Kafka publish failed, delivering directly: %v", err)
		}
	}
	if err := s.Deliver(ev); err != nil {
		log.Printf("⚠️ Failed to deliver notification: %v", err)
	}
}

func (s *service) Deliver(ev DecisionEvent) error {
	title, body := composeMessage(ev)

	refID := ev.RefID
	item := &InboxItem{
		UserID:  ev.UserID,
		Scope:   ev.Scope,
		RefID:   &refID,
		Title:   title,
		Body:    body,
		ActaURL: ev.ActaURL,
	}
	if err := s.repo.Create(item); err != nil {
		return err
	}

	if ev.Email != "" {
		scopeName := scopeLabel(ev.Scope)
		var err error
		if ev.Decision == string(submission.StatusAprobado) {
			err = utils.SendApprovalEmail(ev.Email, scopeName, ev.Title)
		} else {
			err = utils.SendObservationEmail(ev.Email, scopeName, ev.Title, ev.Comment)
		}
		if err != nil {
			log.Printf("⚠️ Notification email failed for %s: %v", ev.Email, err)
		}
	}
	return nil
}

func (s *service) Inbox(userID uint, limit, offset int) ([]InboxItem, int64, error) {
	return s.repo.ListByUser(userID, limit, offset)
}

func (s *service) MarkRead(userID uint, itemID uint) error {
	return s.repo.MarkRead(userID, itemID)
}

func composeMessage(ev DecisionEvent) (string, string) {
	scopeName := scopeLabel(ev.Scope)
	if ev.Decision == string(submission.StatusAprobado) {
		title := fmt.Sprintf("Registro de %s aprobado", scopeName)
		body := fmt.Sprintf("Su registro \"%s\" fue aprobado por el equipo revisor.", ev.Title)
		return title, body
	}
	title := fmt.Sprintf("Registro de %s con observaciones", scopeName)
	body := fmt.Sprintf("Su registro \"%s\" recibió observaciones: %s", ev.Title, ev.Comment)
	return title, body
}

func scopeLabel(scope string) string {
	switch scope {
	case string(submission.ScopeEntidad):
		return "entidad"
	case string(submission.ScopeProyecto):
		return "proyecto"
	default:
		return "usuario"
	}
}
