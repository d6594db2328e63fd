// Package submission owns the status vocabulary and legal transitions shared
// by the three submittable records: user profile, entity and project. It is
// pure logic; services call Transition before persisting a status change.
package submission

import (
	"errors"
	"strings"
)

// Status of a submittable record.
type Status string

const (
	StatusBorrador      Status = "BORRADOR"
	StatusEnviado       Status = "ENVIADO"
	StatusAprobado      Status = "APROBADO"
	StatusObservaciones Status = "OBSERVACIONES"
	StatusSolicitudMod  Status = "SOLICITUD_MOD_REGISTRO"

	// StatusNone is the state before any draft exists.
	StatusNone Status = ""
)

// Scope identifies which record kind a submission belongs to.
type Scope string

const (
	ScopeUsuario  Scope = "USUARIO"
	ScopeEntidad  Scope = "ENTIDAD"
	ScopeProyecto Scope = "PROYECTO"
)

// Event is an action attempted against a submission.
type Event string

const (
	EventSaveDraft     Event = "save-draft"
	EventSubmit        Event = "submit"
	EventApprove       Event = "approve"
	EventObserve       Event = "observe"
	EventRequestChange Event = "request-change"
)

// Role names are stored lower-case; NormalizeRole maps any casing onto them.
const (
	RoleUser     = "user"
	RoleAdmin    = "admin"
	RoleReviewer = "reviewer"
)

var (
	ErrInvalidTransition = errors.New("transición de estado inválida")
	ErrNotOwner          = errors.New("el registro no pertenece al usuario")
	ErrNotStaff          = errors.New("se requiere rol admin o reviewer")
)

func NormalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

// IsStaff reports whether a role may review submissions. Staff actions are
// gated by role alone; any admin/reviewer may act on any record.
func IsStaff(role string) bool {
	r := NormalizeRole(role)
	return r == RoleAdmin || r == RoleReviewer
}

// PendingStatuses are the states shown in the reviewer queue by default.
func PendingStatuses() []Status {
	return []Status{StatusEnviado, StatusSolicitudMod, StatusObservaciones}
}

// ParseStatus normalizes a status string, returning ok=false for unknown ones.
func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusBorrador:
		return StatusBorrador, true
	case StatusEnviado:
		return StatusEnviado, true
	case StatusAprobado:
		return StatusAprobado, true
	case StatusObservaciones:
		return StatusObservaciones, true
	case StatusSolicitudMod:
		return StatusSolicitudMod, true
	case StatusNone:
		return StatusNone, true
	}
	return StatusNone, false
}

// Transition validates an event against the current status and actor, and
// returns the resulting status. Owner events require isOwner; staff events
// require a staff role and ignore ownership entirely.
func Transition(current Status, ev Event, role string, isOwner bool) (Status, error) {
	switch ev {
	case EventSaveDraft:
		if !isOwner {
			return current, ErrNotOwner
		}
		switch current {
		case StatusNone, StatusBorrador, StatusObservaciones, StatusSolicitudMod:
			return StatusBorrador, nil
		}
		return current, ErrInvalidTransition

	case EventSubmit:
		if !isOwner {
			return current, ErrNotOwner
		}
		switch current {
		case StatusNone, StatusBorrador, StatusObservaciones, StatusSolicitudMod:
			return StatusEnviado, nil
		}
		return current, ErrInvalidTransition

	case EventApprove:
		if !IsStaff(role) {
			return current, ErrNotStaff
		}
		switch current {
		case StatusEnviado, StatusObservaciones, StatusSolicitudMod:
			return StatusAprobado, nil
		case StatusAprobado:
			// Approving twice is a no-op, not an error.
			return StatusAprobado, nil
		}
		return current, ErrInvalidTransition

	case EventObserve:
		if !IsStaff(role) {
			return current, ErrNotStaff
		}
		switch current {
		case StatusEnviado, StatusSolicitudMod:
			return StatusObservaciones, nil
		case StatusObservaciones:
			return StatusObservaciones, nil
		}
		return current, ErrInvalidTransition

	case EventRequestChange:
		if !isOwner {
			return current, ErrNotOwner
		}
		if current == StatusAprobado {
			return StatusSolicitudMod, nil
		}
		return current, ErrInvalidTransition
	}

	return current, ErrInvalidTransition
}
