package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Chelo123Mau/P-RENAPP/internal/submission"
)

func TestComposeMessageApproval(t *testing.T) {
	title, body := composeMessage(DecisionEvent{
		Scope:    string(submission.ScopeEntidad),
		Title:    "Cooperativa Illimani",
		Decision: string(submission.StatusAprobado),
	})

	assert.Equal(t, "Registro de entidad aprobado", title)
	assert.Contains(t, body, "Cooperativa Illimani")
	assert.Contains(t, body, "aprobado")
}

func TestComposeMessageObservation(t *testing.T) {
	title, body := composeMessage(DecisionEvent{
		Scope:    string(submission.ScopeProyecto),
		Title:    "Reforestación Yungas",
		Decision: string(submission.StatusObservaciones),
		Comment:  "Falta el documento notariado",
	})

	assert.Equal(t, "Registro de proyecto con observaciones", title)
	assert.Contains(t, body, "Reforestación Yungas")
	assert.Contains(t, body, "Falta el documento notariado")
}

func TestScopeLabel(t *testing.T) {
	assert.Equal(t, "usuario", scopeLabel(string(submission.ScopeUsuario)))
	assert.Equal(t, "entidad", scopeLabel(string(submission.ScopeEntidad)))
	assert.Equal(t, "proyecto", scopeLabel(string(submission.ScopeProyecto)))
	assert.Equal(t, "usuario", scopeLabel("otro"))
}
