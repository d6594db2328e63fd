package submission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitFromDraft(t *testing.T) {
	next, err := Transition(StatusBorrador, EventSubmit, RoleUser, true)
	require.NoError(t, err)
	assert.Equal(t, StatusEnviado, next)
}

func TestSubmitWithoutPriorDraft(t *testing.T) {
	// Entities and projects may be submitted directly, with no saved draft.
	next, err := Transition(StatusNone, EventSubmit, RoleUser, true)
	require.NoError(t, err)
	assert.Equal(t, StatusEnviado, next)
}

func TestResubmitAfterObservations(t *testing.T) {
	next, err := Transition(StatusObservaciones, EventSubmit, RoleUser, true)
	require.NoError(t, err)
	assert.Equal(t, StatusEnviado, next)
}

func TestSubmitRequiresOwner(t *testing.T) {
	_, err := Transition(StatusBorrador, EventSubmit, RoleUser, false)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestApproveRequiresStaff(t *testing.T) {
	_, err := Transition(StatusEnviado, EventApprove, RoleUser, true)
	assert.ErrorIs(t, err, ErrNotStaff)

	_, err = Transition(StatusEnviado, EventObserve, RoleUser, true)
	assert.ErrorIs(t, err, ErrNotStaff)
}

func TestStaffActRegardlessOfOwnership(t *testing.T) {
	for _, role := range []string{RoleAdmin, RoleReviewer} {
		next, err := Transition(StatusEnviado, EventApprove, role, false)
		require.NoError(t, err)
		assert.Equal(t, StatusAprobado, next)

		next, err = Transition(StatusEnviado, EventObserve, role, false)
		require.NoError(t, err)
		assert.Equal(t, StatusObservaciones, next)
	}
}

func TestApproveIsIdempotent(t *testing.T) {
	next, err := Transition(StatusEnviado, EventApprove, RoleAdmin, false)
	require.NoError(t, err)
	require.Equal(t, StatusAprobado, next)

	// Second approve leaves the record approved without erroring.
	next, err = Transition(next, EventApprove, RoleAdmin, false)
	require.NoError(t, err)
	assert.Equal(t, StatusAprobado, next)
}

func TestApproveDraftIsInvalid(t *testing.T) {
	_, err := Transition(StatusBorrador, EventApprove, RoleAdmin, false)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestObserveApprovedIsInvalid(t *testing.T) {
	_, err := Transition(StatusAprobado, EventObserve, RoleReviewer, false)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRequestChange(t *testing.T) {
	next, err := Transition(StatusAprobado, EventRequestChange, RoleUser, true)
	require.NoError(t, err)
	assert.Equal(t, StatusSolicitudMod, next)

	// Re-review after a change request.
	next, err = Transition(next, EventSubmit, RoleUser, true)
	require.NoError(t, err)
	assert.Equal(t, StatusEnviado, next)

	_, err = Transition(StatusEnviado, EventRequestChange, RoleUser, true)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestDraftSaveKeepsEditableStates(t *testing.T) {
	for _, from := range []Status{StatusNone, StatusBorrador, StatusObservaciones, StatusSolicitudMod} {
		next, err := Transition(from, EventSaveDraft, RoleUser, true)
		require.NoError(t, err)
		assert.Equal(t, StatusBorrador, next)
	}
	_, err := Transition(StatusEnviado, EventSaveDraft, RoleUser, true)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestIsStaff(t *testing.T) {
	assert.True(t, IsStaff("admin"))
	assert.True(t, IsStaff("REVIEWER"))
	assert.True(t, IsStaff(" Admin "))
	assert.False(t, IsStaff("user"))
	assert.False(t, IsStaff(""))
}

func TestParseStatus(t *testing.T) {
	s, ok := ParseStatus("enviado")
	assert.True(t, ok)
	assert.Equal(t, StatusEnviado, s)

	_, ok = ParseStatus("whatever")
	assert.False(t, ok)
}
