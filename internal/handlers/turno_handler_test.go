package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	domain "github.com/estudionova/salon-agenda/internal/domain/turno"
	"github.com/estudionova/salon-agenda/internal/middleware"
	"github.com/estudionova/salon-agenda/internal/models"
	ucturno "github.com/estudionova/salon-agenda/internal/usecase/turno"
)

// stubTransition registra el input y devuelve lo configurado
type stubTransition struct {
	gotInput ucturno.ApplyTransitionInput
	turno    *models.Turno
	err      error
}

func (s *stubTransition) Execute(
	_ context.Context,
	in ucturno.ApplyTransitionInput,
) (*models.Turno, error) {
	s.gotInput = in
	if s.err != nil {
		return nil, s.err
	}
	return s.turno, nil
}

func newTestRouter(stub *stubTransition) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewTurnoHandler(nil, nil, stub, nil, nil, nil)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, uint(7))
		c.Set(middleware.ContextSalonID, uint(3))
	})

	r.PATCH("/turnos/:id/status", h.UpdateStatus)
	r.PATCH("/turnos/:id/confirm", h.Confirm)
	r.PATCH("/turnos/:id/start", h.Start)
	r.PATCH("/turnos/:id/complete", h.Complete)
	r.PATCH("/turnos/:id/no-show", h.NoShow)
	r.PATCH("/turnos/:id/cancel", h.Cancel)

	return r
}

func doPatch(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(http.MethodPatch, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateStatusPassesTargetAndNote(t *testing.T) {
	stub := &stubTransition{
		turno: &models.Turno{ID: 42, Status: string(domain.StatusConfirmado)},
	}
	r := newTestRouter(stub)

	w := doPatch(t, r, "/turnos/42/status", gin.H{
		"status":      "confirmado",
		"staff_notes": "llamó para confirmar",
	})

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, uint(42), stub.gotInput.TurnoID)
	require.Equal(t, uint(3), stub.gotInput.SalonID)
	require.Equal(t, uint(7), stub.gotInput.UserID)
	require.Equal(t, domain.StatusConfirmado, stub.gotInput.Target)
	require.Equal(t, "llamó para confirmar", stub.gotInput.StaffNote)
	require.Nil(t, stub.gotInput.ClientID)
}

func TestQuickActionsMapToTargets(t *testing.T) {
	cases := []struct {
		path   string
		target domain.Status
	}{
		{"/turnos/1/confirm", domain.StatusConfirmado},
		{"/turnos/1/start", domain.StatusEnProceso},
		{"/turnos/1/complete", domain.StatusCompletado},
		{"/turnos/1/no-show", domain.StatusNoAsistio},
		{"/turnos/1/cancel", domain.StatusCancelado},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			stub := &stubTransition{
				turno: &models.Turno{ID: 1, Status: string(tc.target)},
			}
			r := newTestRouter(stub)

			w := doPatch(t, r, tc.path, nil)

			require.Equal(t, http.StatusOK, w.Code)
			require.Equal(t, tc.target, stub.gotInput.Target)
			require.Empty(t, stub.gotInput.StaffNote)
		})
	}
}

func TestInvalidTransitionMapsToConflict(t *testing.T) {
	stub := &stubTransition{
		err: &domain.InvalidTransitionError{
			From: domain.StatusPendiente,
			To:   domain.StatusCompletado,
		},
	}
	r := newTestRouter(stub)

	w := doPatch(t, r, "/turnos/5/complete", nil)

	require.Equal(t, http.StatusConflict, w.Code)

	var body struct {
		Code    string `json:"error_code"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "invalid_transition", body.Code)
	require.Contains(t, body.Message, "pendiente")
	require.Contains(t, body.Message, "completado")
}

func TestUpdateStatusRejectsMissingBody(t *testing.T) {
	stub := &stubTransition{}
	r := newTestRouter(stub)

	w := doPatch(t, r, "/turnos/5/status", nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Zero(t, stub.gotInput.TurnoID)
}

func TestTransitionRejectsInvalidID(t *testing.T) {
	stub := &stubTransition{}
	r := newTestRouter(stub)

	w := doPatch(t, r, "/turnos/abc/confirm", nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Zero(t, stub.gotInput.TurnoID)
}
