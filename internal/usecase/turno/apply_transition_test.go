package turno

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/estudionova/salon-agenda/internal/audit"
	domain "github.com/estudionova/salon-agenda/internal/domain/turno"
	"github.com/estudionova/salon-agenda/internal/httperr"
	"github.com/estudionova/salon-agenda/internal/models"
)

// ======================================================
// FAKES
// ======================================================

type fakeRepo struct {
	salon *models.Salon
	turno *models.Turno

	// error inyectado en el fetch con lock
	lockErr error

	updateCalls int
	lastUpdate  *models.Turno
}

func newFakeRepo(status domain.Status) *fakeRepo {
	return &fakeRepo{
		salon: &models.Salon{ID: 1, Timezone: "America/Argentina/Buenos_Aires"},
		turno: &models.Turno{ID: 7, SalonID: 1, ClientID: 3, Status: string(status)},
	}
}

func (r *fakeRepo) GetSalonByID(ctx context.Context, id uint) (*models.Salon, error) {
	return r.salon, nil
}

func (r *fakeRepo) GetService(ctx context.Context, salonID, serviceID uint) (*models.Service, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeRepo) GetProfessional(ctx context.Context, salonID, professionalID uint) (*models.Professional, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeRepo) GetOrCreateClient(ctx context.Context, salonID uint, name, phone, email string) (*models.Client, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeRepo) CreateTurno(ctx context.Context, t *models.Turno) error {
	return errors.New("not implemented")
}

func (r *fakeRepo) AssertNoTimeConflict(ctx context.Context, professionalID uint, start, end time.Time) error {
	return errors.New("not implemented")
}

func (r *fakeRepo) GetTurnoForUpdate(ctx context.Context, turnoID, salonID uint) (*models.Turno, error) {
	if r.lockErr != nil {
		return nil, r.lockErr
	}
	if r.turno == nil || r.turno.ID != turnoID || r.turno.SalonID != salonID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r.turno
	return &cp, nil
}

func (r *fakeRepo) UpdateTurno(ctx context.Context, t *models.Turno) error {
	r.updateCalls++
	r.lastUpdate = t
	cp := *t
	r.turno = &cp
	return nil
}

func (r *fakeRepo) InTransaction(ctx context.Context, fn func(repo domain.Repository) error) error {
	return fn(r)
}

func (r *fakeRepo) GetWorkingHours(ctx context.Context, professionalID uint, weekday int) (*models.WorkingHours, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeRepo) ListTurnosForDay(ctx context.Context, professionalID uint, start, end time.Time) ([]models.Turno, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeRepo) ListTurnosForPeriod(ctx context.Context, salonID, professionalID uint, start, end time.Time) ([]models.Turno, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeRepo) ListTurnosByClient(ctx context.Context, salonID, clientID uint) ([]models.Turno, error) {
	return nil, errors.New("not implemented")
}

var _ domain.Repository = (*fakeRepo)(nil)

type nopSink struct{}

func (nopSink) Log(salonID uint, userID *uint, action, entity string, entityID *uint, metadata any) error {
	return nil
}

type fakeInvalidator struct{ calls int }

func (f *fakeInvalidator) Invalidate(ctx context.Context, salonID uint) { f.calls++ }

func newUC(repo *fakeRepo) (*ApplyTransition, *fakeInvalidator) {
	inv := &fakeInvalidator{}
	return NewApplyTransition(repo, audit.NewDispatcher(nopSink{}), inv), inv
}

// ======================================================
// TESTS
// ======================================================

func TestApplyTransitionConfirmsPendiente(t *testing.T) {
	repo := newFakeRepo(domain.StatusPendiente)
	uc, inv := newUC(repo)

	got, err := uc.Execute(context.Background(), ApplyTransitionInput{
		SalonID: 1, UserID: 2, TurnoID: 7,
		Target: domain.StatusConfirmado,
	})

	require.NoError(t, err)
	require.Equal(t, string(domain.StatusConfirmado), got.Status)
	require.Equal(t, 1, repo.updateCalls)
	require.Equal(t, string(domain.StatusConfirmado), repo.lastUpdate.Status)
	require.NotNil(t, got.ConfirmedAt)
	require.Equal(t, 1, inv.calls)
}

func TestApplyTransitionRejectsSkippedState(t *testing.T) {
	repo := newFakeRepo(domain.StatusPendiente)
	uc, inv := newUC(repo)

	_, err := uc.Execute(context.Background(), ApplyTransitionInput{
		SalonID: 1, UserID: 2, TurnoID: 7,
		Target: domain.StatusCompletado,
	})

	var ite *domain.InvalidTransitionError
	require.ErrorAs(t, err, &ite)
	require.Equal(t, domain.StatusPendiente, ite.From)
	require.Equal(t, domain.StatusCompletado, ite.To)

	// transición inválida: cero updates, cero invalidaciones
	require.Zero(t, repo.updateCalls)
	require.Zero(t, inv.calls)
	require.Equal(t, string(domain.StatusPendiente), repo.turno.Status)
}

// Grilla exhaustiva: todo par fuera de la tabla falla sin tocar el
// repositorio; todo par permitido hace exactamente un update.
func TestApplyTransitionExhaustiveGrid(t *testing.T) {
	allowed := map[domain.Status][]domain.Status{
		domain.StatusPendiente:  {domain.StatusConfirmado, domain.StatusCancelado},
		domain.StatusConfirmado: {domain.StatusEnProceso, domain.StatusCancelado, domain.StatusNoAsistio},
		domain.StatusEnProceso:  {domain.StatusCompletado, domain.StatusCancelado},
	}

	isAllowed := func(from, to domain.Status) bool {
		for _, t := range allowed[from] {
			if t == to {
				return true
			}
		}
		return false
	}

	for _, from := range domain.AllStatuses() {
		for _, to := range domain.AllStatuses() {
			repo := newFakeRepo(from)
			uc, _ := newUC(repo)

			_, err := uc.Execute(context.Background(), ApplyTransitionInput{
				SalonID: 1, UserID: 2, TurnoID: 7, Target: to,
			})

			if isAllowed(from, to) {
				require.NoErrorf(t, err, "%s -> %s", from, to)
				require.Equalf(t, 1, repo.updateCalls, "%s -> %s", from, to)
			} else {
				var ite *domain.InvalidTransitionError
				require.ErrorAsf(t, err, &ite, "%s -> %s", from, to)
				require.Zerof(t, repo.updateCalls, "%s -> %s: no update on invalid transition", from, to)
			}
		}
	}
}

func TestApplyTransitionFromTerminalAlwaysFails(t *testing.T) {
	for _, from := range []domain.Status{domain.StatusCompletado, domain.StatusCancelado, domain.StatusNoAsistio} {
		for _, to := range domain.AllStatuses() {
			repo := newFakeRepo(from)
			uc, _ := newUC(repo)

			_, err := uc.Execute(context.Background(), ApplyTransitionInput{
				SalonID: 1, UserID: 2, TurnoID: 7, Target: to,
			})

			var ite *domain.InvalidTransitionError
			require.ErrorAsf(t, err, &ite, "%s -> %s", from, to)
			require.Zero(t, repo.updateCalls)
		}
	}
}

func TestApplyTransitionPersistsStaffNote(t *testing.T) {
	repo := newFakeRepo(domain.StatusConfirmado)
	uc, _ := newUC(repo)

	got, err := uc.Execute(context.Background(), ApplyTransitionInput{
		SalonID: 1, UserID: 2, TurnoID: 7,
		Target:    domain.StatusNoAsistio,
		StaffNote: "no contestó el teléfono",
	})

	require.NoError(t, err)
	require.Equal(t, "no contestó el teléfono", got.StaffNotes)
	require.Equal(t, "no contestó el teléfono", repo.lastUpdate.StaffNotes)
}

func TestApplyTransitionRejectsUnknownStatus(t *testing.T) {
	repo := newFakeRepo(domain.StatusPendiente)
	uc, _ := newUC(repo)

	_, err := uc.Execute(context.Background(), ApplyTransitionInput{
		SalonID: 1, UserID: 2, TurnoID: 7,
		Target: domain.Status("archivado"),
	})

	require.True(t, httperr.IsBusiness(err, "invalid_status"))
	require.Zero(t, repo.updateCalls)
}

func TestApplyTransitionMissingTurnoIsNotFound(t *testing.T) {
	repo := newFakeRepo(domain.StatusPendiente)
	uc, inv := newUC(repo)

	_, err := uc.Execute(context.Background(), ApplyTransitionInput{
		SalonID: 1, UserID: 2, TurnoID: 999,
		Target: domain.StatusConfirmado,
	})

	require.True(t, httperr.IsBusiness(err, "turno_not_found"))
	require.Zero(t, repo.updateCalls)
	require.Zero(t, inv.calls)
}

// Una falla transitoria de la base en el fetch con lock no es un 404:
// el error sube intacto y el handler lo mapea a update_rejected.
func TestApplyTransitionDBFailureIsNotNotFound(t *testing.T) {
	repo := newFakeRepo(domain.StatusPendiente)
	repo.lockErr = errors.New("connection reset by peer")
	uc, inv := newUC(repo)

	_, err := uc.Execute(context.Background(), ApplyTransitionInput{
		SalonID: 1, UserID: 2, TurnoID: 7,
		Target: domain.StatusConfirmado,
	})

	require.ErrorIs(t, err, repo.lockErr)
	require.False(t, httperr.IsBusiness(err, "turno_not_found"))
	require.Zero(t, repo.updateCalls)
	require.Zero(t, inv.calls)
}

func TestApplyTransitionClientOwnershipCheck(t *testing.T) {
	repo := newFakeRepo(domain.StatusPendiente)
	uc, _ := newUC(repo)

	otherClient := uint(99)
	_, err := uc.Execute(context.Background(), ApplyTransitionInput{
		SalonID: 1, UserID: 2, TurnoID: 7,
		Target:   domain.StatusCancelado,
		ClientID: &otherClient,
	})

	require.True(t, httperr.IsBusiness(err, "turno_not_found"))
	require.Zero(t, repo.updateCalls)

	owner := uint(3)
	got, err := uc.Execute(context.Background(), ApplyTransitionInput{
		SalonID: 1, UserID: 2, TurnoID: 7,
		Target:   domain.StatusCancelado,
		ClientID: &owner,
	})

	require.NoError(t, err)
	require.Equal(t, string(domain.StatusCancelado), got.Status)
}
