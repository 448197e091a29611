package turno

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/estudionova/salon-agenda/internal/domain/turno"
	"github.com/estudionova/salon-agenda/internal/httperr"
	"github.com/estudionova/salon-agenda/internal/models"
	"github.com/estudionova/salon-agenda/internal/timezone"
)

// availabilityRepo redefine solo lo que el cálculo de slots consulta
type availabilityRepo struct {
	*fakeRepo

	service *models.Service
	wh      *models.WorkingHours
	booked  []models.Turno
}

func (r *availabilityRepo) GetService(ctx context.Context, salonID, serviceID uint) (*models.Service, error) {
	if r.service == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.service, nil
}

func (r *availabilityRepo) GetWorkingHours(ctx context.Context, professionalID uint, weekday int) (*models.WorkingHours, error) {
	if r.wh == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.wh, nil
}

func (r *availabilityRepo) ListTurnosForDay(ctx context.Context, professionalID uint, start, end time.Time) ([]models.Turno, error) {
	return r.booked, nil
}

var _ domain.Repository = (*availabilityRepo)(nil)

// martes en el timezone por defecto
var availDay = time.Date(2026, 9, 15, 0, 0, 0, 0, timezone.Location(timezone.DefaultTimezone))

func turnoAt(startHM, endHM string) models.Turno {
	parse := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			availDay.Year(), availDay.Month(), availDay.Day(),
			t.Hour(), t.Minute(), 0, 0,
			availDay.Location(),
		)
	}
	return models.Turno{ScheduledAt: parse(startHM), EndTime: parse(endHM)}
}

func slotStarts(slots []domain.TimeSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start)
	}
	return out
}

func TestGetAvailabilitySlots(t *testing.T) {
	cases := []struct {
		name        string
		durationMin int
		wh          *models.WorkingHours
		booked      []models.Turno
		want        []string
	}{
		{
			name:        "día libre completo",
			durationMin: 60,
			wh:          &models.WorkingHours{Weekday: 2, StartTime: "09:00", EndTime: "12:00", Active: true},
			want:        []string{"09:00", "10:00", "11:00"},
		},
		{
			name:        "turno que termina justo al inicio del slot no bloquea",
			durationMin: 60,
			wh:          &models.WorkingHours{Weekday: 2, StartTime: "09:00", EndTime: "12:00", Active: true},
			booked:      []models.Turno{turnoAt("09:00", "10:00")},
			want:        []string{"10:00", "11:00"},
		},
		{
			name:        "turno posterior al borde exacto también se revisa",
			durationMin: 60,
			wh:          &models.WorkingHours{Weekday: 2, StartTime: "09:00", EndTime: "12:00", Active: true},
			booked: []models.Turno{
				turnoAt("09:00", "10:00"),
				turnoAt("10:30", "11:30"),
			},
			// 10:00-11:00 pisa el turno de 10:30 y 11:00-12:00 el final
			// de 11:30: ningún slot queda libre
			want: []string{},
		},
		{
			name:        "la pausa excluye sus slots",
			durationMin: 60,
			wh: &models.WorkingHours{
				Weekday: 2, StartTime: "09:00", EndTime: "13:00",
				BreakStart: "11:00", BreakEnd: "12:00", Active: true,
			},
			want: []string{"09:00", "10:00", "12:00"},
		},
		{
			name:        "el slot tiene que entrar completo antes del cierre",
			durationMin: 60,
			wh:          &models.WorkingHours{Weekday: 2, StartTime: "09:00", EndTime: "10:30", Active: true},
			want:        []string{"09:00"},
		},
		{
			name:        "día inactivo no ofrece slots",
			durationMin: 60,
			wh:          &models.WorkingHours{Weekday: 2, StartTime: "09:00", EndTime: "12:00", Active: false},
			want:        []string{},
		},
		{
			name:        "turnos con duración distinta al slot",
			durationMin: 30,
			wh:          &models.WorkingHours{Weekday: 2, StartTime: "09:00", EndTime: "11:00", Active: true},
			booked:      []models.Turno{turnoAt("09:15", "10:15")},
			// 09:00 y 09:30 pisan el turno, 10:00 pisa su final
			want: []string{"10:30"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &availabilityRepo{
				fakeRepo: newFakeRepo(domain.StatusPendiente),
				service:  &models.Service{ID: 5, DurationMin: tc.durationMin, Active: true},
				wh:       tc.wh,
				booked:   tc.booked,
			}
			uc := NewGetAvailability(repo)

			slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
				SalonID:        1,
				ProfessionalID: 4,
				ServiceID:      5,
				Date:           availDay,
			})

			require.NoError(t, err)
			require.Equal(t, tc.want, slotStarts(slots))
		})
	}
}

func TestGetAvailabilityUnknownService(t *testing.T) {
	repo := &availabilityRepo{
		fakeRepo: newFakeRepo(domain.StatusPendiente),
		wh:       &models.WorkingHours{Weekday: 2, StartTime: "09:00", EndTime: "12:00", Active: true},
	}
	uc := NewGetAvailability(repo)

	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID:        1,
		ProfessionalID: 4,
		ServiceID:      99,
		Date:           availDay,
	})

	require.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestGetAvailabilityNoWorkingHours(t *testing.T) {
	repo := &availabilityRepo{
		fakeRepo: newFakeRepo(domain.StatusPendiente),
		service:  &models.Service{ID: 5, DurationMin: 60, Active: true},
	}
	uc := NewGetAvailability(repo)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID:        1,
		ProfessionalID: 4,
		ServiceID:      5,
		Date:           availDay,
	})

	require.NoError(t, err)
	require.Empty(t, slots)
}
