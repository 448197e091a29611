package handlers

import (
	"time"

	"github.com/estudionova/salon-agenda/internal/models"
	"github.com/estudionova/salon-agenda/internal/timezone"
)

// resuelve el timezone oficial del salón
func locationFromSalon(salon *models.Salon) *time.Location {
	if salon != nil && salon.Timezone != "" {
		return timezone.Location(salon.Timezone)
	}
	return timezone.Location("")
}

func parseDateInSalon(salon *models.Salon, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromSalon(salon),
	)
}
