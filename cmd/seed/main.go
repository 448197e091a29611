package main

import (
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/estudionova/salon-agenda/internal/config"
	dbpkg "github.com/estudionova/salon-agenda/internal/db"
	domain "github.com/estudionova/salon-agenda/internal/domain/turno"
	"github.com/estudionova/salon-agenda/internal/models"
	"github.com/estudionova/salon-agenda/internal/timezone"
)

// Carga un salón de prueba con staff, clientes, servicios, horarios y
// turnos repartidos en todos los status del ciclo de vida.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	_ = godotenv.Load()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	gofakeit.Seed(time.Now().UnixNano())

	salon := seedSalon(db)
	seedOwner(db, salon)
	professionals := seedProfessionals(db, salon, 4)
	seedWorkingHours(db, professionals)
	services := seedServices(db, salon)
	clients := seedClients(db, salon, 40)
	seedTurnos(db, salon, professionals, services, clients, 120)

	log.Println("seed complete")
}

func seedSalon(db *gorm.DB) *models.Salon {
	salon := models.Salon{
		Name:              "Estudio Nova",
		Slug:              "estudio-nova",
		Phone:             gofakeit.Phone(),
		Address:           gofakeit.Street() + " " + gofakeit.StreetNumber(),
		Timezone:          timezone.DefaultTimezone,
		MinAdvanceMinutes: 60,
	}

	if err := db.Where("slug = ?", salon.Slug).FirstOrCreate(&salon).Error; err != nil {
		log.Fatalf("seed salon: %v", err)
	}

	log.Printf("salon %q (id=%d)", salon.Slug, salon.ID)
	return &salon
}

func seedOwner(db *gorm.DB, salon *models.Salon) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("admin1234"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("seed owner: %v", err)
	}

	owner := models.User{
		SalonID:      salon.ID,
		Name:         "Admin",
		Email:        "admin@estudionova.test",
		PasswordHash: string(hashed),
		Role:         "owner",
	}

	if err := db.Where("email = ?", owner.Email).FirstOrCreate(&owner).Error; err != nil {
		log.Fatalf("seed owner: %v", err)
	}

	log.Printf("owner %s / admin1234", owner.Email)
}

func seedProfessionals(db *gorm.DB, salon *models.Salon, count int) []models.Professional {
	specialties := []string{"Corte", "Color", "Barbería", "Manicura", "Peinado"}

	out := make([]models.Professional, 0, count)
	for i := 0; i < count; i++ {
		p := models.Professional{
			SalonID:   salon.ID,
			Name:      gofakeit.Name(),
			Email:     gofakeit.Email(),
			Phone:     gofakeit.Phone(),
			Specialty: specialties[gofakeit.Number(0, len(specialties)-1)],
			Available: true,
		}
		if err := db.Create(&p).Error; err != nil {
			log.Fatalf("seed professionals: %v", err)
		}
		out = append(out, p)
	}

	log.Printf("professionals seeded: %d", len(out))
	return out
}

func seedWorkingHours(db *gorm.DB, professionals []models.Professional) {
	for _, p := range professionals {
		// martes a sábado, con corte al mediodía
		for weekday := 2; weekday <= 6; weekday++ {
			wh := models.WorkingHours{
				ProfessionalID: p.ID,
				Weekday:        weekday,
				StartTime:      "09:00",
				EndTime:        "19:00",
				BreakStart:     "13:00",
				BreakEnd:       "14:00",
				Active:         true,
			}
			if err := db.Create(&wh).Error; err != nil {
				log.Fatalf("seed working hours: %v", err)
			}
		}
	}

	log.Println("working hours seeded")
}

func seedServices(db *gorm.DB, salon *models.Salon) []models.Service {
	base := []models.Service{
		{Name: "Corte de pelo", Category: "corte", DurationMin: 30, Price: 9000},
		{Name: "Corte y barba", Category: "corte", DurationMin: 45, Price: 12000},
		{Name: "Color completo", Category: "color", DurationMin: 90, Price: 35000},
		{Name: "Reflejos", Category: "color", DurationMin: 120, Price: 42000},
		{Name: "Manicura", Category: "manos", DurationMin: 40, Price: 8000},
		{Name: "Peinado evento", Category: "peinado", DurationMin: 60, Price: 15000},
	}

	out := make([]models.Service, 0, len(base))
	for _, s := range base {
		s.SalonID = salon.ID
		s.Active = true
		s.Description = gofakeit.Sentence(6)
		if err := db.Create(&s).Error; err != nil {
			log.Fatalf("seed services: %v", err)
		}
		out = append(out, s)
	}

	log.Printf("services seeded: %d", len(out))
	return out
}

func seedClients(db *gorm.DB, salon *models.Salon, count int) []models.Client {
	out := make([]models.Client, 0, count)
	for i := 0; i < count; i++ {
		c := models.Client{
			SalonID:  salon.ID,
			Name:     gofakeit.Name(),
			Username: gofakeit.Username(),
			Phone:    gofakeit.Phone(),
			Email:    gofakeit.Email(),
			DNI:      gofakeit.DigitN(8),
		}
		if err := db.Create(&c).Error; err != nil {
			log.Fatalf("seed clients: %v", err)
		}
		out = append(out, c)
	}

	log.Printf("clients seeded: %d", len(out))
	return out
}

func seedTurnos(
	db *gorm.DB,
	salon *models.Salon,
	professionals []models.Professional,
	services []models.Service,
	clients []models.Client,
	count int,
) {
	loc := timezone.Location(salon.Timezone)
	now := time.Now().In(loc)

	statuses := []domain.Status{
		domain.StatusPendiente,
		domain.StatusPendiente,
		domain.StatusConfirmado,
		domain.StatusConfirmado,
		domain.StatusEnProceso,
		domain.StatusCompletado,
		domain.StatusCompletado,
		domain.StatusCancelado,
		domain.StatusNoAsistio,
	}

	for i := 0; i < count; i++ {
		pro := professionals[gofakeit.Number(0, len(professionals)-1)]
		svc := services[gofakeit.Number(0, len(services)-1)]
		cli := clients[gofakeit.Number(0, len(clients)-1)]
		status := statuses[gofakeit.Number(0, len(statuses)-1)]

		// turnos repartidos entre dos semanas atrás y dos adelante,
		// los terminales siempre en el pasado
		dayOffset := gofakeit.Number(-14, 14)
		if domain.IsTerminal(status) || status == domain.StatusEnProceso {
			dayOffset = gofakeit.Number(-14, -1)
		}

		day := now.AddDate(0, 0, dayOffset)
		hour := gofakeit.Number(9, 18)
		minute := []int{0, 15, 30, 45}[gofakeit.Number(0, 3)]

		scheduledAt := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)

		t := models.Turno{
			SalonID:        salon.ID,
			ClientID:       cli.ID,
			ProfessionalID: pro.ID,
			ServiceID:      svc.ID,
			ScheduledAt:    scheduledAt,
			EndTime:        scheduledAt.Add(time.Duration(svc.DurationMin) * time.Minute),
			Status:         string(status),
			FinalPrice:     svc.Price,
		}

		stampHistory(&t, status, scheduledAt)

		if err := db.Create(&t).Error; err != nil {
			log.Fatalf("seed turnos: %v", err)
		}
	}

	log.Printf("turnos seeded: %d", count)
}

// stampHistory deja los timestamps coherentes con el camino recorrido
// hasta el status sembrado.
func stampHistory(t *models.Turno, status domain.Status, scheduledAt time.Time) {
	confirmed := scheduledAt.Add(-2 * time.Hour)
	started := scheduledAt
	done := scheduledAt.Add(30 * time.Minute)

	switch status {
	case domain.StatusConfirmado:
		t.ConfirmedAt = &confirmed
	case domain.StatusEnProceso:
		t.ConfirmedAt = &confirmed
		t.StartedAt = &started
	case domain.StatusCompletado:
		t.ConfirmedAt = &confirmed
		t.StartedAt = &started
		t.CompletedAt = &done
	case domain.StatusCancelado:
		t.CancelledAt = &confirmed
	case domain.StatusNoAsistio:
		t.ConfirmedAt = &confirmed
		t.NoShowAt = &done
	}
}
