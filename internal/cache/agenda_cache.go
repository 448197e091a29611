package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/estudionova/salon-agenda/internal/config"
	"github.com/estudionova/salon-agenda/internal/models"
)

const agendaTTL = 2 * time.Minute

// AgendaCache guarda la colección completa de turnos del día por
// (salón, profesional, fecha). Cualquier mutación de turno invalida la
// entrada; la UI siempre re-deriva desde un fetch fresco.
type AgendaCache struct {
	rdb *redis.Client
}

func NewRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPass,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     10,
		MinIdleConns: 1,
	})
}

func NewAgendaCache(rdb *redis.Client) *AgendaCache {
	return &AgendaCache{rdb: rdb}
}

func agendaKey(salonID, professionalID uint, day string) string {
	return fmt.Sprintf("agenda:%d:%d:%s", salonID, professionalID, day)
}

// Get devuelve (turnos, true) en hit; cualquier error de redis cuenta
// como miss, nunca rompe el listado.
func (c *AgendaCache) Get(
	ctx context.Context,
	salonID uint,
	professionalID uint,
	day string,
) ([]models.Turno, bool) {

	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, agendaKey(salonID, professionalID, day)).Bytes()
	if err != nil {
		return nil, false
	}

	var turnos []models.Turno
	if err := json.Unmarshal(raw, &turnos); err != nil {
		return nil, false
	}

	return turnos, true
}

func (c *AgendaCache) Set(
	ctx context.Context,
	salonID uint,
	professionalID uint,
	day string,
	turnos []models.Turno,
) {

	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(turnos)
	if err != nil {
		return
	}

	c.rdb.Set(ctx, agendaKey(salonID, professionalID, day), raw, agendaTTL)
}

// Invalidate borra todas las entradas de agenda del salón. Se usa un
// scan por patrón porque una transición puede mover el turno entre
// agendas (profesional reasignado, fecha distinta).
func (c *AgendaCache) Invalidate(ctx context.Context, salonID uint) {
	if c == nil || c.rdb == nil {
		return
	}

	pattern := fmt.Sprintf("agenda:%d:*", salonID)
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		c.rdb.Del(ctx, iter.Val())
	}
}
