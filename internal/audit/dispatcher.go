package audit

import "log"

type Event struct {
	SalonID  uint
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

type sink interface {
	Log(salonID uint, userID *uint, action, entity string, entityID *uint, metadata any) error
}

type Dispatcher struct {
	logger sink
	queue  chan Event
}

func NewDispatcher(logger sink) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.SalonID,
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			log.Println("audit error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
		// encolado
	default:
		// cola llena: descartamos el evento, la API nunca se bloquea
		log.Println("audit queue full, dropping event")
	}
}
