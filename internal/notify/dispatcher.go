package notify

import (
	"encoding/json"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/glowslot/salon-scheduler/internal/models"
)

type Message struct {
	SalonID    uint
	CustomerID *uint
	UserID     *uint
	Title      string
	Body       string
	Data       any
}

// Dispatcher delivers notifications fire-and-forget: messages are queued,
// persisted by a worker, and dropped with a log line when the queue is
// full. A notification failure never reaches the booking path.
type Dispatcher struct {
	db    *gorm.DB
	queue chan Message
	log   zerolog.Logger
}

func NewDispatcher(db *gorm.DB, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		db:    db,
		queue: make(chan Message, 256),
		log:   log.With().Str("component", "notify").Logger(),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for msg := range d.queue {
		if err := d.persist(msg); err != nil {
			d.log.Error().Err(err).Str("title", msg.Title).Msg("notification write failed")
		}
	}
}

func (d *Dispatcher) persist(msg Message) error {
	var dataJSON string
	if msg.Data != nil {
		if b, err := json.Marshal(msg.Data); err == nil {
			dataJSON = string(b)
		}
	}

	n := models.Notification{
		SalonID:    msg.SalonID,
		CustomerID: msg.CustomerID,
		UserID:     msg.UserID,
		Title:      msg.Title,
		Body:       msg.Body,
		Data:       dataJSON,
	}

	return d.db.Create(&n).Error
}

// Dispatch enqueues a message. A nil dispatcher discards it.
func (d *Dispatcher) Dispatch(msg Message) {
	if d == nil {
		return
	}
	select {
	case d.queue <- msg:
	default:
		d.log.Warn().Str("title", msg.Title).Msg("notification queue full, dropping")
	}
}
