package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/laisvitor/wedding-backend/pkg/logger"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type NATSEventBus struct {
	conn *nats.Conn
}

func NewNATSEventBus(url string) (*NATSEventBus, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSEventBus{conn: conn}, nil
}

func (n *NATSEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSEventBus) Close() error {
	n.conn.Close()
	return nil
}

// NoopBus is used when NATS_URL is not configured. Publishes are dropped.
type NoopBus struct{}

func (NoopBus) Publish(context.Context, string, interface{}) error { return nil }
func (NoopBus) Close() error                                       { return nil }

// Event subjects
const (
	RSVPConfirmed        = "rsvp.confirmado"
	TestimonialSubmitted = "depoimento.enviado"
	TestimonialModerated = "depoimento.moderado"
	GuestCreated         = "convidado.criado"
)

// Event payloads
type RSVPConfirmedEvent struct {
	GuestID             int64     `json:"guest_id"`
	InviteCode          string    `json:"codigo_convite"`
	Status              string    `json:"status_rsvp"`
	AdultCount          int       `json:"qtd_adultos"`
	DietaryRestrictions string    `json:"restricoes_alimentares"`
	ConfirmedAt         time.Time `json:"data_confirmacao"`
}

type TestimonialSubmittedEvent struct {
	TestimonialID int64     `json:"depoimento_id"`
	GuestID       int64     `json:"guest_id"`
	SubmittedAt   time.Time `json:"data_criacao"`
}

type TestimonialModeratedEvent struct {
	TestimonialID int64  `json:"depoimento_id"`
	Status        string `json:"status_aprovacao"`
	AdminID       int64  `json:"admin_id"`
}

type GuestCreatedEvent struct {
	GuestID    int64  `json:"guest_id"`
	AdminID    int64  `json:"admin_id"`
	InviteCode string `json:"codigo_convite"`
	Name       string `json:"nome_convidado"`
}
