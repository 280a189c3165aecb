package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/Telemetria-api/internal/application/ingestion"
	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
)

var _ ingestion.Publisher = (*Publisher)(nil)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// SignalEvent mensaje publicado por cada señal aceptada.
type SignalEvent struct {
	SignalID       string          `json:"signal_id"`
	ControllerID   string          `json:"controller_id"`
	CompanyID      string          `json:"company_id"`
	Address        string          `json:"controlador_id"`
	Timestamp      time.Time       `json:"tstamp"`
	Sensors        map[string]bool `json:"sensors"`
	Mask           int             `json:"mask"`
	Latitude       *string         `json:"latitude,omitempty"`
	Longitude      *string         `json:"longitude,omitempty"`
	Metadata       map[string]any  `json:"metadata,omitempty"`
	PublishedAtUTC time.Time       `json:"published_at"`
}

// Publisher escribe las señales aceptadas en un tópico, con el id del controlador como key
// para conservar el orden por controlador dentro de la partición.
type Publisher struct {
	writer messageWriter
	now    func() time.Time
}

// NewPublisher crea el writer hacia los brokers indicados.
func NewPublisher(brokers []string, topic string) *Publisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}
	return &Publisher{writer: w, now: time.Now}
}

// PublishSignal serializa la señal y la escribe en el tópico.
func (p *Publisher) PublishSignal(ctx context.Context, controller *entity.Controller, s *entity.Signal) error {
	event := SignalEvent{
		SignalID:       s.ID,
		ControllerID:   s.ControllerID,
		CompanyID:      controller.CompanyID,
		Address:        controller.Address,
		Timestamp:      s.Timestamp,
		Sensors:        s.Sensors.Map(),
		Mask:           s.Sensors.Mask(),
		Metadata:       s.Metadata,
		PublishedAtUTC: p.now().UTC(),
	}
	if s.HasLocation() {
		lat, lon := s.Latitude.String(), s.Longitude.String()
		event.Latitude, event.Longitude = &lat, &lon
	}
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: serializar señal: %w", err)
	}
	msg := kafka.Message{Key: []byte(s.ControllerID), Value: value, Time: s.Timestamp}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: publicar señal %s: %w", s.ID, err)
	}
	return nil
}

// Close vacía el buffer del writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
