package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"carwash-marketplace/internal/data/entity"
	"carwash-marketplace/pkg/utils"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Publisher interface {
	PublishBooking(ctx context.Context, evt entity.BookingEvent) error
	Close() error
}

// New returns a Kafka publisher, or a no-op one when no brokers are configured
func New(cfg utils.KafkaConfig, log *zap.Logger) Publisher {
	if len(cfg.Brokers) == 0 {
		return noopPublisher{}
	}

	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.BookingEventTopic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
		log: log.With(zap.String("publisher", "kafka")),
	}
}

type KafkaPublisher struct {
	writer *kafka.Writer
	log    *zap.Logger
}

// PublishBooking keys messages by booking id so one booking's events stay ordered
func (p *KafkaPublisher) PublishBooking(ctx context.Context, evt entity.BookingEvent) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal booking event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.BookingID.String()),
		Value: data,
		Time:  evt.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("write booking event: %w", err)
	}

	p.log.Debug("Booking event published",
		zap.String("type", string(evt.Type)),
		zap.String("booking_id", evt.BookingID.String()),
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

type noopPublisher struct{}

func (noopPublisher) PublishBooking(context.Context, entity.BookingEvent) error { return nil }
func (noopPublisher) Close() error                                              { return nil }
