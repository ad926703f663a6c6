package repository

import (
	"context"
	"time"

	"StockDesk/internal/domain/models"
	"StockDesk/internal/domain/repository"
	pkgkafka "StockDesk/pkg/kafka"

	"github.com/google/uuid"
)

// TradeEvent is the journal record of one filled market order.
type TradeEvent struct {
	EventID   string    `json:"event_id"`
	AccountID string    `json:"account_id"`
	Secid     string    `json:"secid"`
	Side      string    `json:"side"`
	Qty       float64   `json:"qty"`
	Timestamp time.Time `json:"ts"`
}

type publisher interface {
	Publish(ctx context.Context, topic string, key []byte, value interface{}, headers ...pkgkafka.Header) error
	Close() error
}

var tradeEventHeaders = []pkgkafka.Header{
	{Key: "event-type", Value: []byte("trade.filled")},
	{Key: "schema-version", Value: []byte("1")},
}

// KafkaJournal implements TradeJournal on a Kafka topic keyed by account.
type KafkaJournal struct {
	producer publisher
	topic    string
	now      func() time.Time
}

// NewKafkaJournal creates a journal writing to topic.
func NewKafkaJournal(producer publisher, topic string) repository.TradeJournal {
	return &KafkaJournal{producer: producer, topic: topic, now: time.Now}
}

func (j *KafkaJournal) Record(ctx context.Context, accountID string, order models.TradeOrder) error {
	return j.producer.Publish(ctx, j.topic, []byte(accountID), TradeEvent{
		EventID:   uuid.NewString(),
		AccountID: accountID,
		Secid:     order.Secid,
		Side:      string(order.Side),
		Qty:       order.Quantity,
		Timestamp: j.now().UTC(),
	}, tradeEventHeaders...)
}

func (j *KafkaJournal) Close() error {
	if j.producer != nil {
		return j.producer.Close()
	}
	return nil
}

// NoopJournal drops every record. Used when the journal is disabled.
type NoopJournal struct{}

func (NoopJournal) Record(context.Context, string, models.TradeOrder) error { return nil }
func (NoopJournal) Close() error                                            { return nil }
