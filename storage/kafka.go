package storage

import (
	"context"
	"encoding/json"
	"strconv"

	"food-ordering-api/models"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaPublisher struct {
	Writer MessageWriter
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

// NewKafkaWriter builds a writer for topic on broker.
func NewKafkaWriter(broker, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}

// EncodeOrderEvent keys the message by order id so events of one order
// stay on one partition.
func EncodeOrderEvent(ev models.OrderEvent) (kafka.Message, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(ev.OrderID), 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(ev.Type)},
		},
	}, nil
}

func (p *KafkaPublisher) PublishOrderEvent(ctx context.Context, ev models.OrderEvent) error {
	msg, err := EncodeOrderEvent(ev)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, msg)
}
