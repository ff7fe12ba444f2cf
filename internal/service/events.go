package service

import (
	"encoding/json"

	"github.com/IBM/sarama"

	"github.com/bibliotek/library-api/pkg/kafka"
)

// Events publishes borrowing lifecycle events. Publish failures must never
// fail the request that triggered them.
type Events interface {
	Publish(ev kafka.BorrowingEvent) error
}

type kafkaEvents struct {
	producer sarama.SyncProducer
	topic    string
}

func NewKafkaEvents(producer sarama.SyncProducer, topic string) Events {
	return &kafkaEvents{
		producer: producer,
		topic:    topic,
	}
}

func (e *kafkaEvents) Publish(ev kafka.BorrowingEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{Topic: e.topic, Value: sarama.StringEncoder(data)}
	if _, _, err = e.producer.SendMessage(msg); err != nil {
		return err
	}
	return nil
}

type nopEvents struct{}

// NewNopEvents is used when no Kafka brokers are configured.
func NewNopEvents() Events {
	return nopEvents{}
}

func (nopEvents) Publish(kafka.BorrowingEvent) error { return nil }
