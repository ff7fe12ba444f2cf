package kafka

import (
	"time"

	"github.com/IBM/sarama"
)

type Config struct {
	Addrs []string `yaml:"addrs" envconfig:"KAFKA_ADDRS"`
	Topic string   `yaml:"topic" envconfig:"KAFKA_TOPIC" default:"borrowing-events"`
}

// Enabled reports whether any broker is configured.
func (c Config) Enabled() bool {
	return len(c.Addrs) > 0
}

type EventType string

const (
	EventCheckedOut EventType = "CHECKED_OUT"
	EventReturned   EventType = "RETURNED"
)

type BorrowingEvent struct {
	Type        EventType `json:"type"`
	BorrowingID int64     `json:"borrowingId"`
	BookID      int64     `json:"bookId"`
	BorrowerID  int64     `json:"borrowerId"`
	At          time.Time `json:"at"`
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}
