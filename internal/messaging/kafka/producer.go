package kafka

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"
)

// ErrProducerClosed возвращается при отправке через неинициализированный producer.
var ErrProducerClosed = errors.New("kafka producer is not initialized")

// Value сообщения сериализуется в JSON.
type Message struct {
	Topic   string
	Key     string
	Value   any
	Headers map[string]string
}

// Delivery указывает, куда брокер записал сообщение.
type Delivery struct {
	Partition int32
	Offset    int64
}

// Producer — синхронный идемпотентный producer поверх sarama.
type Producer struct {
	sync   sarama.SyncProducer
	logger *log.Entry
}

// NewProducer подключается к брокерам с подтверждением от всех реплик.
func NewProducer(brokers []string, clientID string) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are not configured")
	}

	sp, err := sarama.NewSyncProducer(brokers, producerConfig(clientID))
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return newProducer(sp), nil
}

func producerConfig(clientID string) *sarama.Config {
	cfg := sarama.NewConfig()
	if clientID != "" {
		cfg.ClientID = clientID
	}
	// Idempotent требует WaitForAll и не больше одного запроса в полёте.
	cfg.Producer.Idempotent = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Net.MaxOpenRequests = 1
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Return.Successes = true
	cfg.Producer.Compression = sarama.CompressionSnappy
	return cfg
}

func newProducer(sp sarama.SyncProducer) *Producer {
	return &Producer{sync: sp, logger: log.WithField("component", "kafka-producer")}
}

// Send сериализует и синхронно отправляет сообщение.
func (p *Producer) Send(m Message) (Delivery, error) {
	if p == nil || p.sync == nil {
		return Delivery{}, ErrProducerClosed
	}

	value, err := json.Marshal(m.Value)
	if err != nil {
		return Delivery{}, fmt.Errorf("encode %s message: %w", m.Topic, err)
	}

	msg := &sarama.ProducerMessage{
		Topic:     m.Topic,
		Key:       sarama.StringEncoder(m.Key),
		Value:     sarama.ByteEncoder(value),
		Headers:   recordHeaders(m.Headers),
		Timestamp: time.Now(),
	}

	fields := log.Fields{"topic": m.Topic, "key": m.Key}
	partition, offset, err := p.sync.SendMessage(msg)
	if err != nil {
		p.logger.WithFields(fields).WithError(err).Error("kafka send failed")
		return Delivery{}, fmt.Errorf("send to %s: %w", m.Topic, err)
	}

	fields["partition"], fields["offset"] = partition, offset
	p.logger.WithFields(fields).Debug("kafka message delivered")
	return Delivery{Partition: partition, Offset: offset}, nil
}

// recordHeaders сортирует заголовки по имени, чтобы порядок был стабильным.
func recordHeaders(headers map[string]string) []sarama.RecordHeader {
	if len(headers) == 0 {
		return nil
	}
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]sarama.RecordHeader, 0, len(names))
	for _, name := range names {
		out = append(out, sarama.RecordHeader{Key: []byte(name), Value: []byte(headers[name])})
	}
	return out
}

func (p *Producer) Close() error {
	if p == nil || p.sync == nil {
		return nil
	}
	if err := p.sync.Close(); err != nil {
		return fmt.Errorf("close kafka producer: %w", err)
	}
	return nil
}
