// Команда dlq-reprocess перекладывает события из dead-letter topic обратно
// в основной topic событий витрины. Без -execute только печатает, что было бы отправлено.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
)

const (
	clientID       = "storefront-dlq-reprocess"
	brokersEnv     = "STOREFRONT_KAFKA_BROKERS"
	defaultMax     = 100
	defaultIdleFor = 2 * time.Second
)

type options struct {
	brokers  []string
	from     string
	to       string
	max      int
	execute  bool
	tail     bool
	idleWait time.Duration
}

func (o options) mode() string {
	if o.execute {
		return "execute"
	}
	return "dry-run"
}

func (o options) validate() error {
	var problems []string
	if len(o.brokers) == 0 {
		problems = append(problems, "kafka brokers are required (-brokers or "+brokersEnv+")")
	}
	if strings.TrimSpace(o.from) == "" {
		problems = append(problems, "source topic is required")
	}
	if strings.TrimSpace(o.to) == "" {
		problems = append(problems, "target topic is required")
	}
	if o.from != "" && o.from == o.to {
		problems = append(problems, "source and target topics must differ")
	}
	if o.max <= 0 {
		problems = append(problems, "limit must be positive")
	}
	if o.idleWait <= 0 {
		problems = append(problems, "idle timeout must be positive")
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func parseOptions(args []string, getenv func(string) string) (options, error) {
	opts := options{}
	brokers := ""

	fs := flag.NewFlagSet("dlq-reprocess", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&brokers, "brokers", "", "comma-separated kafka brokers, defaults to $"+brokersEnv)
	fs.StringVar(&opts.from, "source-topic", kafka.TopicDeadLetterQueue, "dead-letter topic to read")
	fs.StringVar(&opts.to, "target-topic", kafka.TopicOrderEvents, "topic to republish into")
	fs.IntVar(&opts.max, "limit", defaultMax, "max messages to inspect across all partitions")
	fs.BoolVar(&opts.execute, "execute", false, "publish messages instead of listing them")
	fs.BoolVar(&opts.tail, "from-newest", false, "inspect the newest messages of each partition")
	fs.DurationVar(&opts.idleWait, "idle-timeout", defaultIdleFor, "stop reading a partition after this long without messages")
	if err := fs.Parse(args); err != nil {
		return options{}, fmt.Errorf("parse flags: %w", err)
	}

	if strings.TrimSpace(brokers) == "" {
		brokers = getenv(brokersEnv)
	}
	opts.brokers = splitList(brokers)

	if err := opts.validate(); err != nil {
		return options{}, err
	}
	return opts, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// partitionStream совместим с sarama.PartitionConsumer.
type partitionStream interface {
	Messages() <-chan *sarama.ConsumerMessage
	Errors() <-chan *sarama.ConsumerError
	Close() error
}

// deadLetters читает dead-letter topic по партициям.
type deadLetters interface {
	Partitions(topic string) ([]int32, error)
	Bounds(topic string, partition int32) (first, next int64, err error)
	Open(topic string, partition int32, offset int64) (partitionStream, error)
}

type saramaDeadLetters struct {
	client   sarama.Client
	consumer sarama.Consumer
}

func (s saramaDeadLetters) Partitions(topic string) ([]int32, error) {
	return s.client.Partitions(topic)
}

func (s saramaDeadLetters) Bounds(topic string, partition int32) (int64, int64, error) {
	first, err := s.client.GetOffset(topic, partition, sarama.OffsetOldest)
	if err != nil {
		return 0, 0, fmt.Errorf("oldest offset of %s/%d: %w", topic, partition, err)
	}
	next, err := s.client.GetOffset(topic, partition, sarama.OffsetNewest)
	if err != nil {
		return 0, 0, fmt.Errorf("newest offset of %s/%d: %w", topic, partition, err)
	}
	return first, next, nil
}

func (s saramaDeadLetters) Open(topic string, partition int32, offset int64) (partitionStream, error) {
	return s.consumer.ConsumePartition(topic, partition, offset)
}

type summary struct {
	scanned  int
	replayed int
	skipped  int
}

func (s *summary) merge(o summary) {
	s.scanned += o.scanned
	s.replayed += o.replayed
	s.skipped += o.skipped
}

// publishFailure прерывает проход: остальные сообщения того же topic-а скорее всего тоже не уйдут.
type publishFailure struct {
	outboxID string
	err      error
}

func (e *publishFailure) Error() string {
	return fmt.Sprintf("republish %s: %v", e.outboxID, e.err)
}

func (e *publishFailure) Unwrap() error { return e.err }

type replayer struct {
	opts      options
	source    deadLetters
	publisher domain.OutboxPublisher
	logger    *log.Entry
}

func newReplayer(opts options, source deadLetters, publisher domain.OutboxPublisher) (*replayer, error) {
	if source == nil {
		return nil, errors.New("dead-letter source is required")
	}
	if opts.execute && publisher == nil {
		return nil, errors.New("execute mode needs a publisher")
	}
	return &replayer{
		opts:      opts,
		source:    source,
		publisher: publisher,
		logger:    log.WithFields(log.Fields{"source_topic": opts.from, "mode": opts.mode()}),
	}, nil
}

// Run обходит партиции по возрастанию номера, пока не исчерпан общий лимит.
func (r *replayer) Run(ctx context.Context) (summary, error) {
	var total summary

	partitions, err := r.source.Partitions(r.opts.from)
	if err != nil {
		return total, fmt.Errorf("list partitions of %s: %w", r.opts.from, err)
	}
	slices.Sort(partitions)

	for _, p := range partitions {
		budget := r.opts.max - total.scanned
		if budget <= 0 {
			break
		}
		part, err := r.drain(ctx, p, budget)
		total.merge(part)
		if err != nil {
			return total, err
		}
	}

	r.logger.WithFields(log.Fields{
		"partitions": len(partitions),
		"scanned":    total.scanned,
		"replayed":   total.replayed,
		"skipped":    total.skipped,
	}).Info("dead-letter pass complete")
	return total, nil
}

// drain читает партицию до offset-а, который был последним на момент старта.
// Сообщения, дописанные во время прохода, не трогаются.
func (r *replayer) drain(ctx context.Context, partition int32, budget int) (summary, error) {
	var s summary

	first, next, err := r.source.Bounds(r.opts.from, partition)
	if err != nil {
		return s, err
	}
	if next <= first {
		return s, nil
	}
	start := first
	if r.opts.tail {
		start = max(first, next-int64(budget))
	}

	stream, err := r.source.Open(r.opts.from, partition, start)
	if err != nil {
		return s, fmt.Errorf("open partition %d: %w", partition, err)
	}
	defer stream.Close()

	idle := time.NewTimer(r.opts.idleWait)
	defer idle.Stop()

	for s.scanned < budget {
		var msg *sarama.ConsumerMessage
		select {
		case <-ctx.Done():
			return s, ctx.Err()
		case <-idle.C:
			r.logger.WithField("partition", partition).Debug("partition idle, moving on")
			return s, nil
		case cerr := <-stream.Errors():
			if cerr != nil {
				return s, fmt.Errorf("read partition %d: %w", partition, cerr)
			}
			continue
		case m, ok := <-stream.Messages():
			if !ok || m == nil {
				return s, nil
			}
			msg = m
		}
		if msg.Offset >= next {
			return s, nil
		}
		idle.Reset(r.opts.idleWait)

		s.scanned++
		err := r.replay(msg)
		var pf *publishFailure
		switch {
		case errors.As(err, &pf):
			return s, err
		case err != nil:
			s.skipped++
			r.logger.WithError(err).WithFields(log.Fields{
				"partition": msg.Partition,
				"offset":    msg.Offset,
			}).Warn("dead letter is not an outbox event, skipped")
		default:
			s.replayed++
		}
		if msg.Offset+1 >= next {
			return s, nil
		}
	}
	return s, nil
}

func (r *replayer) replay(msg *sarama.ConsumerMessage) error {
	event, dl, err := kafka.DecodeDeadLetter(msg.Value)
	if err != nil {
		return err
	}

	entry := r.logger.WithFields(log.Fields{
		"partition":      msg.Partition,
		"offset":         msg.Offset,
		"outbox_id":      event.ID,
		"aggregate_type": event.AggregateType,
		"aggregate_id":   event.AggregateID,
		"event_type":     event.EventType,
		"last_error":     dl.PublishError,
		"attempts":       dl.Attempts,
	})
	if !r.opts.execute {
		entry.Info("would republish dead letter")
		return nil
	}

	// В основной topic событие уходит как новое.
	event.Attempts = 0
	if err := r.publisher.Publish(event); err != nil {
		return &publishFailure{outboxID: event.ID, err: err}
	}
	entry.WithField("target_topic", r.opts.to).Info("dead letter republished")
	return nil
}

// connect поднимает клиентов Kafka. Продюсер создаётся только в execute-режиме.
var connect = func(opts options) (deadLetters, domain.OutboxPublisher, func(), error) {
	var closers []io.Closer
	release := func() {
		for _, c := range slices.Backward(closers) {
			if err := c.Close(); err != nil {
				log.WithError(err).Warn("close kafka resource")
			}
		}
	}

	cfg := sarama.NewConfig()
	cfg.ClientID = clientID
	cfg.Consumer.Return.Errors = true

	client, err := sarama.NewClient(opts.brokers, cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("kafka client: %w", err)
	}
	closers = append(closers, client)

	consumer, err := sarama.NewConsumerFromClient(client)
	if err != nil {
		release()
		return nil, nil, nil, fmt.Errorf("kafka consumer: %w", err)
	}
	closers = append(closers, consumer)
	source := saramaDeadLetters{client: client, consumer: consumer}

	if !opts.execute {
		return source, nil, release, nil
	}

	producer, err := kafka.NewProducer(opts.brokers, clientID)
	if err != nil {
		release()
		return nil, nil, nil, err
	}
	closers = append(closers, producer)
	return source, kafka.NewOutboxPublisher(producer, opts.to), release, nil
}

func run(ctx context.Context, args []string, getenv func(string) string) error {
	opts, err := parseOptions(args, getenv)
	if err != nil {
		return err
	}

	source, publisher, release, err := connect(opts)
	if err != nil {
		return err
	}
	defer release()

	rp, err := newReplayer(opts, source, publisher)
	if err != nil {
		return err
	}
	rp.logger.WithFields(log.Fields{
		"target_topic": opts.to,
		"limit":        opts.max,
		"from_newest":  opts.tail,
	}).Info("replaying dead letters")

	_, err = rp.Run(ctx)
	return err
}

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if err := run(context.Background(), os.Args[1:], os.Getenv); err != nil {
		log.WithError(err).Error("dlq-reprocess failed")
		os.Exit(1)
	}
}
