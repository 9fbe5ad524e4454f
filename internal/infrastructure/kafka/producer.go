package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/hsm-textlab/workbench/internal/cfg"
	"github.com/hsm-textlab/workbench/internal/usecase"
	"github.com/hsm-textlab/workbench/pkg/e"
	"github.com/hsm-textlab/workbench/pkg/logger"
	"github.com/segmentio/kafka-go"
)

const (
	networkMode       = "tcp"
	topicPartitions   = 1
	replicationFactor = 1
)

// Producer публикует события разметки в Kafka. Ключ сообщения - имя
// кластеризатора, поэтому события одного кластеризатора идут по порядку.
type Producer struct {
	writer messageWriter
	logger logger.Logger
	cfg    *cfg.KafkaCfg
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

func NewProducer(logger logger.Logger, cfg *cfg.KafkaCfg) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    10,
		BatchTimeout: 50 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
	}

	return &Producer{
		writer: writer,
		logger: logger,
		cfg:    cfg,
	}
}

// PublishLabelEvent сериализует событие в JSON и отправляет его синхронно.
func (p *Producer) PublishLabelEvent(ctx context.Context, event *usecase.LabelEvent) error {
	const op = "Producer.PublishLabelEvent"

	msg, err := toMessage(event)
	if err != nil {
		return e.Wrap(op, err)
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return e.Wrap(op, err)
	}

	p.logger.Debugf("label event %s (%s) published for %q", event.EventID, event.Type, event.Clusterer)
	return nil
}

// EnsureTopic создает топик через контроллер кластера, если брокер его еще не знает.
// Срок ожидания задается дедлайном ctx.
func (p *Producer) EnsureTopic(ctx context.Context) error {
	const op = "Producer.EnsureTopic"

	conn, err := dial(ctx, p.cfg.Brokers[0])
	if err != nil {
		return e.Wrap(op, err)
	}
	defer conn.Close()

	if partitions, err := conn.ReadPartitions(p.cfg.Topic); err == nil && len(partitions) > 0 {
		p.logger.Debugf("kafka topic %s exists with %d partitions", p.cfg.Topic, len(partitions))
		return nil
	}

	controller, err := conn.Controller()
	if err != nil {
		return e.Wrap(op, err)
	}

	ctrl, err := dial(ctx, net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return e.Wrap(op, err)
	}
	defer ctrl.Close()

	err = ctrl.CreateTopics(kafka.TopicConfig{
		Topic:             p.cfg.Topic,
		NumPartitions:     topicPartitions,
		ReplicationFactor: replicationFactor,
	})
	if err != nil {
		return e.Wrap(op, fmt.Errorf("create topic %s: %w", p.cfg.Topic, err))
	}

	p.logger.Infof("kafka topic %s created", p.cfg.Topic)
	return nil
}

func dial(ctx context.Context, addr string) (*kafka.Conn, error) {
	conn, err := kafka.DialContext(ctx, networkMode, addr)
	if err != nil {
		return nil, err
	}

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}

	return conn, nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

func toMessage(event *usecase.LabelEvent) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(event.Clusterer),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}, nil
}
