package kafka

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/segmentio/kafka-go"
	"github.com/vmihailenco/msgpack/v5"

	"cms-backend/internal/entity"
	"cms-backend/internal/repo"
)

const ContentEventsTopic = "content-events"

type ContentEventKafkaRepository struct {
	writer  *kafka.Writer
	brokers []string
	readers []*kafka.Reader
}

func NewContentEventKafkaRepository(brokers []string) (repo.ContentEventRepository, error) {
	if len(brokers) == 0 {
		return nil, errors.New("не предоставлены брокеры Kafka")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// В идеале хотим 3 реплики для надежности
	factor, err := replicationFactor(ctx, brokers, 3)
	if err != nil {
		return nil, fmt.Errorf("ошибка при определении фактора репликации: %w", err)
	}

	topicConfig := TopicConfig{
		NumPartitions:     NumPartitions,
		ReplicationFactor: factor,
	}
	if err := createTopicIfNotExists(ctx, brokers, ContentEventsTopic, topicConfig); err != nil {
		return nil, fmt.Errorf("ошибка при создании топика %s: %w", ContentEventsTopic, err)
	}

	return &ContentEventKafkaRepository{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    ContentEventsTopic,
			Balancer: &kafka.Hash{},
		},
		brokers: brokers,
	}, nil
}

func (r *ContentEventKafkaRepository) PublishContentEvent(ctx context.Context, event *entity.ContentEvent) error {
	b, err := msgpack.Marshal(event)
	if err != nil {
		return err
	}

	// события об одной сущности попадают в одну партицию и читаются по порядку
	return r.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(string(event.Type) + ":" + strconv.Itoa(event.EntityID)),
		Value: b,
	})
}

func (r *ContentEventKafkaRepository) SubscribeContentEvents(ctx context.Context, groupID string) (<-chan *entity.ContentEvent, error) {
	if groupID == "" {
		return nil, errors.New("не указана группа потребителей")
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     r.brokers,
		Topic:       ContentEventsTopic,
		GroupID:     groupID,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	})
	r.readers = append(r.readers, reader)

	ch := make(chan *entity.ContentEvent)
	go func() {
		defer close(ch)
		for {
			m, err := reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() == nil {
					log.Errorf("ошибка чтения события из Kafka: %v", err)
				}
				return
			}
			var event entity.ContentEvent
			if err := msgpack.Unmarshal(m.Value, &event); err != nil {
				log.Warnf("не удалось декодировать событие (offset %d): %v", m.Offset, err)
				continue
			}
			select {
			case ch <- &event:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

func (r *ContentEventKafkaRepository) Close() error {
	var errs []error
	if err := r.writer.Close(); err != nil {
		errs = append(errs, err)
	}
	for _, reader := range r.readers {
		if err := reader.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
