package kafka

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	NumPartitions = 3
)

// TopicConfig содержит настройки для создания топика
type TopicConfig struct {
	NumPartitions     int
	ReplicationFactor int
}

// createTopicIfNotExists создает топик, если он не существует
func createTopicIfNotExists(ctx context.Context, brokers []string, topic string, config TopicConfig) error {
	conn, err := kafka.DialContext(ctx, "tcp", brokers[0])
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	topicExists, err := checkIfTopicExists(conn, topic)
	if err != nil {
		return err
	}
	if topicExists {
		return nil
	}

	// Топики создаются только через контроллер кластера
	controller, err := conn.Controller()
	if err != nil {
		return err
	}

	controllerConn, err := kafka.DialContext(ctx, "tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return err
	}
	defer func() { _ = controllerConn.Close() }()

	return controllerConn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     config.NumPartitions,
		ReplicationFactor: config.ReplicationFactor,
	})
}

// checkIfTopicExists проверяет, существует ли топик
func checkIfTopicExists(conn *kafka.Conn, topic string) (bool, error) {
	partitions, err := conn.ReadPartitions(topic)
	if err != nil {
		if errors.Is(err, kafka.UnknownTopicOrPartition) {
			return false, nil
		}
		return false, err
	}
	return len(partitions) > 0, nil
}

// replicationFactor подбирает фактор репликации не больше числа живых брокеров
func replicationFactor(ctx context.Context, brokers []string, desired int) (int, error) {
	if len(brokers) == 0 {
		return 1, errors.New("пустой список брокеров")
	}

	dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	conn, err := kafka.DialContext(dialCtx, "tcp", brokers[0])
	if err != nil {
		return 0, fmt.Errorf("не удалось подключиться к брокеру %s: %w", brokers[0], err)
	}
	defer func() { _ = conn.Close() }()

	if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		return 0, fmt.Errorf("ошибка установки таймаута чтения: %w", err)
	}

	brokerMetadata, err := conn.Brokers()
	if err != nil {
		return 0, fmt.Errorf("ошибка получения метаданных о брокерах: %w", err)
	}
	if len(brokerMetadata) == 0 {
		// метаданные пусты, ориентируемся на список из конфигурации
		return min(len(brokers), desired), nil
	}

	return min(len(brokerMetadata), desired), nil
}
