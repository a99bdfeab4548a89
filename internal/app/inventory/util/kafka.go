package util

import (
	"context"
	"fmt"
	"time"

	"sweetshop/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

const metricsService = "inventory"

// KafkaProducer обертка над Kafka writer для отправки событий инвентаря
// События уходят в топик inventory_events для downstream-потребителей
// (аналитика, уведомления о низком остатке)
type KafkaProducer struct {
	writer *kafka.Writer
	topic  string
}

// NewKafkaProducer создает новый Kafka producer
// brokers - список брокеров Kafka в формате ["host:port"]
// topic - имя топика для событий инвентаря
func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
		// Настройки для production окружения
		BatchSize:    100,
		BatchTimeout: 10 * time.Second,
	}

	return &KafkaProducer{writer: writer, topic: topic}
}

// PublishMessage отправляет сообщение в Kafka
// key - ID сладости, чтобы события одной сладости попадали
// в одну партицию и сохраняли порядок
func (p *KafkaProducer) PublishMessage(ctx context.Context, key string, value []byte) error {
	message := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		metrics.RecordKafkaError(metricsService, p.topic)
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	metrics.RecordKafkaProduced(metricsService, p.topic)
	return nil
}

// Close закрывает Kafka writer и освобождает ресурсы
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
