package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Chelo123Mau/P-RENAPP/config"
)

// Producer publishes decision events. A nil Producer is valid and means
// Kafka is not configured, callers fall back to direct delivery.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(cfg *config.Config) *Producer {
	if cfg.KafkaBrokers == "" {
		log.Println("⚠️ KAFKA_BROKERS not set, decision events will be delivered directly")
		return nil
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(cfg.KafkaBrokers, ",")...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: 10 * time.Second,
	}
	log.Printf("✅ Kafka producer ready (topic=%s)", cfg.KafkaTopic)
	return &Producer{writer: writer}
}

func (p *Producer) PublishDecision(ctx context.Context, ev DecisionEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(fmt.Sprintf("%s-%d", ev.Scope, ev.RefID)),
		Value: payload,
	})
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// StartConsumer reads decision events and delivers them to applicant
// inboxes. Runs until the context is cancelled.
func StartConsumer(ctx context.Context, cfg *config.Config, svc Service) {
	if cfg.KafkaBrokers == "" {
		return
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  strings.Split(cfg.KafkaBrokers, ","),
		Topic:    cfg.KafkaTopic,
		GroupID:  "renapp-notifications",
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	log.Printf("✅ Kafka consumer started (topic=%s)", cfg.KafkaTopic)

	go func() {
		defer reader.Close()
		for {
			msg, err := reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Printf("⚠️ Kafka read error: %v", err)
				time.Sleep(5 * time.Second)
				continue
			}

			var ev DecisionEvent
			if err := json.Unmarshal(msg.Value, &ev); err != nil {
				log.Printf("⚠️ Skipping malformed decision event: %v", err)
				continue
			}
			if err := svc.Deliver(ev); err != nil {
				log.Printf("⚠️ Failed to deliver decision event: %v", err)
			}
		}
	}()
}
