package event

import (
	"context"
	"fmt"
	"log/slog"

	pkgkafka "github.com/unifit/bundle-service/pkg/kafka"

	"github.com/unifit/bundle-service/internal/domain"
)

// Kafka topic constants for bundle domain events.
const (
	TopicBundleResolved  = "unifit.bundle.resolved"
	TopicConfigUpdated   = "unifit.bundle.config.updated"
	TopicConfigCompleted = "unifit.bundle.config.completed"
)

// Aggregate type constant.
const AggregateTypeBundle = "bundle"

// Source identifier for events originating from this service.
const SourceBundleService = "bundle-service"

// BundleResolvedData is the payload for a bundle.resolved event.
type BundleResolvedData struct {
	Handle    string `json:"handle"`
	BundleID  string `json:"bundle_id"`
	Source    string `json:"source"`
	ItemCount int    `json:"item_count"`
}

// ConfigUpdatedData is the payload for a bundle.config.updated event.
type ConfigUpdatedData struct {
	SessionID      string  `json:"session_id"`
	BundleHandle   string  `json:"bundle_handle"`
	CompletedSteps int     `json:"completed_steps"`
	TotalSteps     int     `json:"total_steps"`
	Total          float64 `json:"total"`
}

// ConfigCompletedData is the payload for a bundle.config.completed event.
type ConfigCompletedData struct {
	SessionID    string  `json:"session_id"`
	BundleHandle string  `json:"bundle_handle"`
	Total        float64 `json:"total"`
	Net          float64 `json:"net"`
	VAT          float64 `json:"vat"`
}

// Producer publishes bundle domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the bundle service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishBundleResolved publishes a bundle.resolved event. The source field
// records which resolution layer produced the bundle.
func (p *Producer) PublishBundleResolved(ctx context.Context, b *domain.Bundle, source string) error {
	data := BundleResolvedData{
		Handle:    b.Handle,
		BundleID:  b.ID,
		Source:    source,
		ItemCount: len(b.Items),
	}

	event, err := pkgkafka.NewEvent(TopicBundleResolved, b.Handle, AggregateTypeBundle, SourceBundleService, data)
	if err != nil {
		return fmt.Errorf("create bundle.resolved event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicBundleResolved, event); err != nil {
		return fmt.Errorf("publish bundle.resolved event: %w", err)
	}

	return nil
}

// PublishConfigUpdated publishes a bundle.config.updated event.
func (p *Producer) PublishConfigUpdated(ctx context.Context, cfg *domain.BundleConfiguration, total float64) error {
	data := ConfigUpdatedData{
		SessionID:      cfg.SessionID,
		BundleHandle:   cfg.BundleHandle,
		CompletedSteps: cfg.CompletedSteps,
		TotalSteps:     cfg.TotalSteps,
		Total:          total,
	}

	event, err := pkgkafka.NewEvent(TopicConfigUpdated, cfg.SessionID, AggregateTypeBundle, SourceBundleService, data)
	if err != nil {
		return fmt.Errorf("create bundle.config.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicConfigUpdated, event); err != nil {
		return fmt.Errorf("publish bundle.config.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published bundle.config.updated event",
		slog.String("session_id", cfg.SessionID),
		slog.Int("completed_steps", cfg.CompletedSteps),
	)

	return nil
}

// PublishConfigCompleted publishes a bundle.config.completed event with the
// final price decomposition.
func (p *Producer) PublishConfigCompleted(ctx context.Context, cfg *domain.BundleConfiguration, quote domain.Quote) error {
	data := ConfigCompletedData{
		SessionID:    cfg.SessionID,
		BundleHandle: cfg.BundleHandle,
		Total:        quote.Total,
		Net:          quote.Net,
		VAT:          quote.VAT,
	}

	event, err := pkgkafka.NewEvent(TopicConfigCompleted, cfg.SessionID, AggregateTypeBundle, SourceBundleService, data)
	if err != nil {
		return fmt.Errorf("create bundle.config.completed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicConfigCompleted, event); err != nil {
		return fmt.Errorf("publish bundle.config.completed event: %w", err)
	}

	return nil
}
