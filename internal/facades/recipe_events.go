package facades

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/gw-recipe-api/internal/logger"
	"github.com/sbilibin2017/gw-recipe-api/internal/models"
)

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// RecipeEventsKafkaFacade publishes recipe change events to Kafka.
type RecipeEventsKafkaFacade struct {
	writer KafkaWriter
}

// NewRecipeEventsKafkaFacade creates a facade. A nil writer disables publishing.
func NewRecipeEventsKafkaFacade(writer KafkaWriter) *RecipeEventsKafkaFacade {
	return &RecipeEventsKafkaFacade{writer: writer}
}

// Publish writes the event keyed by recipe id, so events of one recipe stay ordered.
func (f *RecipeEventsKafkaFacade) Publish(ctx context.Context, event models.RecipeEvent) error {
	log := logger.FromContext(ctx)

	if f.writer == nil {
		log.Warnw("Kafka writer not configured, skipping publishing", "event_id", event.EventID)
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Errorw("failed to marshal recipe event", "event_id", event.EventID, "error", err)
		return err
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("%s:%d", event.UserID, event.RecipeID)),
		Value: data,
	}

	if err := f.writer.WriteMessages(ctx, msg); err != nil {
		log.Errorw("failed to publish recipe event", "event_id", event.EventID, "operation", event.Operation, "error", err)
		return err
	}

	log.Infow("recipe event published", "event_id", event.EventID, "operation", event.Operation, "recipe_id", event.RecipeID)
	return nil
}
