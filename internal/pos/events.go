package pos

import (
	"context"
	"time"

	"go.uber.org/zap"

	"restaurant-pos/internal/database/models"
)

const EventSaleCompleted = "sale.completed"

type Event struct {
	EventType string       `json:"event_type"`
	SaleID    string       `json:"sale_id"`
	Total     string       `json:"total"`
	Timestamp time.Time    `json:"timestamp"`
	SaleData  *models.Sale `json:"sale_data,omitempty"`
}

// Publisher fans sale events out to other systems. Delivery is best effort:
// a failed publish never undoes a recorded sale.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (s *Service) publishSaleCompleted(ctx context.Context, sale models.Sale) {
	event := Event{
		EventType: EventSaleCompleted,
		SaleID:    sale.ID,
		Total:     sale.Total.StringFixed(2),
		Timestamp: s.now().UTC(),
		SaleData:  &sale,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish sale event", zap.String("sale_id", sale.ID), zap.Error(err))
	}
}
