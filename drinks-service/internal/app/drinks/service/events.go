package service

import (
	"context"
	"encoding/json"
	"strconv"

	"drinkcatalog/drinks-service/internal/app/drinks/entity"
	"drinkcatalog/drinks-service/internal/app/drinks/util"
	"drinkcatalog/pkg/logger"
)

// publishEvent sends event keyed by drink id. The state change it describes
// is already stored, so a broker failure is only logged.
func publishEvent(ctx context.Context, publisher util.MessagePublisher, event entity.DrinkEvent) {
	if publisher == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Str("event_type", event.EventType).Msg("failed to marshal drink event")
		return
	}

	if err := publisher.PublishMessage(ctx, strconv.FormatInt(event.DrinkID, 10), data); err != nil {
		logger.Warn().
			Err(err).
			Str("event_type", event.EventType).
			Int64("drink_id", event.DrinkID).
			Msg("failed to publish drink event")
	}
}
