package processor

import (
	"context"
	"time"

	"drinkcatalog/drinks-service/internal/app/drinks/entity"
	"drinkcatalog/pkg/logger"

	"github.com/robfig/cron/v3"
)

// FeaturedDrinkProvider resolves, and on a new day rotates, the drink of the day.
type FeaturedDrinkProvider interface {
	GetFeaturedDrink(ctx context.Context, today time.Time) (*entity.Drink, error)
}

// CronScheduler warms the drink of the day shortly after midnight so the
// first reader of the day does not pay for the rotation.
type CronScheduler struct {
	cron     *cron.Cron
	featured FeaturedDrinkProvider
	location *time.Location
	now      func() time.Time
}

func NewCronScheduler(featured FeaturedDrinkProvider, location *time.Location) *CronScheduler {
	if location == nil {
		location = time.Local
	}
	c := cron.New(cron.WithLocation(location))

	return &CronScheduler{
		cron:     c,
		featured: featured,
		location: location,
		now:      time.Now,
	}
}

// Start registers the rotation job and runs it once right away.
func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("starting cron scheduler")

	if _, err := s.cron.AddFunc(schedule, func() { s.warmFeatured(ctx) }); err != nil {
		return err
	}

	s.cron.Start()
	s.warmFeatured(ctx)

	return nil
}

func (s *CronScheduler) warmFeatured(ctx context.Context) {
	today := s.now().In(s.location)

	drink, err := s.featured.GetFeaturedDrink(ctx, today)
	if err != nil {
		logger.Error().Err(err).Str("day", today.Format(time.DateOnly)).Msg("failed to prepare drink of the day")
		return
	}

	logger.Info().
		Int64("drink_id", drink.ID).
		Str("day", today.Format(time.DateOnly)).
		Msg("drink of the day ready")
}

func (s *CronScheduler) Stop() {
	logger.Info().Msg("stopping cron scheduler")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("cron scheduler stopped")
}

func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
