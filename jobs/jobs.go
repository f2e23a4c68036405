package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// ConferenceReprovisioner retries conference links for appointments that
// were saved while the provider was unreachable.
type ConferenceReprovisioner interface {
	ReprovisionMissingConferences(ctx context.Context) (int, error)
}

/*
* Register the conference retry on the cron schedule
* Start the scheduler, the caller stops it on shutdown
 */
func StartConferenceRetry(spec string, timeout time.Duration, r ConferenceReprovisioner) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		log.Info().Msg("running conference retry")
		RunConferenceRetry(context.Background(), timeout, r)
	})
	if err != nil {
		log.Error().Err(err).Str("spec", spec).Msg("invalid conference retry schedule")
		return nil, err
	}
	c.Start()
	return c, nil
}

func RunConferenceRetry(ctx context.Context, timeout time.Duration, r ConferenceReprovisioner) int {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	fixed, err := r.ReprovisionMissingConferences(ctx)
	if err != nil {
		log.Error().Err(err).Msg("conference retry failed")
		return 0
	}
	log.Info().Int("fixed", fixed).Msg("conference retry finished")
	return fixed
}
