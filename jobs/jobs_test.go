package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReprovisioner struct {
	fixed    int
	err      error
	calls    int
	deadline bool
}

func (f *fakeReprovisioner) ReprovisionMissingConferences(ctx context.Context) (int, error) {
	f.calls++
	_, f.deadline = ctx.Deadline()
	return f.fixed, f.err
}

func TestRunConferenceRetry(t *testing.T) {
	t.Run("reports fixed count", func(t *testing.T) {
		r := &fakeReprovisioner{fixed: 3}
		assert.Equal(t, 3, RunConferenceRetry(context.Background(), time.Minute, r))
		assert.True(t, r.deadline)
	})

	t.Run("failure counts nothing", func(t *testing.T) {
		r := &fakeReprovisioner{fixed: 3, err: errors.New("mongo down")}
		assert.Equal(t, 0, RunConferenceRetry(context.Background(), 0, r))
		assert.False(t, r.deadline)
		assert.Equal(t, 1, r.calls)
	})
}

func TestStartConferenceRetry(t *testing.T) {
	t.Run("valid schedule", func(t *testing.T) {
		c, err := StartConferenceRetry("*/15 * * * *", time.Minute, &fakeReprovisioner{})
		require.NoError(t, err)
		defer c.Stop()
		assert.Len(t, c.Entries(), 1)
	})

	t.Run("invalid schedule", func(t *testing.T) {
		c, err := StartConferenceRetry("every now and then", time.Minute, &fakeReprovisioner{})
		assert.Error(t, err)
		assert.Nil(t, c)
	})
}
