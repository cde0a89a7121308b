package schedule

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Refresher is the scheduled-refresh abstraction for "live" view data.
// Every polling loop in the app runs through it so teardown can stop all of
// them deterministically instead of leaking tickers bound to gone views.
type Refresher struct {
	cron *cron.Cron
	log  *zerolog.Logger
}

func NewRefresher(log *zerolog.Logger) *Refresher {
	return &Refresher{
		cron: cron.New(),
		log:  log,
	}
}

// Every registers fn to run at the given interval. Panics inside fn are not
// recovered here; refresh jobs are expected to report their own failures.
func (r *Refresher) Every(interval time.Duration, name string, fn func()) error {
	_, err := r.cron.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		started := time.Now()
		fn()
		r.log.Debug().Str("job", name).Dur("took", time.Since(started)).Msg("scheduled refresh ran")
	})
	if err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}
	return nil
}

func (r *Refresher) Start() {
	r.cron.Start()
}

// Stop cancels all schedules and waits for in-flight jobs to finish.
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}
