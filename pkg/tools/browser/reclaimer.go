package browser

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/entrhq/voyager/pkg/logging"
)

// Reclaimer periodically reaps idle sessions for the lifetime of the
// process. It never closes a session mid-operation: the reap pass skips
// busy sessions and reconsiders them on the next tick.
type Reclaimer struct {
	manager  *SessionManager
	interval time.Duration
	grace    time.Duration
	cron     *cron.Cron
	logger   *logging.Logger
}

// NewReclaimer creates a reclaimer ticking at interval. grace bounds how
// long shutdown waits on each remaining session.
func NewReclaimer(manager *SessionManager, interval, grace time.Duration) *Reclaimer {
	logger, _ := logging.NewLogger("reclaimer")
	return &Reclaimer{
		manager:  manager,
		interval: interval,
		grace:    grace,
		logger:   logger,
	}
}

// Start begins the periodic reap. It is an error to start a running
// reclaimer.
func (r *Reclaimer) Start() error {
	if r.cron != nil {
		return fmt.Errorf("reclaimer already started")
	}

	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", r.interval), r.tick); err != nil {
		return fmt.Errorf("failed to schedule reclaim job: %w", err)
	}
	c.Start()
	r.cron = c
	r.logger.Infof("session reclaimer started, interval %s", r.interval)
	return nil
}

func (r *Reclaimer) tick() {
	if reclaimed := r.manager.ReapIdle(); len(reclaimed) > 0 {
		r.logger.Infof("reclaimed %d idle session(s): %v", len(reclaimed), reclaimed)
	}
}

// Stop cancels the periodic reap, waits for an in-flight pass to finish,
// and closes every remaining session with a bounded grace period each.
// Safe to call on a reclaimer that was never started.
func (r *Reclaimer) Stop() {
	if r.cron != nil {
		ctx := r.cron.Stop()
		select {
		case <-ctx.Done():
		case <-time.After(r.grace):
			r.logger.Warnf("reclaim pass did not finish within %s", r.grace)
		}
		r.cron = nil
	}
	r.manager.Shutdown(r.grace)
	r.logger.Infof("session reclaimer stopped")
}
