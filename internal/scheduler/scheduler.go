// Package scheduler runs the periodic expiry check. The check itself lives in
// services; this package only decides when it fires.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	applog "shelflife/internal/log"
	"shelflife/internal/services"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ExpiryChecker is satisfied by *services.NotificationService.
type ExpiryChecker interface {
	CheckExpiry(ctx context.Context) (services.CheckResult, error)
}

type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
}

func New(loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(loc), cron.WithParser(cronParser)),
		timeout: time.Minute,
	}
}

// AddExpiryCheck registers the check under a cron spec such as "@daily" or
// "0 0 8 * * *".
func (s *Scheduler) AddExpiryCheck(spec string, checker ExpiryChecker) (cron.EntryID, error) {
	return s.cron.AddFunc(spec, func() { s.RunExpiryCheck(checker) })
}

// RunExpiryCheck performs one check and logs the outcome.
func (s *Scheduler) RunExpiryCheck(checker ExpiryChecker) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	res, err := checker.CheckExpiry(ctx)
	if err != nil {
		applog.Error(nil, "cron.expiry.fail", err, nil)
		return
	}
	applog.Info(nil, "cron.expiry.done", map[string]any{
		"expiring": res.ExpiringCount,
		"sent":     res.NotificationSent,
		"deleted":  res.DeletedCount,
	})
}

func (s *Scheduler) Entries() []cron.Entry { return s.cron.Entries() }

func (s *Scheduler) Start() { s.cron.Start() }

// Stop waits for a running check to finish.
func (s *Scheduler) Stop() { <-s.cron.Stop().Done() }
