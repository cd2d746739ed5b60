/**
 * @description
 * Cron-driven background jobs. The only job today is the pending-review
 * digest: a periodic count of transfers stuck in `pending`, logged and
 * published so admin tooling can surface the backlog. The job is read-only and
 * never mutates transaction state.
 */

package app

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/greatwilliams57-droid/westmark-bank-backend/internal/domain"
)

// Scheduler manages the cron jobs.
type Scheduler struct {
	cron     *cron.Cron
	service  *Service
	schedule string
}

// NewScheduler creates a scheduler running the pending-review digest on the
// given cron schedule.
func NewScheduler(service *Service, schedule string) *Scheduler {
	c := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger)))
	return &Scheduler{cron: c, service: service, schedule: schedule}
}

// Start registers the jobs and starts the cron scheduler.
func (s *Scheduler) Start() {
	if _, err := s.cron.AddFunc(s.schedule, s.service.RunPendingReviewDigest); err != nil {
		log.Printf("level=error component=scheduler msg=\"failed to schedule pending review digest\" err=%v", err)
		return
	}
	log.Printf("level=info component=scheduler msg=\"scheduled pending review digest\" schedule=%q", s.schedule)
	s.cron.Start()
}

// Stop gracefully stops the cron scheduler and returns a context that is done
// once running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// RunPendingReviewDigest counts transfers awaiting admin review and publishes
// a backlog event when any exist.
func (s *Service) RunPendingReviewDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := s.repo.CountPendingTransactions(ctx)
	if err != nil {
		log.Printf("level=error component=scheduler msg=\"pending review digest failed\" err=%v", err)
		return
	}
	log.Printf("level=info component=scheduler msg=\"pending review digest\" pending=%d", count)
	if count > 0 {
		s.publish(ctx, domain.EventPendingTxBacklog, domain.PendingBacklogEvent{
			PendingCount: count,
			ObservedAt:   time.Now(),
		})
	}
}
