package cron

import (
	"log"
	"os"
	"sync"
	"time"

	"ibarangay-be/blotter"
	"ibarangay-be/request"
)

// LifecycleScheduler drives the hourly housekeeping: expiring and
// archiving document requests, and reporting overdue blotter cases.
type LifecycleScheduler struct {
	requests *request.Service
	cases    *blotter.Service

	// Guards against overlapping runs when a sweep outlasts the interval.
	running sync.Mutex
}

func NewLifecycleScheduler(requests *request.Service, cases *blotter.Service) *LifecycleScheduler {
	return &LifecycleScheduler{
		requests: requests,
		cases:    cases,
	}
}

func (l *LifecycleScheduler) RunSweep() {
	if !l.running.TryLock() {
		log.Println("Lifecycle sweep still running, skipping this tick")
		return
	}
	defer l.running.Unlock()

	now := time.Now()

	result, err := l.requests.Sweep(now)
	if err != nil {
		log.Printf("Lifecycle sweep failed: %v", err)
	} else if result.ExpiredCount > 0 || result.ArchivedCount > 0 {
		log.Printf("Lifecycle sweep expired %d and archived %d request(s)", result.ExpiredCount, result.ArchivedCount)
	}

	overdue, err := l.cases.CountOverdue(now)
	if err != nil {
		log.Printf("Error counting overdue blotter cases: %v", err)
		return
	}
	if overdue > 0 {
		log.Printf("%d blotter case(s) overdue for follow-up", overdue)
	}
}

func (l *LifecycleScheduler) RegisterJobs(scheduler *Scheduler) error {
	spec := os.Getenv("LIFECYCLE_SWEEP_SCHEDULE")
	if spec == "" {
		spec = "0 0 * * * *"
	}

	if err := scheduler.AddJob(spec, l.RunSweep); err != nil {
		return err
	}

	log.Println("Lifecycle scheduler jobs registered successfully")
	return nil
}
