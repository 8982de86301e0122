package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SwiftKart/SwiftKart-Backend/services/monitoring/logging"
)

// Job is a named unit of housekeeping work. Interval zero means the job
// only runs when triggered with RunNow.
type Job struct {
	ID       string
	Name     string
	Fn       func(context.Context) error
	Interval time.Duration
	LastRun  time.Time
}

// Scheduler runs background jobs (stale cart pruning and similar
// housekeeping) off the request path. Jobs are registered before Start
// and stopped together via Stop.
type Scheduler struct {
	jobs   map[string]*Job
	mu     sync.RWMutex
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	logger *logging.Logger
}

func NewScheduler(logger *logging.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		jobs:   make(map[string]*Job),
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}
}

// AddRecurring registers a job to run every interval once Start is
// called.
func (s *Scheduler) AddRecurring(id, name string, interval time.Duration, fn func(context.Context) error) error {
	if interval <= 0 {
		return fmt.Errorf("job %s needs a positive interval", id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[id]; exists {
		return fmt.Errorf("job with ID %s already exists", id)
	}

	s.jobs[id] = &Job{
		ID:       id,
		Name:     name,
		Fn:       fn,
		Interval: interval,
	}
	s.logger.Info(fmt.Sprintf("registered job %s (%s) every %s", id, name, interval))
	return nil
}

// Start launches one goroutine per recurring job. Each job waits a full
// interval before its first run.
func (s *Scheduler) Start() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.loop(job)
	}
}

func (s *Scheduler) loop(job *Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			s.logger.Info(fmt.Sprintf("job %s stopped", job.ID))
			return
		case <-ticker.C:
			s.run(job)
		}
	}
}

// RunNow triggers a registered job immediately, regardless of its
// schedule.
func (s *Scheduler) RunNow(id string) error {
	s.mu.RLock()
	job, exists := s.jobs[id]
	s.mu.RUnlock()

	if !exists {
		return fmt.Errorf("job with ID %s not found", id)
	}

	s.run(job)
	return nil
}

func (s *Scheduler) run(job *Job) {
	if err := job.Fn(s.ctx); err != nil {
		s.logger.Error(fmt.Sprintf("job %s failed: %v", job.Name, err))
	}

	s.mu.Lock()
	job.LastRun = time.Now()
	s.mu.Unlock()
}

// Stop cancels all jobs and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}
