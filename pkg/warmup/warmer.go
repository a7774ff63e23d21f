package warmup

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Task is one unit of warmup work, typically priming a cached upstream
// response before a visitor asks for it.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Config contains configuration for the warmer.
type Config struct {
	// Schedule is a standard 5-field cron expression.
	Schedule string
	// Enabled indicates whether the warmer should run.
	Enabled bool
}

// DefaultConfig returns the default warmer configuration.
func DefaultConfig() Config {
	return Config{
		Schedule: "*/15 * * * *",
		Enabled:  true,
	}
}

// Warmer periodically executes warmup tasks on a cron schedule.
type Warmer struct {
	config Config
	parser cron.Parser
	tasks  []Task

	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
}

// NewWarmer creates a warmer for the given tasks.
func NewWarmer(config Config, tasks []Task) *Warmer {
	return &Warmer{
		config: config,
		parser: cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow),
		tasks:  tasks,
		stopCh: make(chan struct{}),
	}
}

// Validate checks that the configured cron expression parses.
func (w *Warmer) Validate() error {
	if _, err := w.parser.Parse(w.config.Schedule); err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	return nil
}

// Next returns the next execution time after the given time.
func (w *Warmer) Next(from time.Time) (time.Time, error) {
	schedule, err := w.parser.Parse(w.config.Schedule)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid cron expression: %w", err)
	}
	return schedule.Next(from), nil
}

// Start begins the warmer loop. Tasks also run once immediately so the
// cache is primed right after boot.
func (w *Warmer) Start(ctx context.Context) error {
	if !w.config.Enabled || len(w.tasks) == 0 {
		return nil
	}
	if err := w.Validate(); err != nil {
		return err
	}

	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	w.wg.Add(1)
	go w.run(ctx)

	log.Printf("[WARMUP] Started with schedule %q (%d tasks)", w.config.Schedule, len(w.tasks))
	return nil
}

// Stop gracefully stops the warmer.
func (w *Warmer) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	w.wg.Wait()
	log.Printf("[WARMUP] Stopped")
}

// run is the main warmer loop.
func (w *Warmer) run(ctx context.Context) {
	defer w.wg.Done()

	w.runTasks(ctx)

	for {
		next, err := w.Next(time.Now())
		if err != nil {
			log.Printf("[WARMUP] Failed to compute next run: %v", err)
			return
		}

		timer := time.NewTimer(time.Until(next))
		select {
		case <-timer.C:
			w.runTasks(ctx)
		case <-w.stopCh:
			timer.Stop()
			return
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}

// RunOnce executes all tasks once, returning the number of failures.
func (w *Warmer) RunOnce(ctx context.Context) int {
	return w.runTasks(ctx)
}

func (w *Warmer) runTasks(ctx context.Context) int {
	failures := 0
	for _, task := range w.tasks {
		if err := task.Run(ctx); err != nil {
			failures++
			log.Printf("[WARMUP] Task %s failed: %v", task.Name, err)
			continue
		}
		log.Printf("[WARMUP] Task %s completed", task.Name)
	}
	return failures
}
