package cloudsync

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// AutoSync runs SyncWithCloud on a fixed interval, mirroring the
// sync-if-stale check the app performs on load.
type AutoSync struct {
	scheduler gocron.Scheduler
	engine    *Engine
	interval  time.Duration
}

func NewAutoSync(engine *Engine, interval time.Duration) (*AutoSync, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("creating scheduler: %w", err)
	}
	return &AutoSync{scheduler: s, engine: engine, interval: interval}, nil
}

func (a *AutoSync) Start() error {
	_, err := a.scheduler.NewJob(
		gocron.DurationJob(a.interval),
		gocron.NewTask(a.run),
	)
	if err != nil {
		return fmt.Errorf("creating auto-sync job: %w", err)
	}
	a.scheduler.Start()
	return nil
}

func (a *AutoSync) Stop() error {
	return a.scheduler.Shutdown()
}

func (a *AutoSync) run() {
	res := a.engine.SyncWithCloud(context.Background())
	switch {
	case res.Error != "":
		log.Printf("auto-sync failed: %s", res.Error)
	case res.Action == ActionImported:
		log.Printf("auto-sync imported players (added %d, updated %d)", res.Added, res.Updated)
	}
}
