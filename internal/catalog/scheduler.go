package catalog

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/event-timekeeper/backend/internal/websocket"
)

// Scheduler refreshes the catalog cache on a cron schedule so the venue
// picker stays current across a long-lived display session. A refresh only
// replaces the cache and notifies clients; it never applies settings.
type Scheduler struct {
	cron        *cron.Cron
	service     *Service
	broadcaster *websocket.EventBroadcaster
	spec        string
}

// NewScheduler creates a catalog refresh scheduler. spec is a cron
// expression or an "@every" interval.
func NewScheduler(service *Service, hub *websocket.Hub, spec string) *Scheduler {
	if spec == "" {
		spec = "@every 15m"
	}

	var broadcaster *websocket.EventBroadcaster
	if hub != nil {
		broadcaster = websocket.NewEventBroadcaster(hub)
	}

	return &Scheduler{
		cron:        cron.New(),
		service:     service,
		broadcaster: broadcaster,
		spec:        spec,
	}
}

// Start begins the periodic refresh.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.refresh); err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("Catalog refresh scheduled (%s)", s.spec)
	return nil
}

// Stop gracefully shuts down the scheduler, waiting for a running refresh.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Catalog refresh scheduler stopped")
}

func (s *Scheduler) refresh() {
	count, err := s.service.Reload(context.Background())
	if err != nil {
		log.Printf("Catalog refresh failed: %v", err)
		return
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastCatalogReloaded(count)
	}
}
