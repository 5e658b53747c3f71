package service

import (
	"context"
	"log"
	"time"
)

// EstimatedTimeTicker counts down the minutes-remaining estimate on orders
// that are confirmed or preparing. One decrement per tick, one tick per
// minute; the single loop goroutine guarantees ticks never overlap.
type EstimatedTimeTicker struct {
	orders   OrderRepository
	interval time.Duration
}

func NewEstimatedTimeTicker(orders OrderRepository) *EstimatedTimeTicker {
	return &EstimatedTimeTicker{orders: orders, interval: time.Minute}
}

func (t *EstimatedTimeTicker) Run(ctx context.Context) {
	log.Println("[order-svc] estimated-time ticker started")
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[order-svc] estimated-time ticker stopped")
			return
		case <-ticker.C:
			updated, err := t.orders.DecrementEstimatedTimes()
			if err != nil {
				log.Printf("[order-svc] estimated-time tick failed: %v", err)
				continue
			}
			if updated > 0 {
				log.Printf("[order-svc] decremented estimated time for %d orders", updated)
			}
		}
	}
}
