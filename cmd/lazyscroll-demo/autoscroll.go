package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/xqrs/lazyscroll"
)

// autoscroller sweeps the viewport down the list and back up, jumping to a
// random position whenever it reaches the top.
type autoscroller struct {
	pos   float64
	incr  float64
	faker *gofakeit.Faker
}

func newAutoscroller(seed int64, incr float64) *autoscroller {
	return &autoscroller{incr: math.Abs(incr), faker: gofakeit.New(seed)}
}

// next returns the next position as a fraction of the list height.
func (a *autoscroller) next() float64 {
	a.pos += a.incr
	switch {
	case a.pos >= 1:
		a.pos, a.incr = 1, -a.incr
	case a.pos <= 0:
		a.pos, a.incr = a.faker.Float64Range(0, 1), math.Abs(a.incr)
	}
	return a.pos
}

// checkLayout verifies that the visible items follow each other without gaps
// or overlaps and that each is drawn at its measured height.
func checkLayout(list *lazyscroll.LazyList) error {
	visible := list.Visible()
	for i, v := range visible {
		if h, ok := list.Cache().Get(v.Index); ok && int(h) != v.Height {
			return fmt.Errorf("item %d: measured %v rows, drawn %d", v.Index, h, v.Height)
		}
		if i == 0 {
			continue
		}
		prev := visible[i-1]
		if v.Index != prev.Index+1 {
			return fmt.Errorf("item %d follows item %d", v.Index, prev.Index)
		}
		if end := prev.Row + prev.Height; end != v.Row {
			return fmt.Errorf("item %d ends at row %d, item %d starts at row %d", prev.Index, end, v.Index, v.Row)
		}
	}
	return nil
}

// autoscrollStep checks the current layout once the list has settled, then
// moves on.
func autoscrollStep(list *lazyscroll.LazyList, scroller *autoscroller, log *slog.Logger) {
	e := list.Engine()
	if e == nil {
		return
	}
	if !e.Rendering() && e.PendingMeasurements() == 0 {
		if err := checkLayout(list); err != nil {
			selfCheckFailures.Inc()
			log.Error("layout check failed", "err", err, "top", list.Top())
		}
	}
	list.ScrollTo(scroller.next() * e.Height())
}

func runAutoscroll(ctx context.Context, app *lazyscroll.Application, list *lazyscroll.LazyList, interval time.Duration, seed int64, log *slog.Logger) {
	scroller := newAutoscroller(seed, 0.002)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("autoscroll started", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		app.QueueUpdateDraw(func() {
			autoscrollStep(list, scroller, log)
		})
	}
}
