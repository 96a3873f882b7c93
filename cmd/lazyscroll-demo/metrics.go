package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/xqrs/lazyscroll/engine"
)

var framesRendered = promauto.NewCounter(prometheus.CounterOpts{
	Name: "lazyscroll_frames_total",
	Help: "Number of render frames run by the list engine",
})

var elementsCreated = promauto.NewCounter(prometheus.CounterOpts{
	Name: "lazyscroll_elements_created_total",
	Help: "Number of list items realized",
})

var elementsDestroyed = promauto.NewCounter(prometheus.CounterOpts{
	Name: "lazyscroll_elements_destroyed_total",
	Help: "Number of list items dropped by the engine",
})

var removalsDeferred = promauto.NewCounter(prometheus.CounterOpts{
	Name: "lazyscroll_removals_deferred_total",
	Help: "Number of item removals parked off canvas until the budget allows them",
})

var measurements = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "lazyscroll_measurements_total",
	Help: "Number of item measurements, by outcome",
}, []string{"outcome"})

var itemsReleased = promauto.NewCounter(prometheus.CounterOpts{
	Name: "lazyscroll_items_released_total",
	Help: "Number of items handed back to the lister",
})

var selfCheckFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "lazyscroll_selfcheck_failures_total",
	Help: "Number of autoscroll steps that found overlapping or stale items",
})

var frameBudget = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "lazyscroll_frame_budget",
	Help: "Creation budget of the next frame",
})

var pendingMeasurements = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "lazyscroll_pending_measurements",
	Help: "Number of items waiting to be measured",
})

var contentHeight = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "lazyscroll_content_height_rows",
	Help: "Estimated height of the whole list",
})

var frameDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "lazyscroll_frame_duration_seconds",
	Help:    "Time spent in one render frame",
	Buckets: prometheus.ExponentialBuckets(0.00005, 2, 14),
})

func observeFrame(stats engine.FrameStats) {
	framesRendered.Inc()
	elementsCreated.Add(float64(stats.Created))
	elementsDestroyed.Add(float64(stats.Destroyed))
	removalsDeferred.Add(float64(stats.Deferred))
	measurements.WithLabelValues("accepted").Add(float64(stats.Measured))
	measurements.WithLabelValues("requeued").Add(float64(stats.Requeued))
	frameBudget.Set(float64(stats.Budget))
	pendingMeasurements.Set(float64(stats.Pending))
	contentHeight.Set(stats.Height)
	frameDuration.Observe(stats.Elapsed.Seconds())
}
