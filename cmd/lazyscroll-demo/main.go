// Command lazyscroll-demo scrolls through a very long list of generated,
// variable-height items.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	cli "github.com/urfave/cli/v2"
	"github.com/xqrs/lazyscroll"
	"github.com/xqrs/lazyscroll/engine"
)

func main() {
	app := cli.App{
		Name:  "lazyscroll-demo",
		Usage: "scroll through a huge list of variable-height items",
	}

	app.Flags = []cli.Flag{
		&cli.IntFlag{
			Name:    "count",
			Usage:   "number of items in the list",
			Value:   100_000,
			EnvVars: []string{"LAZYSCROLL_COUNT"},
		},
		&cli.Int64Flag{
			Name:    "seed",
			Usage:   "seed for the generated item text",
			Value:   1,
			EnvVars: []string{"LAZYSCROLL_SEED"},
		},
		&cli.BoolFlag{
			Name:    "fixed",
			Usage:   "do not wrap items, so that every item height is known up front",
			EnvVars: []string{"LAZYSCROLL_FIXED"},
		},
		&cli.BoolFlag{
			Name:    "headers",
			Usage:   "show a header next to every tenth item",
			EnvVars: []string{"LAZYSCROLL_HEADERS"},
		},
		&cli.BoolFlag{
			Name:    "scrollbar",
			Usage:   "draw a scroll bar",
			Value:   true,
			EnvVars: []string{"LAZYSCROLL_SCROLLBAR"},
		},
		&cli.StringFlag{
			Name:    "scrollbar-glyphs",
			Usage:   "scroll bar glyphs: legacy, for fonts with legacy computing symbols, or unicode",
			Value:   "legacy",
			EnvVars: []string{"LAZYSCROLL_SCROLLBAR_GLYPHS"},
		},
		&cli.StringFlag{
			Name:    "border",
			Usage:   "border style: plain, round or thick",
			Value:   "round",
			EnvVars: []string{"LAZYSCROLL_BORDER"},
		},
		&cli.IntFlag{
			Name:    "buffer",
			Usage:   "rows kept realized above and below the viewport, 0 for one screen",
			EnvVars: []string{"LAZYSCROLL_BUFFER"},
		},
		&cli.IntFlag{
			Name:    "cache-size",
			Usage:   "number of generated item texts kept in memory",
			Value:   4096,
			EnvVars: []string{"LAZYSCROLL_CACHE_SIZE"},
		},
		&cli.DurationFlag{
			Name:    "autoscroll",
			Usage:   "scroll and check the layout on this interval, 0 to disable",
			EnvVars: []string{"LAZYSCROLL_AUTOSCROLL"},
		},
		&cli.StringFlag{
			Name:    "log-file",
			Usage:   "write logs to this file, they are discarded when empty",
			EnvVars: []string{"LAZYSCROLL_LOG_FILE"},
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "log level: debug, info, warn or error",
			Value:   "info",
			EnvVars: []string{"LAZYSCROLL_LOG_LEVEL"},
		},
		&cli.StringFlag{
			Name:    "metrics-listen",
			Usage:   "serve prometheus metrics on this address, e.g. :2112",
			EnvVars: []string{"LAZYSCROLL_METRICS_LISTEN"},
		},
	}

	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(cctx *cli.Context) error {
	ctx, cancel := context.WithCancel(cctx.Context)
	defer cancel()

	logger, closeLog, err := setupLogger(cctx.String("log-file"), cctx.String("log-level"))
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	borderSet, ok := lazyscroll.BorderSetByName(cctx.String("border"))
	if !ok {
		return fmt.Errorf("unknown border style: %q", cctx.String("border"))
	}

	glyphs, ok := lazyscroll.GlyphSetByName(cctx.String("scrollbar-glyphs"))
	if !ok {
		return fmt.Errorf("unknown scroll bar glyphs: %q", cctx.String("scrollbar-glyphs"))
	}

	lister, err := newDemoLister(
		cctx.Int("count"),
		cctx.Int64("seed"),
		cctx.Int("cache-size"),
		cctx.Bool("fixed"),
		cctx.Bool("headers"),
	)
	if err != nil {
		return err
	}

	app := lazyscroll.NewApplication()
	list := lazyscroll.NewLazyList().
		SetScheduler(app.Scheduler()).
		SetLogger(logger).
		SetBuffer(cctx.Int("buffer"))
	if cctx.Bool("headers") {
		list.SetHeaderWidth(8)
	}
	if cctx.Bool("scrollbar") {
		list.SetScrollBar(lazyscroll.NewScrollBar().SetGlyphSet(glyphs))
	}
	list.SetLister(lister)

	root := newFrame(list, borderSet)
	list.SetObserver(func(stats engine.FrameStats) {
		observeFrame(stats)
		if e := list.Engine(); e != nil {
			root.showStats(lister.Count(), e.Stats())
		}
	})

	if addr := cctx.String("metrics-listen"); addr != "" {
		srv := serveMetrics(addr, logger)
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), time.Second)
			defer done()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("failed to shut down metrics server", "err", err)
			}
		}()
	}

	if interval := cctx.Duration("autoscroll"); interval > 0 {
		go runAutoscroll(ctx, app, list, interval, cctx.Int64("seed"), logger)
	}

	logger.Info("starting", "count", lister.Count(), "fixed", lister.fixed, "headers", lister.headers)
	return app.SetRoot(root).Run()
}

// setupLogger returns a text logger writing to path at level. The returned
// function closes the log file.
func setupLogger(path, level string) (*slog.Logger, func(), error) {
	var hopts slog.HandlerOptions
	switch strings.ToLower(level) {
	case "debug":
		hopts.Level = slog.LevelDebug
	case "", "info":
		hopts.Level = slog.LevelInfo
	case "warn":
		hopts.Level = slog.LevelWarn
	case "error":
		hopts.Level = slog.LevelError
	default:
		return nil, nil, fmt.Errorf("unknown log level: %#v", level)
	}

	// The terminal belongs to the UI, so logs only go to a file.
	var out io.Writer = io.Discard
	closeLog := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		out = f
		closeLog = func() { _ = f.Close() }
	}
	return slog.New(slog.NewTextHandler(out, &hopts)), closeLog, nil
}

func serveMetrics(addr string, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	go func() {
		log := logger.With("source", "metrics_server")
		log.Info("metrics server listening", "addr", addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", "err", err)
		}
	}()
	return srv
}
