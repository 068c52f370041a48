package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/zjrosen/arcadia/internal/config"
	"github.com/zjrosen/arcadia/internal/flags"
	"github.com/zjrosen/arcadia/internal/infrastructure/sqlite"
	"github.com/zjrosen/arcadia/internal/log"
	"github.com/zjrosen/arcadia/internal/pubsub"
	"github.com/zjrosen/arcadia/internal/registry/command"
	"github.com/zjrosen/arcadia/internal/registry/handler"
	"github.com/zjrosen/arcadia/internal/registry/processor"
	"github.com/zjrosen/arcadia/internal/registry/query"
	"github.com/zjrosen/arcadia/internal/tracing"
	"github.com/zjrosen/arcadia/internal/watcher"
)

// runtime bundles everything a subcommand needs: the SQLite ledger, the
// command processor with its middleware chain, and the read-side query
// service.
type runtime struct {
	db        *sqlite.DB
	ledger    *sqlite.Ledger
	bus       *pubsub.Broker[any]
	processor *processor.CommandProcessor
	query     *query.Service
	tracer    *tracing.Provider
	flags     *flags.Registry
	watch     *watcher.Watcher
	cancel    context.CancelFunc
}

// openRuntime opens the ledger database and starts the command pipeline.
// Callers must close the returned runtime.
func openRuntime() (*runtime, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	db, err := sqlite.NewDB(cfg.LedgerPath)
	if err != nil {
		return nil, fmt.Errorf("opening ledger at %s: %w", cfg.LedgerPath, err)
	}
	l := sqlite.NewLedger(db)

	tracingCfg := tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		Exporter:     cfg.Tracing.Exporter,
		FilePath:     cfg.Tracing.FilePath,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRate:   cfg.Tracing.SampleRate,
	}
	if tracingCfg.Enabled && tracingCfg.Exporter == "file" && tracingCfg.FilePath == "" {
		tracingCfg.FilePath = config.DefaultTracesFilePath()
	}
	provider, err := tracing.NewProvider(tracingCfg)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("starting tracing: %w", err)
	}

	bus := pubsub.NewBroker[any]()
	p := processor.NewCommandProcessor(
		processor.WithQueueCapacity(cfg.Queue.Capacity),
		processor.WithEventBus(bus),
		processor.WithMiddleware(
			processor.NewLoggingMiddleware(processor.LoggingMiddlewareConfig{}),
			tracing.NewTracingMiddleware(tracing.TracingMiddlewareConfig{Tracer: provider.Tracer()}),
			processor.NewTimeoutMiddleware(processor.TimeoutMiddlewareConfig{}),
			processor.NewTransactionMiddleware(l),
		),
	)
	handler.RegisterAll(p)

	ctx, cancel := context.WithCancel(context.Background())
	go p.Run(ctx)
	if err := p.WaitForReady(ctx); err != nil {
		cancel()
		_ = db.Close()
		return nil, fmt.Errorf("starting command processor: %w", err)
	}

	var queryOpts []query.Option
	if cfg.Cache.Disabled {
		queryOpts = append(queryOpts, query.WithoutCache())
	}
	q := query.NewService(l, queryOpts...)
	q.StartInvalidation(ctx, bus)

	fr := flags.New(cfg.Flags)

	var w *watcher.Watcher
	if fr.Enabled(flags.FlagWatchInvalidation) {
		w, err = watcher.New(watcher.DefaultConfig(cfg.LedgerPath))
		if err != nil {
			log.ErrorErr(log.CatWatch, "ledger watcher unavailable, cache may serve stale tops", err)
			w = nil
		} else if changes, err := w.Start(); err != nil {
			log.ErrorErr(log.CatWatch, "ledger watcher failed to start", err)
			w = nil
		} else {
			go func() {
				for {
					select {
					case <-ctx.Done():
						return
					case <-changes:
						if err := q.Flush(ctx); err != nil {
							log.ErrorErr(log.CatCache, "cache flush after external ledger change failed", err)
						}
					}
				}
			}()
		}
	}

	return &runtime{
		db:        db,
		ledger:    l,
		bus:       bus,
		processor: p,
		query:     q,
		tracer:    provider,
		flags:     fr,
		watch:     w,
		cancel:    cancel,
	}, nil
}

// close drains in-flight commands and releases every resource.
func (r *runtime) close() {
	r.processor.Stop()
	r.cancel()
	if r.watch != nil {
		_ = r.watch.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = r.tracer.Shutdown(shutdownCtx)
	_ = r.db.Close()
}

// submit runs a single command through the pipeline and surfaces its failure
// as a CLI error.
func (r *runtime) submit(cmd command.Command) (*command.CommandResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := r.processor.SubmitAndWait(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		if result.Error != nil {
			return nil, result.Error
		}
		return nil, fmt.Errorf("%s failed", cmd.Type())
	}
	if r.flags.Enabled(flags.FlagVerboseResults) {
		if traced, ok := cmd.(interface{ TraceID() string }); ok && traced.TraceID() != "" {
			fmt.Printf("command %s trace %s\n", cmd.ID(), traced.TraceID())
		} else {
			fmt.Printf("command %s\n", cmd.ID())
		}
	}
	return result, nil
}
