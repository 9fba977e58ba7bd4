// Command vozform runs a voice-driven bridge-inspection interview and writes
// the finished record to the configured store and export files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/oae-tools/vozform/internal/admin"
	"github.com/oae-tools/vozform/internal/config"
	"github.com/oae-tools/vozform/internal/export"
	"github.com/oae-tools/vozform/internal/flow"
	"github.com/oae-tools/vozform/internal/interview"
	"github.com/oae-tools/vozform/internal/observe"
	"github.com/oae-tools/vozform/internal/peersync"
	"github.com/oae-tools/vozform/internal/record"
	"github.com/oae-tools/vozform/internal/resilience"
	"github.com/oae-tools/vozform/internal/script"
	"github.com/oae-tools/vozform/pkg/provider/stt"
	sttconsole "github.com/oae-tools/vozform/pkg/provider/stt/console"
	"github.com/oae-tools/vozform/pkg/provider/tts"
	ttsconsole "github.com/oae-tools/vozform/pkg/provider/tts/console"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	watch := flag.Bool("watch-config", false, "reload hot-swappable settings when the config file changes")
	flag.Parse()

	// ── Load configuration ────────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "vozform: config file %q not found, running with defaults\n", *configPath)
			cfg = &config.Config{}
			config.ApplyDefaults(cfg)
		} else {
			fmt.Fprintf(os.Stderr, "vozform: %v\n", err)
			return 1
		}
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	level := new(slog.LevelVar)
	level.Set(slogLevel(cfg.Server.LogLevel))
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	slog.Info("vozform starting",
		"version", version,
		"config", *configPath,
		"listen_addr", cfg.Server.ListenAddr,
		"log_level", cfg.Server.LogLevel,
	)

	// ── Signal context ────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Telemetry ─────────────────────────────────────────────────────────────
	otelShutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{
		ServiceName:    "vozform",
		ServiceVersion: version,
	})
	if err != nil {
		slog.Error("failed to initialise telemetry", "err", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			slog.Warn("telemetry shutdown error", "err", err)
		}
	}()
	metrics := observe.DefaultMetrics()

	// ── Config watcher (optional) ─────────────────────────────────────────────
	if *watch {
		w, err := config.NewWatcher(*configPath, func(old, new *config.Config) {
			d := config.Diff(old, new)
			if d.LogLevelChanged {
				level.Set(slogLevel(d.NewLogLevel))
				slog.Info("log level changed", "level", d.NewLogLevel)
			}
		})
		if err != nil {
			slog.Error("failed to start config watcher", "err", err)
			return 1
		}
		defer w.Stop()
	}

	// ── Interview script ──────────────────────────────────────────────────────
	var interviewScript *script.Script
	if cfg.Interview.ScriptPath != "" {
		interviewScript, err = script.LoadFile(cfg.Interview.ScriptPath)
		if err != nil {
			slog.Error("failed to load interview script", "path", cfg.Interview.ScriptPath, "err", err)
			return 1
		}
	} else {
		interviewScript = script.Default()
	}

	// ── Record store ──────────────────────────────────────────────────────────
	store, storeChecker, closeStore, err := buildStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialise record store", "err", err)
		return 1
	}
	defer closeStore()

	// ── Speech providers ──────────────────────────────────────────────────────
	reg := config.NewRegistry()
	registerBuiltinProviders(reg)

	sttProvider, err := buildSTT(cfg, reg)
	if err != nil {
		slog.Error("failed to create STT provider", "name", cfg.Providers.STT.Name, "err", err)
		return 1
	}
	ttsProvider, err := reg.CreateTTS(cfg.Providers.TTS)
	if err != nil {
		slog.Error("failed to create TTS provider", "name", cfg.Providers.TTS.Name, "err", err)
		return 1
	}
	slog.Info("providers ready", "stt", cfg.Providers.STT.Name, "tts", cfg.Providers.TTS.Name)

	// ── Interview session ─────────────────────────────────────────────────────
	session := interview.New(interview.Config{
		Language:       cfg.Interview.Language,
		SilenceTimeout: cfg.Interview.SilenceTimeout,
		Confirm:        cfg.Interview.Confirm,
	}, flow.New(interviewScript), sttProvider, ttsProvider,
		interview.WithLogger(logger),
		interview.WithMetrics(metrics),
	)

	// ── Admin HTTP server ─────────────────────────────────────────────────────
	mux := http.NewServeMux()
	admin.New(session, storeChecker).Register(mux)
	mux.Handle("/sync", peersync.NewHandler(store, logger))
	srv := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	printStartupSummary(cfg, len(interviewScript.Sections))

	// ── Run ───────────────────────────────────────────────────────────────────
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		if cfg.Server.TLS != nil {
			err = srv.ListenAndServeTLS(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		defer stop() // interview over, bring the admin server down too
		answers, err := session.Run(gctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				slog.Warn("interview ended early", "answered", len(answers), "err", err)
			} else {
				return err
			}
		}
		if len(answers) == 0 {
			slog.Info("nothing answered, nothing to save")
			return nil
		}
		return saveRecord(context.Background(), cfg, store, metrics, answers)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run error", "err", err)
		return 1
	}
	slog.Info("goodbye")
	return 0
}

// ── Provider wiring ───────────────────────────────────────────────────────────

// registerBuiltinProviders wires the provider factories that ship with
// vozform into reg. The console providers read transcripts from stdin and
// speak by printing, which is how the tool runs when no speech service is
// reachable in the field.
func registerBuiltinProviders(reg *config.Registry) {
	reg.RegisterSTT("console", func(config.ProviderEntry) (stt.Provider, error) {
		return sttconsole.New(os.Stdin), nil
	})
	reg.RegisterTTS("console", func(config.ProviderEntry) (tts.Provider, error) {
		return ttsconsole.New(os.Stdout), nil
	})
}

// buildSTT creates the configured STT provider, wrapped in a failover group
// when fallbacks are listed.
func buildSTT(cfg *config.Config, reg *config.Registry) (stt.Provider, error) {
	primary, err := reg.CreateSTT(cfg.Providers.STT)
	if err != nil {
		return nil, err
	}
	if len(cfg.Providers.STT.Fallbacks) == 0 {
		return primary, nil
	}

	group := resilience.NewSTTFallback(primary, cfg.Providers.STT.Name, resilience.FallbackConfig{})
	for _, name := range cfg.Providers.STT.Fallbacks {
		p, err := reg.CreateSTT(config.ProviderEntry{Name: name})
		if err != nil {
			return nil, fmt.Errorf("fallback %q: %w", name, err)
		}
		group.AddFallback(name, p)
		slog.Info("stt fallback registered", "name", name)
	}
	return group, nil
}

// buildStore selects the record store from the config: PostgreSQL when a DSN
// is configured, in-memory otherwise. The returned checker feeds /readyz and
// the close function releases the underlying pool.
func buildStore(ctx context.Context, cfg *config.Config) (record.Store, admin.Checker, func(), error) {
	if cfg.Store.PostgresDSN == "" {
		slog.Info("record store ready", "backend", "memory")
		checker := admin.Checker{
			Name:  "store",
			Check: func(context.Context) error { return nil },
		}
		return record.NewMemStore(), checker, func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.Store.PostgresDSN)
	if err != nil {
		return nil, admin.Checker{}, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	store := record.NewPostgresStore(pool)
	if err := store.Migrate(ctx); err != nil {
		pool.Close()
		return nil, admin.Checker{}, nil, fmt.Errorf("migrate schema: %w", err)
	}
	slog.Info("record store ready", "backend", "postgres")
	checker := admin.Checker{Name: "store", Check: pool.Ping}
	return store, checker, pool.Close, nil
}

// ── Record output ─────────────────────────────────────────────────────────────

// saveRecord upserts the finished record and writes the configured export
// files, then pushes the record to the peer when replication is configured.
func saveRecord(ctx context.Context, cfg *config.Config, store record.Store, metrics *observe.Metrics, answers map[string]string) error {
	b := record.FromFlat(answers)
	if err := store.Upsert(ctx, b); err != nil {
		if errors.Is(err, record.ErrMissingCode) {
			slog.Warn("record has no work code, skipping store upsert")
		} else {
			return fmt.Errorf("store record: %w", err)
		}
	} else {
		metrics.RecordExport(ctx, "store")
		slog.Info("record stored", "code", b.Code)
	}

	now := time.Now()
	for _, format := range cfg.Export.Formats {
		path := filepath.Join(cfg.Export.Dir, export.Filename(b.Code, string(format), now))
		if err := writeExport(path, format, b, now); err != nil {
			return fmt.Errorf("export %s: %w", format, err)
		}
		metrics.RecordExport(ctx, string(format))
		slog.Info("record exported", "format", format, "path", path)
	}

	if cfg.Peer.URL != "" {
		if err := peersync.NewClient(cfg.Peer.URL, slog.Default()).Push(ctx, &b); err != nil {
			// Replication is best effort; the record is already on disk.
			slog.Warn("peer push failed", "peer", cfg.Peer.URL, "err", err)
		} else {
			metrics.RecordExport(ctx, "peer")
		}
	}

	return nil
}

func writeExport(path string, format config.ExportFormat, b record.Bridge, now time.Time) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	switch format {
	case config.ExportCSV:
		err = export.WriteCSV(f, b)
	default:
		err = export.WriteJSON(f, []record.Bridge{b}, now)
	}
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ── Startup summary ───────────────────────────────────────────────────────────

func printStartupSummary(cfg *config.Config, sections int) {
	fmt.Println("╔═══════════════════════════════════════╗")
	fmt.Println("║         vozform — startup summary     ║")
	fmt.Println("╠═══════════════════════════════════════╣")
	printRow("STT", cfg.Providers.STT.Name)
	printRow("TTS", cfg.Providers.TTS.Name)
	printRow("Language", cfg.Interview.Language)
	if cfg.Store.PostgresDSN != "" {
		printRow("Store", "postgres")
	} else {
		printRow("Store", "memory")
	}
	printRow("Export dir", cfg.Export.Dir)
	if cfg.Peer.URL != "" {
		printRow("Peer sync", cfg.Peer.URL)
	} else {
		printRow("Peer sync", "(disabled)")
	}
	fmt.Printf("║  Script sections : %-19d ║\n", sections)
	if cfg.Server.ListenAddr != "" {
		printRow("Listen addr", cfg.Server.ListenAddr)
	}
	fmt.Println("╚═══════════════════════════════════════╝")
}

func printRow(kind, value string) {
	if value == "" {
		value = "(not configured)"
	}
	if len(value) > 19 {
		value = value[:16] + "…"
	}
	fmt.Printf("║  %-12s    : %-19s ║\n", kind, value)
}

// ── Logger ─────────────────────────────────────────────────────────────────────

func slogLevel(level config.LogLevel) slog.Level {
	switch level {
	case config.LogDebug:
		return slog.LevelDebug
	case config.LogWarn:
		return slog.LevelWarn
	case config.LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
