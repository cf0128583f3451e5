package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/CrestNiraj12/terminalwall/app"
	"github.com/CrestNiraj12/terminalwall/infra/config"
	"github.com/CrestNiraj12/terminalwall/infra/editor"
	"github.com/CrestNiraj12/terminalwall/infra/imageio"
	"github.com/CrestNiraj12/terminalwall/infra/localstore"
	"github.com/CrestNiraj12/terminalwall/infra/metrics"
	"github.com/CrestNiraj12/terminalwall/infra/natsbus"
	"github.com/CrestNiraj12/terminalwall/infra/postgres"
	"github.com/CrestNiraj12/terminalwall/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type cliMode int

const (
	cliRun cliMode = iota
	cliVersion
	cliHelp
	cliMigrate
	cliInvalid
)

func parseCLIArgs(args []string) (cliMode, string) {
	if len(args) == 0 {
		return cliRun, ""
	}

	switch args[0] {
	case "--version", "-version", "-v":
		return cliVersion, ""
	case "--help", "-h", "help":
		return cliHelp, ""
	case "--migrate", "migrate":
		return cliMigrate, ""
	default:
		return cliInvalid, fmt.Sprintf("unexpected argument: %s", strings.Join(args, " "))
	}
}

func usage() string {
	return "Usage: terminalwall [--version|-v] [--help|-h] [--migrate]"
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

// setupLogging sends the standard logger to path. The terminal belongs to
// the UI, so without a path logs are discarded.
func setupLogging(path string) (io.Closer, error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil), nil
	}
	f, err := tea.LogToFile(path, "terminalwall")
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f, nil
}

// localStore picks where the profile photo is kept.
func localStore(cfg config.Config) app.KeyValueStore {
	if cfg.MemcachedAddr != "" {
		return localstore.NewMemcacheStore("terminalwall:"+cfg.User.ID+":", localstore.DefaultMemcacheItemSize, cfg.MemcachedAddr)
	}
	return localstore.NewFileStore(cfg.StorePath, cfg.StoreQuota)
}

// realtime wires the change channel. With NATS, writes made here are
// announced on the bus and the feed listens there instead of on Postgres.
func realtime(cfg config.Config, db *postgres.Client, store app.PostStore) (app.PostStore, app.ChangeFeed, func(), error) {
	if cfg.Realtime != config.RealtimeNATS {
		return store, postgres.NewChangeFeed(db), func() {}, nil
	}
	bus, err := natsbus.Connect(cfg.NatsURL)
	if err != nil {
		return nil, nil, nil, err
	}
	return natsbus.NewPublishingStore(store, bus), bus, func() { _ = bus.Close() }, nil
}

func run(mode cliMode) error {
	// 1. Load config from environment.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logs, err := setupLogging(cfg.LogPath)
	if err != nil {
		return err
	}
	defer logs.Close()

	// 2. Build infrastructure.
	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := postgres.Connect(connectCtx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Migrate || mode == cliMigrate {
		if err := db.Migrate(connectCtx); err != nil {
			return err
		}
		log.Printf("schema applied")
	}
	if mode == cliMigrate {
		fmt.Println("terminalwall: schema is up to date")
		return nil
	}

	// 3. Build services (concrete types satisfy app.* interfaces).
	m := metrics.New()
	posts, changes, closeBus, err := realtime(cfg, db, postgres.NewPostStore(db))
	if err != nil {
		return err
	}
	defer closeBus()

	ctx, stop := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)
	if cfg.MetricsAddr != "" {
		g.Go(func() error { return m.Serve(gctx, cfg.MetricsAddr) })
	}

	// 4. Wire root TUI model.
	rootModel := tui.NewApp(tui.Deps{
		Posts:    m.InstrumentStore(posts),
		Changes:  m.InstrumentFeed(changes),
		Local:    localStore(cfg),
		Editor:   editor.NewEnvEditor(),
		Ingestor: imageio.NewIngestor(),
		User:     cfg.User,
	})

	// 5. Run.
	p := tea.NewProgram(rootModel, tea.WithAltScreen(), tea.WithContext(ctx))
	_, runErr := p.Run()
	stop()
	if err := g.Wait(); err != nil {
		log.Printf("metrics: %v", err)
	}
	if runErr != nil {
		return fmt.Errorf("terminalwall: %w", runErr)
	}
	return nil
}

func main() {
	mode, msg := parseCLIArgs(os.Args[1:])
	switch mode {
	case cliVersion:
		v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
		fmt.Printf("terminalwall %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		return
	case cliHelp:
		fmt.Println(usage())
		return
	case cliInvalid:
		fmt.Fprintf(os.Stderr, "%s\n%s\n", msg, usage())
		os.Exit(2)
	}

	if err := run(mode); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
