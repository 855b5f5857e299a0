// Command welcomehome runs the donation inventory web application.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/erazemk/welcomehome/internal/cache"
	"github.com/erazemk/welcomehome/internal/config"
	"github.com/erazemk/welcomehome/internal/db"
	"github.com/erazemk/welcomehome/internal/events"
	"github.com/erazemk/welcomehome/internal/service"
	"github.com/erazemk/welcomehome/internal/store"
)

// app holds what every command needs once flags and config are read.
type app struct {
	v        *viper.Viper
	cfgPath  string
	cfg      *config.Config
	closeLog func()
}

func main() {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:           "welcomehome",
		Short:         "WelcomeHome donation inventory",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.closeLog != nil {
				a.closeLog()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgPath, "config", "c", "", "YAML config file")
	flags.String("driver", "sqlite", "database driver (sqlite or postgres)")
	flags.StringP("db", "d", "welcomehome.sqlite3", "database DSN or SQLite path")
	flags.StringP("log", "l", "", "log file path (default: stdout/stderr only)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	mustBind(a.v, "database.driver", flags.Lookup("driver"))
	mustBind(a.v, "database.dsn", flags.Lookup("db"))
	mustBind(a.v, "log.path", flags.Lookup("log"))
	mustBind(a.v, "log.level", flags.Lookup("log-level"))

	root.AddCommand(serveCmd(a), initCmd(a), seedCmd(a))

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// mustBind lets a flag override the config key when it is set.
func mustBind(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag for %s: %v", key, err))
	}
}

// load reads the configuration and sets up logging.
func (a *app) load() error {
	cfg, err := config.Load(a.v, a.cfgPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	closeLog, err := setupLogger(cfg.Log.Path, cfg.Log.SlogLevel())
	if err != nil {
		return err
	}
	a.closeLog = closeLog
	return nil
}

// isNewSQLite reports whether the configured SQLite file does not exist yet.
func (a *app) isNewSQLite() bool {
	if a.cfg.Database.Driver != string(db.SQLite) {
		return false
	}
	dsn := strings.TrimPrefix(a.cfg.Database.DSN, "file:")
	if i := strings.IndexByte(dsn, '?'); i >= 0 {
		dsn = dsn[:i]
	}
	if dsn == ":memory:" {
		return false
	}
	_, err := os.Stat(dsn)
	return errors.Is(err, os.ErrNotExist)
}

// openDB connects and applies pending migrations.
func (a *app) openDB() (*db.DB, error) {
	conn, err := db.Open(a.cfg.Database.Driver, a.cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(conn); err != nil {
		conn.Close()
		return nil, err
	}
	slog.Info("database ready", "driver", a.cfg.Database.Driver)
	return conn, nil
}

// openCache connects the category cache when one is configured. A
// configured but unreachable Redis disables caching.
func (a *app) openCache(ctx context.Context) (service.Cache, func()) {
	if a.cfg.Redis.Addr == "" {
		return nil, func() {}
	}

	c := cache.New(a.cfg.Redis.Addr, a.cfg.Redis.TTL)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := c.Ping(pingCtx); err != nil {
		slog.Warn("redis unavailable, category cache disabled", "addr", a.cfg.Redis.Addr, "error", err)
		c.Close()
		return nil, func() {}
	}

	slog.Info("category cache enabled", "addr", a.cfg.Redis.Addr)
	return c, func() { c.Close() }
}

// openEvents connects the event publisher when NATS is configured.
func (a *app) openEvents() (events.Publisher, func()) {
	if a.cfg.NATS.URL == "" {
		return events.Discard{}, func() {}
	}

	pub, nc, err := events.Connect(a.cfg.NATS.URL, a.cfg.NATS.Subject)
	if err != nil {
		slog.Warn("nats unavailable, events disabled", "url", a.cfg.NATS.URL, "error", err)
		return events.Discard{}, func() {}
	}

	slog.Info("event publishing enabled", "subject", a.cfg.NATS.Subject)
	return pub, func() {
		if err := nc.Drain(); err != nil {
			slog.Warn("failed to drain nats connection", "error", err)
		}
	}
}

// seedDefaults loads the built-in categories and locations.
func seedDefaults(ctx context.Context, svc *service.Services) error {
	if err := svc.Catalog.Seed(ctx, store.DefaultReferenceData()); err != nil {
		return fmt.Errorf("seeding reference data: %w", err)
	}
	return nil
}
