package main

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/urfave/cli/v2"

	"anitrack/internal/config"
	"anitrack/internal/metrics"
	"anitrack/internal/mongo"
	"anitrack/internal/mysql"
	"anitrack/internal/routing"
	"anitrack/pkg/handlers"
	"anitrack/pkg/identity"
	"anitrack/pkg/middleware"
	"anitrack/pkg/password"
	"anitrack/pkg/readlist"
	"anitrack/pkg/session"
	"anitrack/pkg/token"
	"anitrack/pkg/user"
)

const pruneInterval = time.Hour

func serveCmd() *cli.Command {
	var addr string
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "Address to bind, overrides ADDR",
				Destination: &addr,
			},
		},
		Action: func(c *cli.Context) error {
			cfg, log, err := setup(c)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			return serve(c.Context, cfg, log)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	db, err := mysql.LoadDB(ctx, cfg.MySQLDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := mysql.Migrate(ctx, db); err != nil {
		return err
	}

	mongoDB, disconnect, err := mongo.LoadDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		return err
	}
	defer func() {
		if err := disconnect(context.Background()); err != nil {
			log.Error("mongo disconnect", "error", err)
		}
	}()

	items := readlist.NewMongoRepo(mongoDB)
	if err := items.EnsureIndexes(ctx); err != nil {
		return err
	}

	codec, err := token.NewCodec(cfg.Secret, token.DefaultTTL)
	if err != nil {
		return err
	}
	cookies := session.NewCookieManager(cfg.Production())

	denylist, err := newDenylist(ctx, cfg, db, log)
	if err != nil {
		return err
	}

	reg, m := metrics.NewRegistry()

	users := user.NewMySQLRepo(db)
	resolver := identity.NewResolver(cookies, codec, users, denylist, log)
	resolver.Observe = m.ObserveResolution

	readList := readlist.NewService(items)
	auth := handlers.NewAuthHandler(
		user.NewService(users, password.NewHasher(), cfg.DefaultAvatar),
		codec, cookies, denylist, log,
	)
	auth.ReadList = readList

	h := routing.Handlers{
		Auth:     auth,
		ReadList: handlers.NewReadListHandler(readList, log),
		Metrics:  metrics.Handler(reg),
	}

	router := routing.NewRouter(h, resolver, cfg.StaticDir, log, middleware.Instrument(m))
	return routing.Serve(ctx, cfg.Addr, router, log)
}

func newDenylist(ctx context.Context, cfg *config.Config, db *sql.DB, log *slog.Logger) (session.Denylist, error) {
	if cfg.Denylist == config.DenylistMemory {
		log.Info("using in-memory denylist; revocations are lost on restart")
		m, err := session.NewMemoryDenylist(token.DefaultTTL)
		if err != nil {
			return nil, err
		}
		go func() {
			<-ctx.Done()
			m.Close()
		}()
		return m, nil
	}

	d := session.NewMySQLDenylist(db)
	go prune(ctx, d, log)
	return d, nil
}

func prune(ctx context.Context, d *session.MySQLDenylist, log *slog.Logger) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := d.Prune(ctx)
			if err != nil {
				log.Error("prune revoked sessions", "error", err)
				continue
			}
			if n > 0 {
				log.Info("pruned revoked sessions", "count", n)
			}
		}
	}
}
