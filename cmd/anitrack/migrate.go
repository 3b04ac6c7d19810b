package main

import (
	"github.com/urfave/cli/v2"

	"anitrack/internal/mysql"
)

func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply MySQL schema migrations and exit",
		Action: func(c *cli.Context) error {
			cfg, log, err := setup(c)
			if err != nil {
				return err
			}

			db, err := mysql.LoadDB(c.Context, cfg.MySQLDSN)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := mysql.Migrate(c.Context, db); err != nil {
				return err
			}
			log.Info("migrations applied")
			return nil
		},
	}
}
