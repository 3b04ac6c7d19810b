package main

import (
	"crypto/rand"
	"fmt"

	"github.com/urfave/cli/v2"

	"anitrack/pkg/generator"
)

const secretLen = 48

func genSecretCmd() *cli.Command {
	return &cli.Command{
		Name:  "gen-secret",
		Usage: "Print a random value suitable for AUTH_SECRET",
		Action: func(c *cli.Context) error {
			s, err := generator.RandomString(rand.Reader, secretLen)
			if err != nil {
				return fmt.Errorf("generate secret: %w", err)
			}
			_, err = fmt.Fprintln(c.App.Writer, s)
			return err
		},
	}
}
