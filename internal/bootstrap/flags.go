// Package bootstrap assembles the wtstatus command-line interface.
package bootstrap

import (
	urfavecli "github.com/urfave/cli/v3"
)

// globalFlags returns all global flags for the application.
// Note: --version is provided automatically by urfave/cli.
func globalFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.BoolFlag{
			Name:    "json",
			Aliases: []string{"j"},
			Usage:   "Emit the status as JSON",
		},
		&urfavecli.BoolFlag{
			Name:  "no-color",
			Usage: "Disable styled output",
		},
		&urfavecli.StringFlag{
			Name:  "git-path",
			Usage: "Override the git binary to invoke",
		},
		&urfavecli.StringFlag{
			Name:  "debug-log",
			Usage: "Path to debug log file",
		},
		&urfavecli.StringFlag{
			Name:  "config-file",
			Usage: "Path to configuration file",
		},
	}
}
