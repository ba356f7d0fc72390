package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/chmouel/wtstatus/internal/buildinfo"
	"github.com/chmouel/wtstatus/internal/config"
	"github.com/chmouel/wtstatus/internal/git"
	"github.com/chmouel/wtstatus/internal/log"
	"github.com/chmouel/wtstatus/internal/render"
	"github.com/chmouel/wtstatus/internal/status"
	urfavecli "github.com/urfave/cli/v3"
)

// NewCommand builds the root wtstatus command.
func NewCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "wtstatus",
		Usage:     "Inspect the structured working-tree status of a git repository",
		ArgsUsage: "[path]",
		Version:   buildinfo.Version(),
		Flags:     globalFlags(),
		Commands: []*urfavecli.Command{
			watchCommand(),
		},
		Action: func(ctx context.Context, cmd *urfavecli.Command) error {
			cfg, err := setup(cmd)
			if err != nil {
				return err
			}
			interp := status.NewInterpreter(git.NewService(cfg.GitPath))
			return printStatus(ctx, cmd, cfg, interp, repoArg(cmd))
		},
	}
}

// Run executes the CLI and is the single entry point main delegates to.
func Run(ctx context.Context, args []string) error {
	defer func() { _ = log.Close() }()
	return NewCommand().Run(ctx, args)
}

// repoArg returns the repository path argument, defaulting to the current
// directory.
func repoArg(cmd *urfavecli.Command) string {
	if path := cmd.Args().First(); path != "" {
		return path
	}
	return "."
}

// setup loads the configuration and applies flag overrides and debug-log
// plumbing. Config load failures fall back to defaults, the way a status
// tool should keep working with a broken config file.
func setup(cmd *urfavecli.Command) (*config.AppConfig, error) {
	cfg, err := config.LoadConfig(cmd.String("config-file"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	if gitPath := cmd.String("git-path"); gitPath != "" {
		cfg.GitPath = gitPath
	}
	if cmd.Bool("json") {
		cfg.Output = config.OutputJSON
	}
	if cmd.Bool("no-color") {
		cfg.NoColor = true
	}

	debugLog := cmd.String("debug-log")
	if debugLog == "" {
		debugLog = cfg.DebugLog
	}
	if debugLog != "" {
		expanded, err := config.ExpandPath(debugLog)
		if err != nil {
			expanded = debugLog
		}
		if err := log.SetFile(expanded); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening debug log file %q: %v\n", expanded, err)
		}
	} else {
		_ = log.SetFile("")
	}

	return cfg, nil
}

// printStatus fetches the status for repoPath and writes it to stdout in the
// configured output mode. A path without a repository is reported as a
// defined negative result with a non-zero exit code.
func printStatus(ctx context.Context, cmd *urfavecli.Command, cfg *config.AppConfig, interp *status.Interpreter, repoPath string) error {
	wds, err := interp.GetStatus(ctx, repoPath)
	if err != nil {
		return err
	}
	if wds == nil {
		return urfavecli.Exit(fmt.Sprintf("not a git repository: %s", repoPath), 1)
	}

	if cfg.Output == config.OutputJSON {
		out, err := render.JSON(wds)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.Writer, out)
		return nil
	}

	styles := render.PlainStyles()
	if !cfg.NoColor && render.StdoutIsTerminal() {
		styles = render.DefaultStyles()
	}
	fmt.Fprint(cmd.Writer, render.Text(wds, styles))
	return nil
}
