package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/chmouel/wtstatus/internal/git"
	"github.com/chmouel/wtstatus/internal/log"
	"github.com/chmouel/wtstatus/internal/status"
	"github.com/chmouel/wtstatus/internal/watch"
	urfavecli "github.com/urfave/cli/v3"
)

func watchCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "watch",
		Usage:     "Re-print the status whenever the repository changes",
		ArgsUsage: "[path]",
		Flags:     globalFlags(),
		Action: func(ctx context.Context, cmd *urfavecli.Command) error {
			cfg, err := setup(cmd)
			if err != nil {
				return err
			}

			repoPath := repoArg(cmd)
			gitSvc := git.NewService(cfg.GitPath)
			interp := status.NewInterpreter(gitSvc)

			if err := printStatus(ctx, cmd, cfg, interp, repoPath); err != nil {
				return err
			}

			commonDir := gitSvc.CommonDir(ctx, repoPath)
			if commonDir == "" {
				return fmt.Errorf("unable to resolve git common dir for %s", repoPath)
			}

			watcher := watch.New(log.Printf)
			if err := watcher.Start(repoPath, commonDir); err != nil {
				return err
			}
			defer watcher.Stop()

			for {
				select {
				case <-ctx.Done():
					return nil
				case <-watcher.Events():
					if !watcher.ShouldRefresh(time.Now(), cfg.WatchDebounce) {
						continue
					}
					if err := printStatus(ctx, cmd, cfg, interp, repoPath); err != nil {
						return err
					}
				}
			}
		},
	}
}
