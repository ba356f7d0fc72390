package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/chmouel/wtstatus/internal/config"
	"github.com/chmouel/wtstatus/internal/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	urfavecli "github.com/urfave/cli/v3"
)

type fakeBackend struct {
	repo bool
	raw  string
}

func (f *fakeBackend) IsRepository(context.Context, string) bool { return f.repo }

func (f *fakeBackend) StatusRaw(context.Context, string) (string, error) { return f.raw, nil }

func (f *fakeBackend) ReadWorktreeFile(string, string) ([]byte, error) {
	return nil, errors.New("no files in fake")
}

func TestGlobalFlags(t *testing.T) {
	names := make(map[string]bool)
	for _, f := range globalFlags() {
		for _, n := range f.Names() {
			names[n] = true
		}
	}
	for _, want := range []string{"json", "j", "no-color", "git-path", "debug-log", "config-file"} {
		assert.True(t, names[want], "missing flag %q", want)
	}
}

func TestRepoArg(t *testing.T) {
	run := func(args ...string) string {
		var got string
		cmd := &urfavecli.Command{
			Flags: globalFlags(),
			Action: func(_ context.Context, c *urfavecli.Command) error {
				got = repoArg(c)
				return nil
			},
		}
		require.NoError(t, cmd.Run(context.Background(), append([]string{"wtstatus"}, args...)))
		return got
	}

	assert.Equal(t, ".", run())
	assert.Equal(t, "/some/repo", run("/some/repo"))
}

func TestPrintStatusText(t *testing.T) {
	backend := &fakeBackend{repo: true, raw: "? notes.txt\n"}
	interp := status.NewInterpreter(backend)
	cfg := config.DefaultConfig()
	cfg.NoColor = true

	var buf bytes.Buffer
	cmd := &urfavecli.Command{Writer: &buf}

	require.NoError(t, printStatus(context.Background(), cmd, cfg, interp, "."))
	assert.Contains(t, buf.String(), "untracked")
	assert.Contains(t, buf.String(), "notes.txt")
	assert.Contains(t, buf.String(), "1 changed")
}

func TestPrintStatusJSON(t *testing.T) {
	backend := &fakeBackend{repo: true, raw: "1 .M N... 100644 100644 100644 abc def main.go\n"}
	interp := status.NewInterpreter(backend)
	cfg := config.DefaultConfig()
	cfg.Output = config.OutputJSON

	var buf bytes.Buffer
	cmd := &urfavecli.Command{Writer: &buf}

	require.NoError(t, printStatus(context.Background(), cmd, cfg, interp, "."))

	var decoded struct {
		Files []struct {
			Path string `json:"path"`
			Kind string `json:"kind"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Files, 1)
	assert.Equal(t, "main.go", decoded.Files[0].Path)
	assert.Equal(t, "modified", decoded.Files[0].Kind)
}

func TestPrintStatusNotARepository(t *testing.T) {
	interp := status.NewInterpreter(&fakeBackend{repo: false})
	cfg := config.DefaultConfig()

	var buf bytes.Buffer
	cmd := &urfavecli.Command{Writer: &buf}

	err := printStatus(context.Background(), cmd, cfg, interp, "/tmp/elsewhere")
	require.Error(t, err)

	var coder urfavecli.ExitCoder
	require.ErrorAs(t, err, &coder)
	assert.Equal(t, 1, coder.ExitCode())
	assert.Contains(t, err.Error(), "not a git repository")
	assert.Empty(t, buf.String())
}

func TestSetupFlagOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var cfg *config.AppConfig
	cmd := &urfavecli.Command{
		Flags: globalFlags(),
		Action: func(_ context.Context, c *urfavecli.Command) error {
			var err error
			cfg, err = setup(c)
			return err
		},
	}

	require.NoError(t, cmd.Run(context.Background(), []string{
		"wtstatus", "--json", "--no-color", "--git-path", "/opt/git/bin/git",
	}))
	require.NotNil(t, cfg)
	assert.Equal(t, config.OutputJSON, cfg.Output)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, "/opt/git/bin/git", cfg.GitPath)
}

func TestSetupDefaultsWithoutFlags(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var cfg *config.AppConfig
	cmd := &urfavecli.Command{
		Flags: globalFlags(),
		Action: func(_ context.Context, c *urfavecli.Command) error {
			var err error
			cfg, err = setup(c)
			return err
		},
	}

	require.NoError(t, cmd.Run(context.Background(), []string{"wtstatus"}))
	require.NotNil(t, cfg)
	assert.Equal(t, config.OutputText, cfg.Output)
	assert.False(t, cfg.NoColor)
}

func TestNewCommandWiring(t *testing.T) {
	cmd := NewCommand()
	assert.Equal(t, "wtstatus", cmd.Name)
	assert.NotNil(t, cmd.Action)

	var subNames []string
	for _, sub := range cmd.Commands {
		subNames = append(subNames, sub.Name)
	}
	assert.Contains(t, subNames, "watch")
	assert.True(t, strings.HasPrefix(cmd.ArgsUsage, "[path]"))
}
