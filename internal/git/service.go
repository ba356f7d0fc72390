// Package git wraps the git commands wtstatus reads status information from.
package git

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	log "github.com/chmouel/wtstatus/internal/log"
)

// LookupPath is used to find executables in PATH. It's exposed as a package
// variable so tests can mock it and avoid depending on system binaries being
// installed.
var LookupPath = exec.LookPath

// Service runs git commands for the status interpreter. It is stateless
// apart from the configured binary name and safe for concurrent use.
type Service struct {
	gitPath string
}

// NewService constructs a Service. gitPath overrides the binary to invoke;
// empty means "git" from PATH.
func NewService(gitPath string) *Service {
	if gitPath == "" {
		gitPath = "git"
	}
	return &Service{gitPath: gitPath}
}

// Available reports whether the configured git binary can be found.
func (s *Service) Available() bool {
	_, err := LookupPath(s.gitPath)
	return err == nil
}

func (s *Service) debugf(format string, args ...any) {
	log.Printf(format, args...)
}

func (s *Service) command(ctx context.Context, cwd string, args ...string) *exec.Cmd {
	// #nosec G204 -- only the configured git binary is ever invoked and
	// arguments come from internal logic, not shell interpolation
	cmd := exec.CommandContext(ctx, s.gitPath, args...)
	if cwd != "" {
		cmd.Dir = cwd
	}
	return cmd
}

// runGit executes a git command and returns its stdout. Exit codes listed in
// okReturncodes are treated as success with whatever output was produced.
func (s *Service) runGit(ctx context.Context, cwd string, okReturncodes []int, args ...string) (string, error) {
	command := s.gitPath + " " + strings.Join(args, " ")
	s.debugf("run: %s (cwd=%s)", command, cwd)

	output, err := s.command(ctx, cwd, args...).Output()
	if err != nil {
		exitError, ok := err.(*exec.ExitError)
		if !ok {
			s.debugf("error: %s: %v", command, err)
			return "", fmt.Errorf("%s: %w", command, err)
		}
		if !slices.Contains(okReturncodes, exitError.ExitCode()) {
			stderr := strings.TrimSpace(string(exitError.Stderr))
			s.debugf("error: %s (exit %d): %s", command, exitError.ExitCode(), stderr)
			if stderr != "" {
				return "", fmt.Errorf("%s: %s", command, stderr)
			}
			return "", fmt.Errorf("%s: exit %d", command, exitError.ExitCode())
		}
	}

	s.debugf("ok: %s", command)
	return string(output), nil
}

// IsRepository reports whether path is inside a git working tree. Any
// failure, including a missing directory or a missing git binary, is a
// negative probe rather than an error.
func (s *Service) IsRepository(ctx context.Context, path string) bool {
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		return false
	}
	out, err := s.runGit(ctx, path, []int{0}, "rev-parse", "--is-inside-work-tree")
	if err != nil {
		return false
	}
	return strings.TrimSpace(out) == "true"
}

// StatusRaw returns the porcelain v2 status text for the repository at
// repoPath, rename detection included.
func (s *Service) StatusRaw(ctx context.Context, repoPath string) (string, error) {
	return s.runGit(ctx, repoPath, []int{0}, "status", "--porcelain=v2", "--find-renames")
}

// ReadWorktreeFile reads a repository-relative file from the working tree.
func (s *Service) ReadWorktreeFile(repoPath, relPath string) ([]byte, error) {
	return os.ReadFile(filepath.Join(repoPath, relPath)) // #nosec G304 -- path comes from git's own status output
}

// CommonDir resolves the git common directory for the repository, used by
// the watcher to follow ref updates. Worktree checkouts report a relative
// path, which is resolved against the repository root.
func (s *Service) CommonDir(ctx context.Context, repoPath string) string {
	out, err := s.runGit(ctx, repoPath, []int{0}, "rev-parse", "--git-common-dir")
	if err != nil {
		return ""
	}
	dir := strings.TrimSpace(out)
	if dir == "" {
		return ""
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(repoPath, dir)
	}
	return filepath.Clean(dir)
}
