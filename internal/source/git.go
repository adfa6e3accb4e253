package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ErrNotARepo is returned when the path is not inside a Git repository.
var ErrNotARepo = errors.New("not a git repository")

// cmdTimeout is the maximum duration a single git command may run.
const cmdTimeout = 30 * time.Second

// readEnv keeps git from taking optional locks while we read; lock
// contention stalls readers in large repos.
var readEnv = []string{"GIT_OPTIONAL_LOCKS=0"}

// GitLog turns a repository's commit log into a collection, one item per
// commit, newest first.
type GitLog struct {
	root   string
	gitDir string
	limit  int
}

// Compile-time check that GitLog implements Source.
var _ Source = (*GitLog)(nil)

// NewGitLog opens the repository containing path. limit caps the number of
// commits; zero or less means no cap.
func NewGitLog(ctx context.Context, path string, limit int) (*GitLog, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	topLevel, err := runGit(ctx, abs, nil, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, ErrNotARepo
	}
	gitDir, err := runGit(ctx, abs, nil, "rev-parse", "--git-dir")
	if err != nil {
		return nil, fmt.Errorf("finding .git directory: %w", err)
	}
	root := strings.TrimSpace(topLevel)
	gd := strings.TrimSpace(gitDir)
	if !filepath.IsAbs(gd) {
		gd = filepath.Join(root, gd)
	}
	return &GitLog{root: root, gitDir: gd, limit: limit}, nil
}

func (g *GitLog) Describe() string { return filepath.Base(g.root) + " (git log)" }

// WatchTargets watches only git internals: HEAD, the index and refs move on
// every commit, checkout and fetch.
func (g *GitLog) WatchTargets() []string {
	targets := []string{
		g.gitDir,
		filepath.Join(g.gitDir, "refs"),
		filepath.Join(g.gitDir, "refs", "heads"),
		filepath.Join(g.gitDir, "refs", "tags"),
	}
	if info, err := os.Stat(filepath.Join(g.gitDir, "refs", "remotes")); err == nil && info.IsDir() {
		targets = append(targets, filepath.Join(g.gitDir, "refs", "remotes"))
	}
	return targets
}

// Load runs git log and converts each commit.
func (g *GitLog) Load(ctx context.Context) ([]Item, error) {
	args := []string{"log", logFormatFlag()}
	if g.limit > 0 {
		args = append(args, fmt.Sprintf("--max-count=%d", g.limit))
	}
	out, err := runGit(ctx, g.root, readEnv, args...)
	if err != nil {
		return nil, fmt.Errorf("getting log: %w", err)
	}
	commits := parseLogOutput(out)
	items := make([]Item, len(commits))
	for i, c := range commits {
		items[i] = c.item()
	}
	return items, nil
}

// runGit executes a git command with a timeout. Stdout and stderr are kept
// apart so stderr noise doesn't corrupt output.
func runGit(ctx context.Context, dir string, extraEnv []string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, cmdTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	if len(extraEnv) > 0 {
		cmd.Env = append(os.Environ(), extraEnv...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = strings.TrimSpace(stdout.String())
		}
		return "", fmt.Errorf("git %s: %s: %w", strings.Join(args, " "), errMsg, err)
	}
	return stdout.String(), nil
}

// ── Log parsing ─────────────────────────────────────────────────────────────

const (
	logFormat    = "%H%x00%h%x00%an%x00%at%x00%ar%x00%s%x00%D"
	logSeparator = "%x01"
	logFields    = 7
)

func logFormatFlag() string {
	return fmt.Sprintf("--format=%s%s", logFormat, logSeparator)
}

type commit struct {
	Hash      string
	ShortHash string
	Author    string
	Date      time.Time
	RelDate   string
	Subject   string
	Refs      []string
}

func (c commit) item() Item {
	return Item{
		ID:       c.Hash,
		Title:    c.Subject,
		Subtitle: c.ShortHash + "  " + c.Author + "  " + c.Date.Format(time.DateOnly) + " (" + c.RelDate + ")",
		Tags:     c.Refs,
	}
}

// parseLogOutput scans entries with IndexByte instead of Split so a log of
// thousands of commits doesn't allocate one big []string.
func parseLogOutput(out string) []commit {
	if len(out) == 0 {
		return nil
	}
	est := len(out) / 120
	if est < 8 {
		est = 8
	}
	commits := make([]commit, 0, est)

	for len(out) > 0 {
		idx := strings.IndexByte(out, '\x01')
		var entry string
		if idx < 0 {
			entry = out
			out = ""
		} else {
			entry = out[:idx]
			out = out[idx+1:]
		}
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if c, ok := parseCommitEntry(entry); ok {
			commits = append(commits, c)
		}
	}
	return commits
}

func parseCommitEntry(entry string) (commit, bool) {
	parts := strings.SplitN(entry, "\x00", logFields)
	if len(parts) < logFields {
		return commit{}, false
	}
	ts, _ := strconv.ParseInt(strings.TrimSpace(parts[3]), 10, 64)
	c := commit{
		Hash:      strings.TrimSpace(parts[0]),
		ShortHash: strings.TrimSpace(parts[1]),
		Author:    strings.TrimSpace(parts[2]),
		Date:      time.Unix(ts, 0).UTC(),
		RelDate:   strings.TrimSpace(parts[4]),
		Subject:   strings.TrimSpace(parts[5]),
	}
	if r := strings.TrimSpace(parts[6]); r != "" {
		c.Refs = parseRefs(r)
	}
	return c, true
}

// parseRefs flattens the %D decoration into display names.
func parseRefs(raw string) []string {
	refs := make([]string, 0, 4)
	for _, r := range strings.Split(raw, ", ") {
		r = strings.TrimSpace(r)
		switch {
		case r == "":
			continue
		case strings.HasPrefix(r, "HEAD -> "):
			r = strings.TrimPrefix(r, "HEAD -> ")
		case strings.HasPrefix(r, "tag: "):
			r = "#" + strings.TrimPrefix(r, "tag: ")
		}
		refs = append(refs, r)
	}
	return refs
}
