package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"

	"github.com/Akashdeep-Patra/lazyscroll/internal/app"
	"github.com/Akashdeep-Patra/lazyscroll/internal/common"
	"github.com/Akashdeep-Patra/lazyscroll/internal/config"
	"github.com/Akashdeep-Patra/lazyscroll/internal/logging"
	"github.com/Akashdeep-Patra/lazyscroll/internal/metrics"
	"github.com/Akashdeep-Patra/lazyscroll/internal/scroller"
	"github.com/Akashdeep-Patra/lazyscroll/internal/source"
	"github.com/Akashdeep-Patra/lazyscroll/internal/ui"
	"github.com/Akashdeep-Patra/lazyscroll/internal/ui/views"
	"github.com/Akashdeep-Patra/lazyscroll/internal/watcher"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// Build-time variables injected via ldflags by GoReleaser / Taskfile.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func init() {
	// ── Resource tuning ─────────────────────────────────────────────
	//
	// A TUI spends most of its time waiting on terminal input, file events
	// and the git subprocess. Two OS threads cover the render and message
	// dispatch work. An explicit GOMAXPROCS wins.
	if os.Getenv("GOMAXPROCS") == "" {
		maxProcs := 2
		if n := runtime.NumCPU(); n < maxProcs {
			maxProcs = n
		}
		runtime.GOMAXPROCS(maxProcs)
	}

	// The window keeps resident memory proportional to the viewport, not the
	// collection. A 50 MiB GC target holds that line.
	debug.SetMemoryLimit(50 * 1024 * 1024) // 50 MiB
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := buildRootCmd()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "lzs:", err)
		stop()
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lzs",
		Short: "A windowed terminal viewer for very long lists",
		Long: `lzs scrolls through collections of any length while keeping only the
tiles around the viewport alive.

The collection comes from a JSON, YAML or plain-text file (--data) or from
the commit log of a git repository (--git, the default).`,
		RunE:          runApp,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"lzs %s\n  commit:  %s\n  built:   %s\n  go:      %s\n  os/arch: %s/%s\n",
		version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH,
	))

	rootCmd.AddCommand(buildVersionCmd())
	rootCmd.AddCommand(buildCompletionCmd())
	rootCmd.AddCommand(buildPlanCmd())

	flags := rootCmd.PersistentFlags()
	flags.StringP("data", "d", "", "Collection file (.json, .yaml, or one item per line)")
	flags.StringP("git", "g", "", "Use the commit log of the repository at this path")
	flags.Int("cols", 0, "Tiles per row (overrides num_cols)")
	flags.Int("tile-height", 0, "Tile height in rows (overrides tile_height)")
	flags.Int("buffer", 0, "Extra tiles kept on each side (overrides buffer_size)")
	rootCmd.MarkFlagsMutuallyExclusive("data", "git")

	return rootCmd
}

// buildVersionCmd creates the `lzs version` subcommand supporting --json.
func buildVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := map[string]string{
				"version": version,
				"commit":  commit,
				"date":    date,
				"go":      runtime.Version(),
				"os":      runtime.GOOS,
				"arch":    runtime.GOARCH,
			}
			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			fmt.Fprintf(out, "lzs %s\n", version)
			fmt.Fprintf(out, "  commit:  %s\n", commit)
			fmt.Fprintf(out, "  built:   %s\n", date)
			fmt.Fprintf(out, "  go:      %s\n", runtime.Version())
			fmt.Fprintf(out, "  os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")

	return cmd
}

// buildCompletionCmd creates the `lzs completion` subcommand for shell completions.
func buildCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for lzs.

Examples:
  # Bash (add to ~/.bashrc)
  lzs completion bash > /etc/bash_completion.d/lzs

  # Zsh (add to ~/.zshrc before compinit)
  lzs completion zsh > "${fpath[1]}/_lzs"

  # Fish
  lzs completion fish > ~/.config/fish/completions/lzs.fish

  # PowerShell
  lzs completion powershell > lzs.ps1`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}

	return cmd
}

// loadConfig resolves the configuration and applies the flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("cols") {
		cfg.NumCols, _ = flags.GetInt("cols")
	}
	if flags.Changed("tile-height") {
		cfg.TileHeight, _ = flags.GetInt("tile-height")
	}
	if flags.Changed("buffer") {
		cfg.BufferSize, _ = flags.GetInt("buffer")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// openSource picks the collection: --data, else --git, else the git log of
// the working directory.
func openSource(ctx context.Context, cmd *cobra.Command, cfg *config.Config) (source.Source, error) {
	if path, _ := cmd.Flags().GetString("data"); path != "" {
		src, err := source.NewFile(path)
		if err != nil {
			return nil, fmt.Errorf("opening collection: %w", err)
		}
		return src, nil
	}

	repoPath, _ := cmd.Flags().GetString("git")
	if repoPath == "" {
		repoPath = "."
	}
	src, err := source.NewGitLog(ctx, repoPath, cfg.GitLogLimit)
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}
	return src, nil
}

// engineConfig maps the application config onto the scroller's.
func engineConfig(cfg *config.Config, obs scroller.Observer, logger *slog.Logger) scroller.Config[source.Item] {
	return scroller.Config[source.Item]{
		TileHeight:     cfg.TileHeight,
		NumCols:        cfg.NumCols,
		BufferSize:     cfg.BufferSize,
		EmptyTileClass: cfg.EmptyTileClass,
		Observer:       obs,
		Logger:         logger,
	}
}

func runApp(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.Open(cfg.LogFile, "tui", logging.ParseLevel(cfg.LogLevel))
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	src, err := openSource(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	collector := metrics.NewCollector()
	if cfg.MetricsAddr != "" {
		go func() {
			if err := collector.Serve(ctx, cfg.MetricsAddr); err != nil {
				logger.Error("metrics server stopped", slog.String("error", err.Error()))
			}
		}()
	}

	styles := ui.NewStyles(ui.ThemeByName(cfg.Theme))
	grid, err := views.NewGridView(styles, src.Describe(), engineConfig(cfg, collector, logger))
	if err != nil {
		return fmt.Errorf("building grid: %w", err)
	}

	// Watch the source so edits show up without pressing r.
	var watchCh <-chan watcher.Event
	if targets := src.WatchTargets(); cfg.Watch && len(targets) > 0 {
		ch, stopWatch, watchErr := watcher.Watch(targets, cfg.WatchDebounce)
		if watchErr != nil {
			logger.Warn("watcher disabled", slog.String("error", watchErr.Error()))
		} else {
			defer stopWatch()
			watchCh = ch
		}
	}

	model := app.New(ctx, src, grid, app.Options{
		Styles:   styles,
		Logger:   logger,
		Watching: watchCh != nil,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	if watchCh != nil {
		go func() {
			for range watchCh {
				p.Send(common.RefreshMsg{})
			}
		}()
	}

	logger.Info("starting",
		slog.String("source", src.Describe()),
		slog.String("version", version))

	_, err = p.Run()
	return err
}
