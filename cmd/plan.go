package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Akashdeep-Patra/lazyscroll/internal/logging"
	"github.com/Akashdeep-Patra/lazyscroll/internal/scroller"
	"github.com/Akashdeep-Patra/lazyscroll/internal/source"
	"github.com/Akashdeep-Patra/lazyscroll/internal/ui/views"
	"github.com/spf13/cobra"
)

// staticProbe is a viewport that never moves on its own.
type staticProbe struct {
	scroll, height int
}

func (p *staticProbe) ScrollOffset() int       { return p.scroll }
func (p *staticProbe) ViewportHeight() int     { return p.height }
func (p *staticProbe) ContainerTopOffset() int { return 0 }

// planReport is the outcome of one headless pass.
type planReport struct {
	Source       string   `json:"source"`
	Items        int      `json:"items"`
	Offset       int      `json:"offset"`
	Height       int      `json:"height"`
	WindowOffset int      `json:"window_offset"`
	First        int      `json:"first_visible"`
	Last         int      `json:"last_visible"`
	Target       []int    `json:"target"`
	Window       []int    `json:"window"`
	Remove       []int    `json:"remove"`
	Append       []int    `json:"append"`
	Prepend      []int    `json:"prepend"`
	Failed       []int    `json:"failed,omitempty"`
	Errors       []string `json:"errors,omitempty"`
}

func buildPlanCmd() *cobra.Command {
	var (
		offset     int
		height     int
		from       int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the window a scroll position resolves to",
		Long: `Build an engine over the collection without a terminal, reconcile once
at --offset and print the window offset, the target indices and the plan.

With --from the engine is first settled at that offset, so the printed plan
is the diff of moving from --from to --offset.

Examples:
  lzs plan --data items.json --offset 50 --height 150 --tile-height 50 --buffer 2
  lzs plan --data items.json --offset 50 --height 150 --from 0 --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if height <= 0 {
				return fmt.Errorf("--height must be positive, got %d", height)
			}

			logger, closeLog, err := logging.Open(cfg.LogFile, "plan", logging.ParseLevel(cfg.LogLevel))
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()

			src, err := openSource(cmd.Context(), cmd, cfg)
			if err != nil {
				return err
			}
			items, err := src.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("loading %s: %w", src.Describe(), err)
			}

			var settle *int
			if cmd.Flags().Changed("from") {
				settle = &from
			}
			report, err := runPlan(items, engineConfig(cfg, nil, logger), settle, offset, height)
			if err != nil {
				return err
			}
			report.Source = src.Describe()
			logger.Debug("plan computed",
				slog.Int("offset", offset),
				slog.Int("target", len(report.Target)))

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			printPlan(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "Scroll offset in rows")
	cmd.Flags().IntVar(&height, "height", 24, "Viewport height in rows")
	cmd.Flags().IntVar(&from, "from", 0, "Settle at this offset first")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the plan as JSON")

	return cmd
}

// runPlan scrolls a fresh engine to offset and reports the pass. A non-nil
// settle first fills the window at that offset, so the report is the diff of
// the move.
func runPlan(items []source.Item, cfg scroller.Config[source.Item], settle *int, offset, height int) (planReport, error) {
	probe := &staticProbe{height: height}
	engine, err := scroller.New(probe, items, views.NewTileRenderer(cfg.TileHeight), cfg)
	if err != nil {
		return planReport{}, err
	}

	if settle != nil {
		probe.scroll = *settle
		// Render failures are part of the report, not a reason to stop.
		_, _ = engine.OnScroll()
	}
	probe.scroll = offset
	p, passErr := engine.OnScroll()

	report := planReport{
		Items:        engine.Len(),
		Offset:       offset,
		Height:       height,
		WindowOffset: engine.WindowOffset(),
		First:        -1,
		Last:         -1,
		Target:       engine.Target(),
		Window:       nonNil(engine.Indices()),
		Remove:       nonNil(p.Remove),
		Append:       nonNil(p.Append),
		Prepend:      nonNil(p.Prepend),
		Failed:       engine.Failed(),
	}
	if r := engine.Geometry().Visible(scroller.Read(probe), engine.Len()); !r.Empty() {
		report.First, report.Last = r.First, r.Last
	}
	if passErr != nil {
		var joined interface{ Unwrap() []error }
		if errors.As(passErr, &joined) {
			for _, e := range joined.Unwrap() {
				report.Errors = append(report.Errors, e.Error())
			}
		} else {
			report.Errors = []string{passErr.Error()}
		}
	}
	return report, nil
}

func nonNil(s []int) []int {
	if s == nil {
		return []int{}
	}
	return s
}

func printPlan(w io.Writer, r planReport) {
	fmt.Fprintf(w, "source:        %s (%d items)\n", r.Source, r.Items)
	fmt.Fprintf(w, "viewport:      offset %d, height %d\n", r.Offset, r.Height)
	if r.First < 0 {
		fmt.Fprintf(w, "visible:       none\n")
	} else {
		fmt.Fprintf(w, "visible:       %d..%d\n", r.First, r.Last)
	}
	fmt.Fprintf(w, "window offset: %d\n", r.WindowOffset)
	fmt.Fprintf(w, "target:        %v\n", r.Target)
	fmt.Fprintf(w, "remove:        %v\n", r.Remove)
	fmt.Fprintf(w, "append:        %v\n", r.Append)
	fmt.Fprintf(w, "prepend:       %v\n", r.Prepend)
	fmt.Fprintf(w, "window:        %v\n", r.Window)
	if len(r.Failed) > 0 {
		fmt.Fprintf(w, "failed:        %v\n", r.Failed)
	}
	for _, e := range r.Errors {
		fmt.Fprintf(w, "error:         %s\n", e)
	}
}
