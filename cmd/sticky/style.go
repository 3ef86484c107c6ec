package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/sticky/internal/errors"
	"github.com/vango-dev/sticky/pkg/geom"
	"github.com/vango-dev/sticky/pkg/sticky"
)

type styleOptions struct {
	top            float64
	bottom         float64
	disabled       bool
	positions      []string
	topY           float64
	bottomY        float64
	viewportHeight float64
	asJSON         bool
}

func styleCmd() *cobra.Command {
	var opts styleOptions

	cmd := &cobra.Command{
		Use:   "style",
		Short: "Evaluate a sticky element offline",
		Long: `Build an element, place its triggers and print the derived state,
classes and native style.

Triggers are only placed when their --top-y / --bottom-y flag is given.
--bottom enables bottom sticking. --positions lists the position values the
simulated browser accepts.

Examples:
  sticky style --top=10 --top-y=-5
  sticky style --bottom=5 --bottom-y=100 --positions=
  sticky style --top=10 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := evaluate(opts, cmd.Flags().Changed("bottom"),
				cmd.Flags().Changed("top-y"), cmd.Flags().Changed("bottom-y"))

			out := cmd.OutOrStdout()
			if opts.asJSON {
				data, err := json.MarshalIndent(snap, "", "  ")
				if err != nil {
					return errors.FromError(err, "E300")
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			fmt.Fprintf(out, "state:  %s\n", snap.State)
			fmt.Fprintf(out, "class:  %s\n", snap.Class)
			fmt.Fprintf(out, "style:  %s\n", snap.Style)
			return nil
		},
	}

	cmd.Flags().Float64Var(&opts.top, "top", 0, "Top offset in pixels")
	cmd.Flags().Float64Var(&opts.bottom, "bottom", 0, "Bottom offset; enables bottom sticking")
	cmd.Flags().BoolVar(&opts.disabled, "disabled", false, "Disable sticking")
	cmd.Flags().StringSliceVar(&opts.positions, "positions", []string{"sticky"}, "Position values the browser accepts")
	cmd.Flags().Float64Var(&opts.topY, "top-y", 0, "Top trigger position")
	cmd.Flags().Float64Var(&opts.bottomY, "bottom-y", 0, "Bottom trigger position")
	cmd.Flags().Float64Var(&opts.viewportHeight, "viewport", 800, "Viewport inner height")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the full snapshot as JSON")

	return cmd
}

func evaluate(opts styleOptions, hasBottom, hasTopY, hasBottomY bool) sticky.Snapshot {
	cfg := sticky.Config{Top: opts.top, Enabled: !opts.disabled}
	if hasBottom {
		cfg.Bottom = sticky.Offset(opts.bottom)
	}

	view := geom.NewViewport(0, opts.viewportHeight)
	engine := sticky.NewInlineStyleEngine(opts.positions...)
	el := sticky.New(view, cfg, sticky.WithStyleEngine(engine))
	defer el.Close()

	el.Batch(func() {
		if hasTopY {
			el.RegisterTopTrigger(geom.NewBox(geom.NewRect(0, opts.topY, 0, 1)))
		}
		if hasBottomY {
			el.RegisterBottomTrigger(geom.NewBox(geom.NewRect(0, opts.bottomY, 0, 1)))
		}
	})
	return el.Snapshot()
}
