package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/sticky/internal/errors"
	"github.com/vango-dev/sticky/pkg/geom"
	"github.com/vango-dev/sticky/pkg/sticky"
)

type classifyOptions struct {
	y              float64
	height         float64
	viewportHeight float64
	topOffset      float64
	bottomOffset   float64
}

func classifyCmd() *cobra.Command {
	var opts classifyOptions

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a trigger rectangle against the viewport",
		Long: `Print where a trigger sits relative to the viewport: top, in or bottom.

Examples:
  sticky classify --y=-4 --top-offset=0
  sticky classify --y=700 --height=20 --viewport=800 --bottom-offset=100`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := classify(opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pos)
			return nil
		},
	}

	cmd.Flags().Float64Var(&opts.y, "y", 0, "Trigger top edge, relative to the viewport")
	cmd.Flags().Float64Var(&opts.height, "height", 1, "Trigger height")
	cmd.Flags().Float64Var(&opts.viewportHeight, "viewport", 800, "Viewport inner height")
	cmd.Flags().Float64Var(&opts.topOffset, "top-offset", 0, "Top offset")
	cmd.Flags().Float64Var(&opts.bottomOffset, "bottom-offset", 0, "Bottom offset")

	return cmd
}

func classify(opts classifyOptions) (sticky.Position, error) {
	if opts.height < 0 {
		return sticky.PositionUnknown, errors.New("E300").WithDetailf("--height must not be negative, got %v", opts.height)
	}
	if opts.viewportHeight < 0 {
		return sticky.PositionUnknown, errors.New("E300").WithDetailf("--viewport must not be negative, got %v", opts.viewportHeight)
	}
	box := geom.NewBox(geom.NewRect(0, opts.y, 0, opts.height))
	view := geom.NewViewport(0, opts.viewportHeight)
	return sticky.Classify(box, view, opts.topOffset, opts.bottomOffset), nil
}
