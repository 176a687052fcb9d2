package main

import (
	"fmt"

	"github.com/milk9111/navgrid/common"
	"github.com/spf13/cobra"
)

func QueryCmd(opts *rootOptions) *cobra.Command {
	var (
		from, to []float64
		full     bool
	)
	c := &cobra.Command{
		Use:   "query",
		Short: "ask for the next step between two points",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(from) != 2 || len(to) != 2 {
				return fmt.Errorf("navsim: --from and --to take x,z")
			}
			s, _, log, err := opts.setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			s.Step()

			start, finish := common.V(from[0], from[1]), common.V(to[0], to[1])
			out := cmd.OutOrStdout()
			nav := s.Navigator()
			if full {
				path, ok := nav.FindPath(start, finish)
				if !ok {
					fmt.Fprintln(out, "no path")
					return nil
				}
				for _, p := range path {
					fmt.Fprintln(out, p)
				}
				return nil
			}

			next, ok := nav.FindNextStep(start, finish)
			if !ok {
				fmt.Fprintln(out, "no next step")
				return nil
			}
			fmt.Fprintln(out, next)
			return nil
		},
	}
	c.Flags().Float64SliceVar(&from, "from", nil, "start point x,z")
	c.Flags().Float64SliceVar(&to, "to", nil, "finish point x,z")
	c.Flags().BoolVar(&full, "path", false, "print the whole route")
	return c
}
