package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func GridCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "grid",
		Short: "print every region's occupancy grid after one step",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, log, err := opts.setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			s.Step()

			out := cmd.OutOrStdout()
			nav := s.Navigator()
			for _, r := range nav.Regions() {
				g, ok := nav.Grid(r.ID)
				if !ok {
					continue
				}
				fmt.Fprintf(out, "region %s center=%s %dx%d blocked=%d components=%d\n",
					r.ID, r.Center, g.Cols(), g.Rows(), g.BlockedCount(), g.ComponentCount())
				fmt.Fprint(out, g.String())
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}
