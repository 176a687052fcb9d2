package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/milk9111/navgrid/ecs"
	"github.com/milk9111/navgrid/sim"
	"github.com/spf13/cobra"
)

func RunCmd(opts *rootOptions) *cobra.Command {
	var (
		steps int
		every int
	)
	c := &cobra.Command{
		Use:   "run",
		Short: "step the scene and print agent positions",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cfg, log, err := opts.setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if cmd.Flags().Changed("steps") {
				cfg.Steps = steps
			}
			if every <= 0 {
				every = 1
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			out := cmd.OutOrStdout()
			err = s.Run(ctx, cfg.Steps, func(step int, events []ecs.Event) error {
				if step%every != 0 && len(events) == 0 {
					return nil
				}
				printAgents(out, step, s.Agents())
				return nil
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	c.Flags().IntVar(&steps, "steps", 0, "steps to run, 0 runs until interrupted (default from config)")
	c.Flags().IntVar(&every, "every", 10, "print every n steps")
	return c
}

func printAgents(w io.Writer, step int, agents []sim.AgentState) {
	for _, a := range agents {
		state := "moving"
		switch {
		case a.Arrived:
			state = "arrived"
		case a.Stuck:
			state = "stuck"
		case !a.Reachable:
			state = "blocked"
		}
		fmt.Fprintf(w, "%5d %-10s pos=%s goal=%s %s\n", step, a.Name, a.Position, a.Goal, state)
	}
}
