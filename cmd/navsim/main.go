package main

import (
	"fmt"
	"os"

	"github.com/milk9111/navgrid/config"
	"github.com/milk9111/navgrid/logging"
	"github.com/milk9111/navgrid/prefabs"
	"github.com/milk9111/navgrid/sim"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	configFile string
	scene      string
	logLevel   string
}

func main() {
	if err := RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func RootCmd() *cobra.Command {
	opts := &rootOptions{}
	c := &cobra.Command{
		Use:           "navsim",
		Short:         "headless navigation grid simulator",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	c.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (YAML)")
	c.PersistentFlags().StringVar(&opts.scene, "scene", "", "scene name or path, overrides config")
	c.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level, overrides config")

	c.AddCommand(RunCmd(opts), GridCmd(opts), QueryCmd(opts))
	return c
}

// setup loads config, applies flag overrides and builds the simulation.
func (o *rootOptions) setup() (*sim.Simulation, config.Config, *zap.Logger, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, cfg, nil, err
	}
	if o.scene != "" {
		cfg.Scene = o.scene
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, cfg, nil, err
	}

	spec, err := prefabs.LoadScene(cfg.Scene)
	if err != nil {
		return nil, cfg, log, err
	}
	s, err := sim.New(cfg, spec, log)
	if err != nil {
		return nil, cfg, log, fmt.Errorf("navsim: %w", err)
	}
	return s, cfg, log, nil
}
