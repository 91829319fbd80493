package main

import (
	"github.com/arborlang/reactorcore/examples"
	"github.com/arborlang/reactorcore/reactor"
	"github.com/arborlang/reactorcore/timeval"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run the demo reactor graph to completion",
	RunE:  runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, logger, err := resolveConfig()
	if err != nil {
		return err
	}

	app := reactor.NewApp(cfg)
	examples.NewBoundedTicker(app.Reactor,
		timeval.TimeValue{}, timeval.TimeValue{Seconds: 1}, 5, logger)

	return app.Run()
}
