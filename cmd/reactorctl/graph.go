package main

import (
	"fmt"

	"github.com/arborlang/reactorcore/examples"
	"github.com/arborlang/reactorcore/reactor"
	"github.com/arborlang/reactorcore/timeval"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "validate the demo reactor graph's precedence order and print it",
	RunE:  runGraph,
}

func runGraph(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig()
	if err != nil {
		return err
	}

	app := reactor.NewApp(cfg)
	examples.NewBoundedTicker(app.Reactor,
		timeval.TimeValue{}, timeval.TimeValue{Seconds: 1}, 5, nil)

	if err := app.Check(); err != nil {
		return err
	}

	for _, r := range app.Reactors() {
		for _, rxn := range r.Reactions() {
			fmt.Printf("%-40s priority=%d\n", rxn.FullyQualifiedName(), rxn.Priority())
		}
	}
	return nil
}
