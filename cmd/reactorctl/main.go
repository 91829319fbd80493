// Command reactorctl is the optional CLI surface described in spec.md §6:
// a thin wiring layer over reactor.App, not part of the core engine.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
