package main

import (
	"fmt"
	"time"

	"github.com/arborlang/reactorcore/logging"
	"github.com/arborlang/reactorcore/reactor"
	"github.com/arborlang/reactorcore/timeval"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// resolveConfig turns the layered viper settings (flags override env
// override config file override defaults) into a reactor.Config and a
// configured logger, per spec.md §6's configuration options table.
func resolveConfig() (reactor.Config, *logrus.Logger, error) {
	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(viper.GetString("logging"))
	logger := logging.New(logCfg)

	cfg := reactor.Config{
		Fast:      viper.GetBool("fast"),
		KeepAlive: viper.GetBool("keepalive"),
		Logger:    logger,
	}

	if raw := viper.GetString("timeout"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return reactor.Config{}, nil, fmt.Errorf("invalid --timeout %q: %w", raw, err)
		}
		if d < 0 {
			return reactor.Config{}, nil, fmt.Errorf("invalid --timeout %q: must not be negative", raw)
		}
		timeout := timeval.FromNanos(uint64(d.Nanoseconds()))
		cfg.ExecutionTimeout = &timeout
	}

	return cfg, logger, nil
}
