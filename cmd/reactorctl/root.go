package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "reactorctl",
	Short: "drive a reactorcore engine run",
	Long: `reactorctl wires command-line flags, environment variables, and an
optional config file onto a reactor.App and runs it to completion.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.reactorctl.yaml)")
	rootCmd.PersistentFlags().Bool("fast", false, "run as fast as possible instead of tracking physical time")
	rootCmd.PersistentFlags().Bool("keepalive", false, "snooze instead of shutting down when the event queue empties")
	rootCmd.PersistentFlags().String("timeout", "", "stop the run after this long (Go duration, e.g. 5s)")
	rootCmd.PersistentFlags().String("logging", "info", "log level: debug, info, warn, error")

	viper.BindPFlag("fast", rootCmd.PersistentFlags().Lookup("fast"))
	viper.BindPFlag("keepalive", rootCmd.PersistentFlags().Lookup("keepalive"))
	viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("logging", rootCmd.PersistentFlags().Lookup("logging"))

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(graphCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".reactorctl")
	}

	viper.SetEnvPrefix("reactorctl")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "using config file:", viper.ConfigFileUsed())
	}
}

// Execute runs the command tree; its error is reactorctl's exit-code signal
// (spec.md §6: nonzero on uncaught reaction exception or cycle).
func Execute() error {
	return rootCmd.Execute()
}
