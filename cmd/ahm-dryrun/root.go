package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configFile string
	logLevel   string
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ahm-dryrun",
		Short:         "Rehearse the asset hub migration against a copy of a source chain database",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is ./ahm.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(newRunCmd(viper.GetViper()))
	rootCmd.AddCommand(newConfigCmd(viper.GetViper()))
	return rootCmd
}

func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("ahm")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("AHM")
	viper.AutomaticEnv()
	setDefaults(viper.GetViper())

	// A missing config file leaves the defaults in place.
	_ = viper.ReadInConfig()
}
