// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package cmd implements the samtool commands.
package cmd

import (
	stdlog "log"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding flags.
const EnvPrefix = "SAMTOOL"

func setup(_ *cobra.Command, _ []string) (err error) {
	if path := viper.GetString("config"); len(path) > 0 {
		viper.SetConfigFile(path)

		if err = viper.ReadInConfig(); err != nil {
			return
		}

		config.Logger.Debugf("using config file %s", viper.ConfigFileUsed())
	}

	if viper.GetBool("debug") {
		config.Logger.SetLevel(log.DebugLevel)
	}

	stdlog.SetFlags(0)
	stdlog.SetOutput(config.Logger.WriterLevel(log.DebugLevel))

	return
}

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "samtool",
		Short:             "sam-boot companion tool",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	cmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	cmd.PersistentFlags().String("config", "", "Set config file")
	_ = viper.BindPFlag("debug", cmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("config", cmd.PersistentFlags().Lookup("config"))

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	return cmd
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = NewRootCmd()

// Execute adds all child commands to the root command and sets flags
// appropriately, it is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
