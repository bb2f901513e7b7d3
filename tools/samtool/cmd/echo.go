// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"net"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sammodule/sam-boot/tcpecho"
)

// DefaultListen is the echo server default listening address.
const DefaultListen = ":1234"

func NewEchoServerCmd(root *cobra.Command) *cobra.Command {
	c := &cobra.Command{
		Use:   "echo-server",
		Args:  cobra.ExactArgs(0),
		Short: "Run a TCP echo server for the firmware tcp command",
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr := viper.GetString("echo.listen")

			l, err := net.Listen("tcp", addr)

			if err != nil {
				return fmt.Errorf("could not listen on %s, %v", addr, err)
			}

			config.Logger.Infof("listening on %s", l.Addr())

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := &tcpecho.Server{Log: config.Logger}

			return srv.Serve(ctx, l)
		},
	}

	c.Flags().StringP("listen", "l", DefaultListen, "Listening address")
	_ = viper.BindPFlag("echo.listen", c.Flags().Lookup("listen"))

	root.AddCommand(c)

	return c
}

// register the subcommand into rootCmd
var _ = NewEchoServerCmd(rootCmd)
