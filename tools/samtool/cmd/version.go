// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Revision is set at build time.
var Revision = "devel"

func NewVersionCmd(root *cobra.Command) *cobra.Command {
	c := &cobra.Command{
		Use:   "version",
		Args:  cobra.ExactArgs(0),
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "samtool %s %s/%s\n", Revision, runtime.GOOS, runtime.GOARCH)

			if cmd.Flag("long").Changed {
				if bi, ok := debug.ReadBuildInfo(); ok {
					fmt.Fprint(cmd.OutOrStdout(), bi.String())
				}
			}
		},
	}
	root.AddCommand(c)
	c.Flags().Bool("long", false, "Show build information")
	return c
}

// register the subcommand into rootCmd
var _ = NewVersionCmd(rootCmd)
