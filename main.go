// Copyright (c) WithSecure Corporation
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/sammodule/sam-boot/cmd"
	"github.com/sammodule/sam-boot/shell"
	"github.com/sammodule/sam-boot/uefi/x64"
)

// set at build time
var (
	Build    string
	Revision string
)

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stdout)

	cmd.Banner = fmt.Sprintf("sam-boot • %s/%s (%s) • UEFI",
		runtime.GOOS, runtime.GOARCH, runtime.Version())

	if len(Revision) > 0 {
		cmd.Banner += fmt.Sprintf(" • %s %s", Revision, Build)
	}
}

func main() {
	console := &shell.Interface{
		Banner:     cmd.Banner,
		ReadWriter: x64.UEFI.Console,
	}

	// UEFI consoles cannot handle VT100 escape codes
	console.Start()

	log.Print("exiting application")

	if err := x64.UEFI.Boot.Exit(0); err != nil {
		log.Printf("could not exit, %v", err)
	}
}
