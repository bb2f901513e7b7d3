// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// samtool is the Linux companion of the sam-boot UEFI application, it
// inspects and patches ACPI tables, edits the option form variable and runs
// the TCP echo peer.
package main

import (
	"github.com/sammodule/sam-boot/tools/samtool/cmd"
)

func main() {
	cmd.Execute()
}
