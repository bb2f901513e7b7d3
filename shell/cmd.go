// Copyright (c) WithSecure Corporation
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package shell

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"sync"
	"text/tabwriter"
)

// CmdFn represents a command handler.
type CmdFn func(iface *Interface, arg []string) (res string, err error)

// Cmd represents a shell command.
type Cmd struct {
	// Name is the command name, also used for matching when Pattern is
	// not set.
	Name string
	// Args is the number of Pattern submatches passed to Fn.
	Args int
	// Pattern matches the full command line.
	Pattern *regexp.Regexp
	// Syntax is the argument syntax shown in help.
	Syntax string
	// Help is the command description.
	Help string
	// Fn is the command handler.
	Fn CmdFn
}

var (
	mu   sync.Mutex
	cmds = make(map[string]*Cmd)
)

// Add registers a command, an existing command with the same name is
// replaced.
func Add(cmd Cmd) {
	mu.Lock()
	defer mu.Unlock()

	cmds[cmd.Name] = &cmd
}

// sorted returns registered commands ordered by name.
func sorted() (list []*Cmd) {
	mu.Lock()
	defer mu.Unlock()

	for _, cmd := range cmds {
		list = append(list, cmd)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})

	return
}

// Help returns the help text of all registered commands.
func Help(_ *Interface, _ []string) (string, error) {
	var buf bytes.Buffer

	t := tabwriter.NewWriter(&buf, 16, 8, 0, '\t', tabwriter.TabIndent)

	for _, cmd := range sorted() {
		fmt.Fprintf(t, "%s\t%s\t # %s\n", cmd.Name, cmd.Syntax, cmd.Help)
	}

	t.Flush()

	return buf.String(), nil
}
