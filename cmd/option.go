// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/sammodule/sam-boot/hii"
	"github.com/sammodule/sam-boot/shell"
	"github.com/sammodule/sam-boot/uefi"
	"github.com/sammodule/sam-boot/uefi/x64"
)

var (
	optionGUID = uefi.MustParseGUID(hii.FormSetGUID)
	optionForm *hii.Form
)

func init() {
	shell.Add(shell.Cmd{
		Name:    "option",
		Args:    2,
		Pattern: regexp.MustCompile(`^option(?: (set|extract|route|counters) (.*))?$`),
		Syntax:  "(set <question> <value>|extract <request>|route <config>|counters <start|stop>)?",
		Help:    "HII option form",
		Fn:      optionCmd,
	})
}

// variableStore persists the option data in an EFI variable, it implements
// hii.Store.
type variableStore struct {
	name string
	guid uefi.GUID
}

func (s *variableStore) Load() (buf []byte, err error) {
	_, _, buf, err = x64.UEFI.Runtime.GetVariable(s.name, s.guid, true)

	if errors.Is(err, uefi.ErrEfiNotFound) {
		return nil, fmt.Errorf("%s, %w", s.name, hii.ErrNotFound)
	}

	return
}

func (s *variableStore) Save(buf []byte) error {
	attr := uefi.VariableAttributes{
		NonVolatile:          true,
		BootServiceAccess:    true,
		RuntimeServiceAccess: true,
	}

	return x64.UEFI.Runtime.SetVariable(s.name, s.guid, attr, buf)
}

func form() (f *hii.Form, err error) {
	if optionForm != nil {
		return optionForm, nil
	}

	store := &variableStore{
		name: hii.VariableName,
		guid: optionGUID,
	}

	f = hii.NewForm([16]byte(optionGUID), uefi.VendorDevicePath(optionGUID), store)

	if err = f.Load(); err != nil {
		return nil, fmt.Errorf("could not load option data, %v", err)
	}

	optionForm = f

	return
}

func optionCmd(_ *shell.Interface, arg []string) (res string, err error) {
	var buf bytes.Buffer

	f, err := form()

	if err != nil {
		return
	}

	switch arg[0] {
	case "set":
		q, v, _ := strings.Cut(arg[1], " ")

		req, err := f.Set(q, strings.TrimSpace(v))

		if err != nil {
			return "", err
		}

		if req == hii.RequestSubmit {
			fmt.Fprintf(&buf, "option data saved\n")
		}
	case "extract":
		progress, results, err := f.ExtractConfig(arg[1])

		if err != nil {
			return "", fmt.Errorf("%v at %d", err, progress)
		}

		return results, nil
	case "route":
		if progress, err := f.RouteConfig(arg[1]); err != nil {
			return "", fmt.Errorf("%v at %d", err, progress)
		}
	case "counters":
		switch arg[1] {
		case "start":
			f.Start(context.Background())
		case "stop":
			f.Stop()
		default:
			return "", errors.New("invalid counters action")
		}
	}

	f.Render(&buf)

	return buf.String(), nil
}
