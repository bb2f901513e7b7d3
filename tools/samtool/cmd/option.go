// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"context"
	"errors"
	"fmt"

	efi "github.com/canonical/go-efilib"
	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"

	"github.com/sammodule/sam-boot/hii"
)

const optionAttributes = efi.AttributeNonVolatile | efi.AttributeBootserviceAccess | efi.AttributeRuntimeAccess

// efiStore persists the option data in the host EFI variable store, it
// implements hii.Store.
type efiStore struct {
	ctx  context.Context
	name string
	guid efi.GUID
}

func (s *efiStore) Load() (buf []byte, err error) {
	buf, _, err = efi.ReadVariable(s.ctx, s.name, s.guid)

	if errors.Is(err, efi.ErrVarNotExist) {
		return nil, fmt.Errorf("%s-%s, %w", s.name, s.guid, hii.ErrNotFound)
	}

	return
}

func (s *efiStore) Save(buf []byte) error {
	config.Logger.Debugf("writing %s-%s (%d bytes)", s.name, s.guid, len(buf))
	return efi.WriteVariable(s.ctx, s.name, s.guid, optionAttributes, buf)
}

func loadForm() (f *hii.Form, err error) {
	guid, err := efi.DecodeGUIDString(hii.FormSetGUID)

	if err != nil {
		return
	}

	path := efi.DevicePath{
		&efi.VendorDevicePathNode{
			Type: efi.HardwareDevicePath,
			GUID: guid,
		},
	}

	devicePath, err := path.Bytes()

	if err != nil {
		return
	}

	store := &efiStore{
		ctx:  config.VarContext,
		name: hii.VariableName,
		guid: guid,
	}

	f = hii.NewForm([16]byte(guid), devicePath, store)

	if err = f.Load(); err != nil {
		return nil, fmt.Errorf("could not load option data, %w", err)
	}

	return
}

func NewOptionCmd(root *cobra.Command) *cobra.Command {
	c := &cobra.Command{
		Use:   "option",
		Short: "Manage the option form data stored in EFI variables",
	}

	get := &cobra.Command{
		Use:   "get",
		Args:  cobra.ExactArgs(0),
		Short: "Print the option form",
		RunE:  optionGet,
	}
	get.Flags().Bool("raw", false, "Dump option data as Go structure")
	get.Flags().Bool("config", false, "Print the HII configuration string")

	set := &cobra.Command{
		Use:   "set <question> <value>",
		Args:  cobra.ExactArgs(2),
		Short: "Change and save an option form question",
		RunE:  optionSet,
	}

	c.AddCommand(get, set)
	root.AddCommand(c)

	return c
}

// register the subcommand into rootCmd
var _ = NewOptionCmd(rootCmd)

func optionGet(cmd *cobra.Command, _ []string) (err error) {
	out := cmd.OutOrStdout()

	f, err := loadForm()

	if err != nil {
		return
	}

	raw, _ := cmd.Flags().GetBool("raw")
	cfg, _ := cmd.Flags().GetBool("config")

	switch {
	case raw:
		fmt.Fprintln(out, litter.Sdump(f.Data()))
	case cfg:
		_, res, err := f.ExtractConfig(f.Header())

		if err != nil {
			return err
		}

		fmt.Fprintln(out, res)
	default:
		f.Render(out)
	}

	return
}

func optionSet(cmd *cobra.Command, args []string) (err error) {
	f, err := loadForm()

	if err != nil {
		return
	}

	if _, err = f.Set(args[0], args[1]); err != nil {
		return
	}

	if err = f.Save(f.Data()); err != nil {
		return
	}

	f.Render(cmd.OutOrStdout())

	return
}
