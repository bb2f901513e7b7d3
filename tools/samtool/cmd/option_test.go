// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"context"

	efi "github.com/canonical/go-efilib"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sammodule/sam-boot/hii"
)

type mockVariable struct {
	attrs efi.VariableAttributes
	data  []byte
}

// mockVars implements an in-memory efi.VarsBackend.
type mockVars map[efi.VariableDescriptor]mockVariable

func (m mockVars) Get(name string, guid efi.GUID) (efi.VariableAttributes, []byte, error) {
	v, ok := m[efi.VariableDescriptor{Name: name, GUID: guid}]

	if !ok {
		return 0, nil, efi.ErrVarNotExist
	}

	return v.attrs, v.data, nil
}

func (m mockVars) Set(name string, guid efi.GUID, attrs efi.VariableAttributes, data []byte) error {
	m[efi.VariableDescriptor{Name: name, GUID: guid}] = mockVariable{attrs, append([]byte{}, data...)}
	return nil
}

func (m mockVars) List() (out []efi.VariableDescriptor, err error) {
	for k := range m {
		out = append(out, k)
	}

	return
}

var _ = Describe("Option", Label("option", "cmd"), func() {
	var vars mockVars
	var guid efi.GUID

	BeforeEach(func() {
		var err error

		guid, err = efi.DecodeGUIDString(hii.FormSetGUID)
		Expect(err).To(BeNil())

		vars = mockVars{}

		config = &Config{
			Fs:         config.Fs,
			Logger:     NewNullLogger(),
			VarContext: context.WithValue(context.Background(), efi.VarsBackendKey{}, vars),
		}

		rootCmd = NewRootCmd()
		_ = NewOptionCmd(rootCmd)
	})
	It("Saves defaults on first access", func() {
		_, output, err := executeCommandC(rootCmd, "option", "get")
		Expect(err).To(BeNil())
		Expect(output).To(ContainSubstring("Sam Option"))
		Expect(output).To(ContainSubstring("SamModule"))

		v, ok := vars[efi.VariableDescriptor{Name: hii.VariableName, GUID: guid}]
		Expect(ok).To(BeTrue())
		Expect(v.attrs).To(Equal(efi.AttributeNonVolatile | efi.AttributeBootserviceAccess | efi.AttributeRuntimeAccess))
		Expect(v.data).To(HaveLen(hii.DataSize))
	})
	It("Changes and persists a question", func() {
		_, output, err := executeCommandC(rootCmd, "option", "set", "checkbox", "true")
		Expect(err).To(BeNil())
		Expect(output).To(ContainSubstring("[X]"))

		rootCmd = NewRootCmd()
		_ = NewOptionCmd(rootCmd)

		_, output, err = executeCommandC(rootCmd, "option", "get", "--raw")
		Expect(err).To(BeNil())
		Expect(output).To(ContainSubstring("CheckBox: true"))
	})
	It("Rejects out of range values", func() {
		_, _, err := executeCommandC(rootCmd, "option", "set", "numeric", "5000")
		Expect(err).NotTo(BeNil())
	})
	It("Rejects unknown questions", func() {
		_, _, err := executeCommandC(rootCmd, "option", "set", "missing", "1")
		Expect(err).NotTo(BeNil())
	})
	It("Prints the configuration string", Label("flags"), func() {
		_, output, err := executeCommandC(rootCmd, "option", "get", "--config")
		Expect(err).To(BeNil())
		Expect(output).To(ContainSubstring("GUID="))
		Expect(output).To(ContainSubstring("&OFFSET=0&WIDTH="))
	})
})
