// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"context"
	"net"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Echo server", Label("echo", "cmd"), func() {
	BeforeEach(func() {
		config = &Config{
			Fs:         config.Fs,
			Logger:     NewNullLogger(),
			VarContext: config.VarContext,
		}

		rootCmd = NewRootCmd()
		_ = NewEchoServerCmd(rootCmd)
	})
	It("Fails on invalid addresses", func() {
		_, _, err := executeCommandC(rootCmd, "echo-server", "--listen", "invalid:address:")
		Expect(err).NotTo(BeNil())
		Expect(err.Error()).To(ContainSubstring("could not listen"))
	})
	It("Echoes messages until cancelled", func() {
		l, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).To(BeNil())
		addr := l.Addr().String()
		l.Close()

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)

		rootCmd.SetArgs([]string{"echo-server", "--listen", addr})
		rootCmd.SetOut(new(bytes.Buffer))

		go func() {
			done <- rootCmd.ExecuteContext(ctx)
		}()

		var conn net.Conn

		Eventually(func() error {
			conn, err = net.Dial("tcp", addr)
			return err
		}, 5*time.Second, 50*time.Millisecond).Should(Succeed())

		_, err = conn.Write([]byte("hello"))
		Expect(err).To(BeNil())

		buf := make([]byte, 16)
		n, err := conn.Read(buf)
		Expect(err).To(BeNil())
		Expect(string(buf[:n])).To(Equal("hello"))
		conn.Close()

		cancel()
		Eventually(done, 5*time.Second).Should(Receive(BeNil()))
	})
})
