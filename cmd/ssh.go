// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"log"
	"regexp"

	"github.com/gliderlabs/ssh"
	gossh "golang.org/x/crypto/ssh"

	"github.com/sammodule/sam-boot/shell"
)

// Banner represents the shell welcome message
var Banner string

func init() {
	shell.Add(shell.Cmd{
		Name:    "ssh",
		Args:    1,
		Pattern: regexp.MustCompile(`^ssh(?: (\d+))?$`),
		Syntax:  "(port)?",
		Help:    "start SSH server",
		Fn:      sshCmd,
	})
}

func sshSession(s ssh.Session) {
	log.Printf("ssh session %s@%s", s.User(), s.RemoteAddr())

	iface := &shell.Interface{
		Banner:     Banner,
		ReadWriter: s,
		VT100:      true,
	}

	iface.Start()
	s.Exit(0)
}

func sshCmd(_ *shell.Interface, arg []string) (res string, err error) {
	if !networking {
		return "", errNoNetwork
	}

	port := arg[0]

	if len(port) == 0 {
		port = "22"
	}

	_, key, err := ed25519.GenerateKey(rand.Reader)

	if err != nil {
		return "", fmt.Errorf("could not generate host key, %v", err)
	}

	signer, err := gossh.NewSignerFromKey(key)

	if err != nil {
		return "", fmt.Errorf("could not create host key signer, %v", err)
	}

	srv := &ssh.Server{
		Addr:    ":" + port,
		Handler: sshSession,
	}

	srv.AddHostKey(signer)

	go func() {
		if err := srv.ListenAndServe(); err != nil {
			log.Printf("ssh server error, %v", err)
		}
	}()

	return fmt.Sprintf("SSH server listening on port %s, host key %s",
		port, gossh.FingerprintSHA256(signer.PublicKey())), nil
}
