// Copyright (c) WithSecure Corporation
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package shell

import (
	"bytes"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"
)

type testConn struct {
	io.Reader
	bytes.Buffer
}

func (c *testConn) Write(p []byte) (int, error) {
	return c.Buffer.Write(p)
}

func (c *testConn) Read(p []byte) (int, error) {
	return c.Reader.Read(p)
}

func TestStart(t *testing.T) {
	var prompted string

	Add(Cmd{
		Name:    "echo",
		Args:    1,
		Pattern: regexp.MustCompile(`^echo (.*)$`),
		Syntax:  "<text>",
		Help:    "print text",
		Fn: func(_ *Interface, arg []string) (string, error) {
			return "echo:" + arg[0], nil
		},
	})

	Add(Cmd{
		Name: "fail",
		Help: "return an error",
		Fn: func(_ *Interface, _ []string) (string, error) {
			return "", errors.New("failure")
		},
	})

	Add(Cmd{
		Name: "ask",
		Help: "read a line",
		Fn: func(iface *Interface, _ []string) (string, error) {
			s, err := iface.ReadLine("question:")
			prompted = s
			return "", err
		},
	})

	Add(Cmd{
		Name: "quit",
		Help: "close session",
		Fn: func(_ *Interface, _ []string) (string, error) {
			return "", io.EOF
		},
	})

	conn := &testConn{
		Reader: strings.NewReader("echo hello\rfail\runknown\rask\ranswer\rquit\recho unreached\r"),
	}

	iface := &Interface{
		Banner:     "test banner",
		ReadWriter: conn,
	}

	iface.Start()

	out := conn.String()

	for _, s := range []string{
		"test banner",
		"echo:hello",
		"command error, failure",
		"command error, unknown command",
		"question:",
		"print text",
	} {
		if !strings.Contains(out, s) {
			t.Errorf("missing %q in output:\n%s", s, out)
		}
	}

	if strings.Contains(out, "echo:unreached") {
		t.Error("command executed after exit")
	}

	if prompted != "answer" {
		t.Errorf("unexpected line %q", prompted)
	}
}

func TestHelp(t *testing.T) {
	Add(Cmd{Name: "zzz", Syntax: "<arg>", Help: "last command"})
	Add(Cmd{Name: "zzz", Syntax: "<arg>", Help: "replaced command"})

	help, err := Help(nil, nil)

	if err != nil {
		t.Fatal(err)
	}

	if strings.Contains(help, "last command") || !strings.Contains(help, "replaced command") {
		t.Fatalf("command not replaced:\n%s", help)
	}
}
