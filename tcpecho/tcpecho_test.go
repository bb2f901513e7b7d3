// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package tcpecho

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"
)

type testInput struct {
	lines   []string
	prompts int
}

func (in *testInput) ReadLine(prompt string) (string, error) {
	if prompt != Prompt {
		return "", errors.New("unexpected prompt")
	}

	in.prompts++

	if len(in.lines) == 0 {
		return "", io.EOF
	}

	line := in.lines[0]
	in.lines = in.lines[1:]

	return line, nil
}

func TestParseArgs(t *testing.T) {
	ip, port, err := ParseArgs([]string{"tcp", "192.168.0.10", "8080"})

	if err != nil {
		t.Fatal(err)
	}

	if ip.String() != "192.168.0.10" || port != 8080 {
		t.Fatalf("unexpected address %s:%d", ip, port)
	}

	for _, args := range [][]string{
		{"tcp"},
		{"tcp", "192.168.0.10"},
		{"tcp", "192.168.0", "80"},
		{"tcp", "::1", "80"},
		{"tcp", "192.168.0.10", "65536"},
	} {
		if _, _, err := ParseArgs(args); !errors.Is(err, ErrUsage) {
			t.Errorf("%v: expected usage error, got %v", args, err)
		}
	}
}

func TestRunUsage(t *testing.T) {
	buf := &bytes.Buffer{}
	c := &Client{Output: buf}

	if err := c.Run(context.Background(), []string{"ConnectWithTcp4"}); !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}

	if want := "UEFI TCP Client. Usage: ConnectWithTcp4 <ServerIP> <port>\n"; buf.String() != want {
		t.Fatalf("got %q", buf.String())
	}
}

func TestSession(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	go func() {
		defer server.Close()

		buf := make([]byte, BufferSize)

		for {
			n, err := server.Read(buf)

			if err != nil {
				return
			}

			server.Write(bytes.ToUpper(buf[:n]))
		}
	}()

	out := &bytes.Buffer{}
	in := &testInput{lines: []string{"hello", "", "world\r\n", "q", "unreached"}}
	c := &Client{Input: in, Output: out}

	if err := c.Session(client); err != nil {
		t.Fatal(err)
	}

	want := "Message from server: HELLO\nMessage from server: WORLD\n"

	if out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}

	if in.prompts != 4 {
		t.Fatalf("unexpected prompt count %d", in.prompts)
	}
}

type lastReplyConn struct {
	reply string
	sent  bytes.Buffer
}

func (c *lastReplyConn) Write(p []byte) (int, error) {
	return c.sent.Write(p)
}

func (c *lastReplyConn) Read(p []byte) (int, error) {
	return copy(p, c.reply), io.EOF
}

func TestSessionDataWithEOF(t *testing.T) {
	out := &bytes.Buffer{}
	in := &testInput{lines: []string{"hi"}}
	c := &Client{Input: in, Output: out}
	conn := &lastReplyConn{reply: "hi"}

	if err := c.Session(conn); err != nil {
		t.Fatal(err)
	}

	want := "Message from server: hi\nconnection closed by server\n"

	if out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}

	if conn.sent.String() != "hi" {
		t.Fatalf("unexpected payload %q", conn.sent.String())
	}
}

func TestEchoServer(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")

	if err != nil {
		t.Skipf("no loopback networking, %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- (&Server{}).Serve(ctx, l)
	}()

	addr := l.Addr().(*net.TCPAddr)
	out := &bytes.Buffer{}

	c := &Client{
		Input:  &testInput{lines: []string{"ping", "Q"}},
		Output: out,
	}

	args := []string{"tcp", addr.IP.String(), strconv.Itoa(addr.Port)}

	if err := c.Run(ctx, args); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out.String(), "Message from server: ping\n") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
