// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package tcpecho implements an interactive TCP/IPv4 client, which sends
// console lines to a server and prints its replies, along with a matching
// echo server.
package tcpecho

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
)

// BufferSize is the maximum size of a received message.
const BufferSize = 1024

// Prompt is shown before each message input.
const Prompt = "Please input message:"

// ErrUsage is returned on invalid client arguments.
var ErrUsage = errors.New("invalid arguments")

// LineReader represents a line oriented console input.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// Dialer represents a network connection factory, net.Dialer is used when
// none is set.
type Dialer interface {
	DialContext(ctx context.Context, network string, address string) (net.Conn, error)
}

// Client represents an interactive TCP client session.
type Client struct {
	// Input provides the messages to send
	Input LineReader
	// Output receives status and server messages
	Output io.Writer

	// Dialer establishes the server connection
	Dialer Dialer
	// TLS enables TLS when set
	TLS *tls.Config
}

// ParseArgs parses client arguments in the `<name> <ServerIP> <port>` form
// and returns the server address.
func ParseArgs(args []string) (ip net.IP, port uint16, err error) {
	if len(args) != 3 {
		return nil, 0, ErrUsage
	}

	if ip = net.ParseIP(args[1]).To4(); ip == nil {
		return nil, 0, fmt.Errorf("invalid IPv4 address %q, %w", args[1], ErrUsage)
	}

	p, err := strconv.ParseUint(args[2], 10, 16)

	if err != nil {
		return nil, 0, fmt.Errorf("invalid port %q, %w", args[2], ErrUsage)
	}

	return ip, uint16(p), nil
}

// Run connects to the server named by the arguments and runs an interactive
// session until the user quits.
func (c *Client) Run(ctx context.Context, args []string) (err error) {
	ip, port, err := ParseArgs(args)

	if err != nil {
		name := "tcp"

		if len(args) > 0 {
			name = args[0]
		}

		fmt.Fprintf(c.Output, "UEFI TCP Client. Usage: %s <ServerIP> <port>\n", name)
		return
	}

	fmt.Fprintf(c.Output, "IP: %s, port: %d\n", ip, port)
	fmt.Fprintln(c.Output, "Connect to server, please wait...")

	conn, err := c.Dial(ctx, net.JoinHostPort(ip.String(), strconv.Itoa(int(port))))

	if err != nil {
		return
	}
	defer conn.Close()

	return c.Session(conn)
}

// Dial connects to the argument server address.
func (c *Client) Dial(ctx context.Context, addr string) (conn net.Conn, err error) {
	d := c.Dialer

	if d == nil {
		d = &net.Dialer{}
	}

	if conn, err = d.DialContext(ctx, "tcp", addr); err != nil {
		return nil, fmt.Errorf("could not connect, %v", err)
	}

	if c.TLS == nil {
		return
	}

	tlsConn := tls.Client(conn, c.TLS)

	if err = tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("could not establish TLS, %v", err)
	}

	return tlsConn, nil
}

// Session sends each input line to the server and prints its reply, the
// session ends when the user enters `q` or `Q`.
func (c *Client) Session(conn io.ReadWriter) (err error) {
	buf := make([]byte, BufferSize)

	for {
		line, err := c.Input.ReadLine(Prompt)

		if err != nil {
			return err
		}

		msg := strings.TrimRight(line, "\r\n")

		if msg == "q" || msg == "Q" {
			return nil
		}

		if len(msg) == 0 {
			continue
		}

		if _, err = io.WriteString(conn, msg); err != nil {
			return fmt.Errorf("could not send, %v", err)
		}

		n, err := conn.Read(buf)

		if n > 0 {
			fmt.Fprintf(c.Output, "Message from server: %s\n", buf[:n])
		}

		if err == io.EOF {
			fmt.Fprintln(c.Output, "connection closed by server")
			return nil
		}

		if err != nil {
			return fmt.Errorf("could not receive, %v", err)
		}
	}
}
