// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package tcpecho

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
)

// Logger represents the server log output, satisfied by both the standard
// and logrus loggers.
type Logger interface {
	Printf(format string, v ...any)
}

// Server represents a TCP echo server, each received message is sent back
// unchanged.
type Server struct {
	Log Logger
}

func (s *Server) logf(format string, v ...any) {
	if s.Log != nil {
		s.Log.Printf(format, v...)
	}
}

// Serve accepts connections on the argument listener until the context is
// cancelled, the listener is closed on return.
func (s *Server) Serve(ctx context.Context, l net.Listener) (err error) {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		l.Close()
	}()

	defer wg.Wait()

	for {
		conn, err := l.Accept()

		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}

			return err
		}

		wg.Add(1)

		go func() {
			defer wg.Done()
			s.handle(ctx, conn)
		}()
	}
}

func (s *Server) handle(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() {
		conn.Close()
	})
	defer stop()

	s.logf("connection from %s", conn.RemoteAddr())

	buf := make([]byte, BufferSize)

	for {
		n, err := conn.Read(buf)

		if err != nil {
			if err != io.EOF && ctx.Err() == nil {
				s.logf("read error from %s, %v", conn.RemoteAddr(), err)
			}

			break
		}

		s.logf("message from %s: %q", conn.RemoteAddr(), buf[:n])

		if _, err = conn.Write(buf[:n]); err != nil {
			s.logf("write error to %s, %v", conn.RemoteAddr(), err)
			break
		}
	}

	s.logf("connection from %s closed", conn.RemoteAddr())
}
