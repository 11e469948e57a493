// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package transport

import (
	"bufio"
	"context"
	"errors"
	"net"
	"strings"
	"sync"

	"github.com/mailmahee/nifty/internal/logger"
	"github.com/mailmahee/nifty/internal/netio"
	"github.com/mailmahee/nifty/internal/timer"
)

// DefaultMaxLineSize is the line length limit when the definition sets none.
const DefaultMaxLineSize = 64 * 1024

// Line protocol replies.
const (
	linePing     = "PING"
	linePong     = "PONG"
	lineQuit     = "QUIT"
	lineBye      = "BYE"
	lineTooLong  = "ERR line too long"
	lineShutdown = "ERR shutting down"
)

// LineTransport serves a newline-delimited text protocol: PING is answered
// with PONG, QUIT closes the connection and any other line is echoed back.
//
// Each connection is read on its own goroutine; every line is answered on
// the shared worker pool. Connections idle for IdleTimeout are closed by
// the shared timer.
type LineTransport struct {
	lifecycle

	def    Definition
	logger *logger.Logger

	factory *netio.ServerChannelFactory
	channel *netio.ServerChannel

	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	conns map[net.Conn]struct{}
	wg    sync.WaitGroup
}

func NewLineTransport(def Definition, logger *logger.Logger) *LineTransport {
	return &LineTransport{
		def:    def,
		logger: transportLogger(logger, "line-transport", def),
		conns:  make(map[net.Conn]struct{}),
	}
}

func (t *LineTransport) Name() string { return t.def.Name }

// Addr returns the bound address, or nil before Start.
func (t *LineTransport) Addr() net.Addr {
	if t.channel == nil {
		return nil
	}
	return t.channel.Addr()
}

func (t *LineTransport) Start(factory *netio.ServerChannelFactory) error {
	return t.lifecycle.start(factory, func() error {
		sc, err := factory.Bind(context.Background(), t.def.Name, t.def.Address, bindOptions(t.def))
		if err != nil {
			return err
		}

		t.factory = factory
		t.ctx, t.cancel = context.WithCancel(context.Background())

		if err := factory.Serve(sc, t.acceptLoop); err != nil {
			t.cancel()
			_ = sc.Close()
			return err
		}

		t.channel = sc
		t.logger.Info().Str("address", sc.Addr().String()).Msg("line transport started")

		return nil
	})
}

// Stop closes the listener and every open connection, then waits for the
// connection goroutines within ctx.
func (t *LineTransport) Stop(ctx context.Context) error {
	return t.lifecycle.stop(func() error {
		t.cancel()
		_ = t.channel.Close()

		t.mu.Lock()
		for conn := range t.conns {
			_ = conn.Close()
		}
		t.mu.Unlock()

		finished := make(chan struct{})
		go func() {
			<-t.channel.Done()
			t.wg.Wait()
			close(finished)
		}()

		select {
		case <-finished:
			t.logger.Info().Msg("line transport stopped")
			return nil
		case <-ctx.Done():
			return interrupted(t.def.Name, ctx.Err())
		}
	})
}

func (t *LineTransport) acceptLoop(l net.Listener) error {
	for {
		conn, err := l.Accept()
		if err != nil {
			if t.ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}

		if !t.track(conn) {
			_ = conn.Close()
			continue
		}

		t.wg.Add(1)
		go t.handle(conn)
	}
}

// track registers conn unless the transport is stopping.
func (t *LineTransport) track(conn net.Conn) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ctx.Err() != nil {
		return false
	}
	t.conns[conn] = struct{}{}

	return true
}

func (t *LineTransport) untrack(conn net.Conn) {
	t.mu.Lock()
	delete(t.conns, conn)
	t.mu.Unlock()
}

func (t *LineTransport) handle(conn net.Conn) {
	defer t.wg.Done()
	defer t.untrack(conn)
	defer conn.Close()

	log := t.logger.With().Str("remote", conn.RemoteAddr().String()).Logger()

	idle := t.armIdle(conn)
	defer func() {
		if idle != nil {
			idle.Cancel()
		}
	}()

	maxLine := t.def.MaxFrameSize
	if maxLine <= 0 {
		maxLine = DefaultMaxLineSize
	}

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, min(4096, maxLine)), maxLine)
	w := bufio.NewWriter(conn)

	for scanner.Scan() {
		if idle != nil {
			idle.Cancel()
		}
		idle = t.armIdle(conn)

		line := scanner.Text()

		var (
			reply string
			quit  bool
		)
		err := t.factory.SubmitWait(t.ctx, func() {
			reply, quit = respond(line)
		})
		if err != nil {
			reply, quit = lineShutdown, true
		}

		if _, err := w.WriteString(reply + "\n"); err != nil {
			return
		}
		if err := w.Flush(); err != nil {
			return
		}
		if quit {
			return
		}
	}

	if errors.Is(scanner.Err(), bufio.ErrTooLong) {
		log.Debug().Int("max_line", maxLine).Msg("line too long, closing connection")
		_, _ = w.WriteString(lineTooLong + "\n")
		_ = w.Flush()
	}
}

// armIdle schedules conn to be closed after the idle timeout. It returns
// nil when no timeout is configured or the timer is already stopped.
func (t *LineTransport) armIdle(conn net.Conn) *timer.Timeout {
	if t.def.IdleTimeout <= 0 {
		return nil
	}

	timeout, err := t.factory.Timer().NewTimeout(t.def.IdleTimeout, func() {
		t.logger.Debug().Str("remote", conn.RemoteAddr().String()).Msg("idle connection closed")
		_ = conn.Close()
	})
	if err != nil {
		return nil
	}

	return timeout
}

// respond maps one request line to its reply.
func respond(line string) (reply string, quit bool) {
	switch strings.ToUpper(strings.TrimSpace(line)) {
	case linePing:
		return linePong, false
	case lineQuit:
		return lineBye, true
	default:
		return line, false
	}
}
