// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package netio

import (
	"context"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailmahee/nifty/internal/channel"
	"github.com/mailmahee/nifty/internal/logger"
	"github.com/mailmahee/nifty/internal/timer"
	"github.com/mailmahee/nifty/internal/workers"
)

// ── helpers ───────────────────────────────────────────────────────────────────

type fixture struct {
	factory *ServerChannelFactory
	group   *channel.Group
	boss    *workers.Pool
	worker  *workers.Pool
}

func newFixture(t *testing.T, bossSize int) *fixture {
	t.Helper()

	boss, err := workers.NewPool("boss", bossSize, nil, logger.Nop())
	require.NoError(t, err)
	worker, err := workers.NewPool("worker", 4, nil, logger.Nop())
	require.NoError(t, err)
	group := channel.NewGroup("test")

	f := NewServerChannelFactory(boss, worker, timer.New(nil, nil), group,
		SocketOptions{TCPNoDelay: true, ReuseAddress: true}, nil, logger.Nop())

	t.Cleanup(func() {
		_ = f.Close()
		_ = group.Close()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = boss.Shutdown(ctx)
		_ = worker.Shutdown(ctx)
	})

	return &fixture{factory: f, group: group, boss: boss, worker: worker}
}

// echoLoop accepts connections and echoes everything back until the listener
// is closed.
func echoLoop(l net.Listener) error {
	for {
		conn, err := l.Accept()
		if err != nil {
			return err
		}
		go func() {
			defer conn.Close()
			_, _ = io.Copy(conn, conn)
		}()
	}
}

func dial(t *testing.T, sc *ServerChannel) net.Conn {
	t.Helper()
	conn, err := net.DialTimeout("tcp", sc.Addr().String(), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// ── Bind ──────────────────────────────────────────────────────────────────────

// TestBind_RegistersServerChannel verifies that a bound listener is tracked.
func TestBind_RegistersServerChannel(t *testing.T) {
	fx := newFixture(t, 1)

	sc, err := fx.factory.Bind(context.Background(), "echo", "127.0.0.1:0", BindOptions{})
	require.NoError(t, err)

	assert.True(t, fx.group.Contains(sc))
	assert.Nil(t, sc.RemoteAddr())
	assert.NotEmpty(t, sc.ID())

	require.NoError(t, sc.Close())
	assert.False(t, fx.group.Contains(sc))
	assert.NoError(t, sc.Close(), "second close is a no-op")
}

// TestBind_InvalidAddress verifies that bind errors are surfaced.
func TestBind_InvalidAddress(t *testing.T) {
	fx := newFixture(t, 1)

	_, err := fx.factory.Bind(context.Background(), "bad", "256.0.0.1:99999", BindOptions{})
	assert.Error(t, err)
	assert.Equal(t, 0, fx.group.Size())
}

// TestBind_AfterClose verifies that a closed factory refuses new listeners.
func TestBind_AfterClose(t *testing.T) {
	fx := newFixture(t, 1)
	require.NoError(t, fx.factory.Close())

	_, err := fx.factory.Bind(context.Background(), "late", "127.0.0.1:0", BindOptions{})
	assert.ErrorIs(t, err, ErrFactoryClosed)
}

// ── Serve / Accept ────────────────────────────────────────────────────────────

// TestServe_TracksConnections verifies that accepted connections are
// registered while open and unregistered once closed.
func TestServe_TracksConnections(t *testing.T) {
	fx := newFixture(t, 1)

	sc, err := fx.factory.Bind(context.Background(), "echo", "127.0.0.1:0", BindOptions{})
	require.NoError(t, err)
	require.NoError(t, fx.factory.Serve(sc, echoLoop))

	conn := dial(t, sc)
	_, err = conn.Write([]byte("ping"))
	require.NoError(t, err)
	buf := make([]byte, 4)
	_, err = io.ReadFull(conn, buf)
	require.NoError(t, err)
	assert.Equal(t, "ping", string(buf))

	// listener + one accepted connection
	assert.Equal(t, 2, fx.group.Size())
	assert.Equal(t, 1, sc.Connections())

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return fx.group.Size() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, sc.Connections())
}

// TestServe_DoneAfterClose verifies that Done is closed once the accept loop
// returns because the listener was closed.
func TestServe_DoneAfterClose(t *testing.T) {
	fx := newFixture(t, 1)

	sc, err := fx.factory.Bind(context.Background(), "echo", "127.0.0.1:0", BindOptions{})
	require.NoError(t, err)
	require.NoError(t, fx.factory.Serve(sc, echoLoop))

	require.NoError(t, sc.Close())

	select {
	case <-sc.Done():
	case <-time.After(time.Second):
		t.Fatal("accept loop did not finish")
	}
	assert.Equal(t, 0, fx.boss.Stats().Running)
}

// TestServe_BossPoolExhausted verifies that accept loops never queue behind
// each other on a saturated boss pool.
func TestServe_BossPoolExhausted(t *testing.T) {
	fx := newFixture(t, 1)

	first, err := fx.factory.Bind(context.Background(), "first", "127.0.0.1:0", BindOptions{})
	require.NoError(t, err)
	second, err := fx.factory.Bind(context.Background(), "second", "127.0.0.1:0", BindOptions{})
	require.NoError(t, err)

	require.NoError(t, fx.factory.Serve(first, echoLoop))
	err = fx.factory.Serve(second, echoLoop)
	assert.ErrorIs(t, err, ErrBossPoolExhausted)

	assert.ErrorIs(t, fx.factory.Serve(first, echoLoop), ErrAlreadyServing)
}

// TestAccept_MaxConnections verifies that connections over the limit are
// closed right after accept.
func TestAccept_MaxConnections(t *testing.T) {
	fx := newFixture(t, 1)

	sc, err := fx.factory.Bind(context.Background(), "limited", "127.0.0.1:0", BindOptions{MaxConnections: 1})
	require.NoError(t, err)
	require.NoError(t, fx.factory.Serve(sc, echoLoop))

	first := dial(t, sc)
	_, err = first.Write([]byte("a"))
	require.NoError(t, err)
	buf := make([]byte, 1)
	_, err = io.ReadFull(first, buf)
	require.NoError(t, err)

	second := dial(t, sc)
	require.NoError(t, second.SetReadDeadline(time.Now().Add(time.Second)))
	_, err = second.Read(buf)
	assert.Error(t, err, "rejected connection must be closed by the server")
	assert.Equal(t, 1, sc.Connections())
}

// ── Close ─────────────────────────────────────────────────────────────────────

// TestClose_StopsAccepting verifies that Close shuts every listener but
// leaves accepted connections to the registry sweep.
func TestClose_StopsAccepting(t *testing.T) {
	fx := newFixture(t, 2)

	sc, err := fx.factory.Bind(context.Background(), "echo", "127.0.0.1:0", BindOptions{})
	require.NoError(t, err)
	require.NoError(t, fx.factory.Serve(sc, echoLoop))

	conn := dial(t, sc)
	_, err = conn.Write([]byte("x"))
	require.NoError(t, err)
	buf := make([]byte, 1)
	_, err = io.ReadFull(conn, buf)
	require.NoError(t, err)

	require.NoError(t, fx.factory.Close())
	<-sc.Done()

	_, err = net.DialTimeout("tcp", sc.Addr().String(), 200*time.Millisecond)
	assert.Error(t, err)
	assert.Equal(t, 1, fx.group.Size(), "accepted connection is still tracked")

	require.NoError(t, fx.group.Close())
	assert.Equal(t, 0, fx.group.Size())

	err = fx.factory.Serve(sc, echoLoop)
	assert.True(t, errors.Is(err, ErrFactoryClosed))
	assert.NoError(t, fx.factory.Close(), "second close is a no-op")
}

// ── Submit / Status ───────────────────────────────────────────────────────────

// TestSubmitWait_RunsOnWorkerPool verifies that work is executed by the
// worker pool.
func TestSubmitWait_RunsOnWorkerPool(t *testing.T) {
	fx := newFixture(t, 1)

	ran := false
	require.NoError(t, fx.factory.SubmitWait(context.Background(), func() { ran = true }))
	assert.True(t, ran)

	require.NoError(t, fx.worker.Shutdown(context.Background()))
	assert.ErrorIs(t, fx.factory.Submit(func() {}), workers.ErrPoolStopped)
}

// TestStatus verifies the introspection document.
func TestStatus(t *testing.T) {
	fx := newFixture(t, 1)

	sc, err := fx.factory.Bind(context.Background(), "echo", "127.0.0.1:0", BindOptions{})
	require.NoError(t, err)
	_, err = fx.factory.Timer().NewTimeout(time.Hour, func() {})
	require.NoError(t, err)

	status := fx.factory.Status()

	require.Len(t, status.Listeners, 1)
	assert.Equal(t, "echo", status.Listeners[0].Name)
	assert.Equal(t, sc.Addr().String(), status.Listeners[0].Address)
	require.Len(t, status.Channels, 1)
	assert.True(t, status.Channels[0].Server)
	require.Len(t, status.Pools, 2)
	assert.Equal(t, "boss", status.Pools[0].Name)
	assert.Equal(t, "worker", status.Pools[1].Name)
	assert.Equal(t, 1, status.TimeoutsPending)
	assert.Same(t, fx.group, fx.factory.Channels())
}
