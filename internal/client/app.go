// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/mailmahee/nifty/internal/adapter"
	"github.com/mailmahee/nifty/internal/logger"
	"github.com/mailmahee/nifty/models"
)

// App is the status check. It fails when the node is not healthy; a status refused
// for lack of a token is reported but does not fail the check.
type App struct {
	adapter adapter.ServerAdapter
	out     io.Writer
	logger  *logger.Logger
}

func NewApp(serverAdapter adapter.ServerAdapter, out io.Writer, logger *logger.Logger) (*App, error) {
	if serverAdapter == nil {
		return nil, errors.New("server adapter is nil")
	}
	return &App{adapter: serverAdapter, out: out, logger: logger}, nil
}

func (a *App) Run(ctx context.Context) error {
	if err := a.adapter.Health(ctx); err != nil {
		return fmt.Errorf("node is not healthy: %w", err)
	}

	version, err := a.adapter.Version(ctx)
	if err != nil {
		return fmt.Errorf("get version: %w", err)
	}

	status, err := a.adapter.Status(ctx)
	if errors.Is(err, adapter.ErrUnauthorized) {
		a.logger.Warn().Err(err).Msg("status requires a token")
		printPairs(a.out, [][2]string{{"health", "OK"}, {"version", version}, {"status", "unauthorized"}})
		return nil
	}
	if err != nil {
		return fmt.Errorf("get status: %w", err)
	}

	printStatus(a.out, version, status)
	return nil
}

func printStatus(w io.Writer, version string, status models.NodeStatus) {
	printPairs(w, [][2]string{
		{"health", "OK"},
		{"version", version},
		{"listeners", strconv.Itoa(len(status.Listeners))},
		{"channels", strconv.Itoa(len(status.Channels))},
		{"timeouts pending", strconv.Itoa(status.TimeoutsPending)},
	})

	if len(status.Listeners) > 0 {
		fmt.Fprintln(w)
		listeners := newTableData("Listener", "Address", "Connections")
		for _, l := range status.Listeners {
			listeners.addRow(l.Name, l.Address, strconv.Itoa(l.Connections))
		}
		printTable(w, listeners)
	}

	if len(status.Pools) > 0 {
		fmt.Fprintln(w)
		pools := newTableData("Pool", "Capacity", "Running", "Queued", "Stopped")
		for _, p := range status.Pools {
			pools.addRow(p.Name, strconv.Itoa(p.Capacity), strconv.Itoa(p.Running), strconv.Itoa(p.Queued), strconv.FormatBool(p.Stopped))
		}
		printTable(w, pools)
	}
}
