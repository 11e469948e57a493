// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package channel

import (
	"fmt"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/multierr"
)

// Group is a thread-safe set of open channels.
type Group struct {
	name     string
	channels mapset.Set[Channel]
}

// NewGroup creates an empty group. The name only shows up in logs and errors.
func NewGroup(name string) *Group {
	return &Group{
		name:     name,
		channels: mapset.NewSet[Channel](),
	}
}

// Name returns the group name.
func (g *Group) Name() string {
	return g.name
}

// Add registers ch. It reports false if ch was already tracked.
func (g *Group) Add(ch Channel) bool {
	return g.channels.Add(ch)
}

// Remove unregisters ch. It reports false if ch was not tracked.
func (g *Group) Remove(ch Channel) bool {
	if !g.channels.Contains(ch) {
		return false
	}
	g.channels.Remove(ch)
	return true
}

func (g *Group) Contains(ch Channel) bool {
	return g.channels.Contains(ch)
}

// Size returns the number of tracked channels.
func (g *Group) Size() int {
	return g.channels.Cardinality()
}

// Channels returns a snapshot of the tracked channels.
func (g *Group) Channels() []Channel {
	return g.channels.ToSlice()
}

// Snapshot describes every tracked channel, sorted by local address and ID.
func (g *Group) Snapshot() []Info {
	chs := g.channels.ToSlice()
	out := make([]Info, 0, len(chs))
	for _, ch := range chs {
		out = append(out, describe(ch))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Local != out[j].Local {
			return out[i].Local < out[j].Local
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Close closes every tracked channel. A failure to close one channel does not
// stop the others from being closed; all failures are returned together.
// The group is always empty afterwards.
func (g *Group) Close() error {
	var err error
	for _, ch := range g.channels.ToSlice() {
		if cerr := ch.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("channel %s: %w", ch.ID(), cerr))
		}
	}
	g.channels.Clear()

	if err != nil {
		return fmt.Errorf("%w in group %q: %w", ErrCloseChannels, g.name, err)
	}
	return nil
}
