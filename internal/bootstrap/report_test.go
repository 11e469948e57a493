// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mailmahee/nifty/internal/transport"
)

// TestClassify verifies how stop errors map to outcomes.
func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Outcome
	}{
		{"nil", nil, OutcomeStopped},
		{"interrupted", fmt.Errorf("%w: x", transport.ErrInterrupted), OutcomeDisrupted},
		{"canceled", context.Canceled, OutcomeDisrupted},
		{"deadline", fmt.Errorf("wrapped: %w", context.DeadlineExceeded), OutcomeDisrupted},
		{"other", errors.New("boom"), OutcomeFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.err))
		})
	}
}

// TestOutcome_String verifies outcome names.
func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "stopped", OutcomeStopped.String())
	assert.Equal(t, "failed", OutcomeFailed.String())
	assert.Equal(t, "disrupted", OutcomeDisrupted.String())
	assert.Equal(t, "outcome(9)", Outcome(9).String())
}

// TestStopReport_Err verifies aggregation of transport and teardown errors.
func TestStopReport_Err(t *testing.T) {
	assert.NoError(t, StopReport{}.Err())
	assert.NoError(t, StopReport{Outcomes: []TransportOutcome{{Name: "a"}}}.Err())

	teardown := errors.New("drain")
	r := StopReport{
		Outcomes: []TransportOutcome{
			{Name: "a", Outcome: OutcomeDisrupted, Err: context.Canceled},
			{Name: "b", Outcome: OutcomeStopped},
		},
		Teardown: teardown,
	}
	err := r.Err()
	assert.ErrorIs(t, err, ErrInterrupted)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, teardown)
	assert.Contains(t, err.Error(), "transport a disrupted")
}

// TestStartError verifies message and unwrapping.
func TestStartError(t *testing.T) {
	cause := errors.New("bind")
	e := &StartError{Index: 1, Name: "grpc", Err: cause}
	assert.Equal(t, "failed to start transport 1 (grpc): bind", e.Error())
	assert.ErrorIs(t, e, cause)

	rollback := errors.New("stop a")
	e.Rollback = rollback
	assert.ErrorIs(t, e, rollback)
	assert.Contains(t, e.Error(), "rollback: stop a")
}

// TestState_String verifies state names.
func TestState_String(t *testing.T) {
	assert.Equal(t, "constructed", StateConstructed.String())
	assert.Equal(t, "started", StateStarted.String())
	assert.Equal(t, "stopped", StateStopped.String())
}
