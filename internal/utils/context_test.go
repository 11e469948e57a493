// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestOperatorCtxKey(t *testing.T) {
	if OperatorCtxKey.String() != "operator" {
		t.Errorf("expected 'operator', got '%s'", OperatorCtxKey.String())
	}
}

func TestGetOperatorFromContext_Success(t *testing.T) {
	ctx := context.WithValue(context.Background(), OperatorCtxKey, "ops")

	operator, ok := GetOperatorFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if operator != "ops" {
		t.Errorf("expected operator=ops, got %s", operator)
	}
}

func TestGetOperatorFromContext_Missing(t *testing.T) {
	operator, ok := GetOperatorFromContext(context.Background())

	if ok {
		t.Error("expected ok=false for missing value")
	}
	if operator != "" {
		t.Errorf("expected empty operator, got %s", operator)
	}
}

func TestGetOperatorFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), OperatorCtxKey, 42)

	if _, ok := GetOperatorFromContext(ctx); ok {
		t.Error("expected ok=false for wrong type")
	}
}
