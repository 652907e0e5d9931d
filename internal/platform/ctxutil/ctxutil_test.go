// Copyright (c) 2026 Toolshelf. All rights reserved.

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toolshelf/toolshelf/internal/platform/ctxutil"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 1. Initially should return the default logger
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_ExposeErrors verifies the error exposure flag defaults to the
safe production behaviour.
*/
func TestContext_ExposeErrors(t *testing.T) {
	ctx := context.Background()

	// 1. Unset means no internal diagnostics leave the server
	assert.False(t, ctxutil.GetExposeErrors(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithExposeErrors(ctx, true)
	assert.True(t, ctxutil.GetExposeErrors(ctx))
}
