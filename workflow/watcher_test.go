// Copyright (c) Revstack, Inc.
// SPDX-License-Identifier: MPL-2.0

package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/revstack/session/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWatcher(t *testing.T, p notify.Permission) (*Watcher, *notify.TestDevice) {
	t.Helper()
	require := require.New(t)
	device := notify.NewTestDevice(p)
	gateway, err := notify.NewGateway(device)
	require.NoError(err)
	t.Cleanup(gateway.Done)
	w, err := NewWatcher(gateway)
	require.NoError(err)
	return w, device
}

func TestNewWatcher(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)
	w, err := NewWatcher(nil)
	require.Error(err)
	assert.True(errors.Is(err, ErrNilParameter))
	assert.Nil(w)
}

func TestWatcher_Observe(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("first-terminal-emits-once", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		w, device := testWatcher(t, notify.PermissionGranted)

		emitted, err := w.Observe(ctx, "w1", StatusCompleted)
		require.NoError(err)
		assert.True(emitted)

		emitted, err = w.Observe(ctx, "w1", StatusCompleted)
		require.NoError(err)
		assert.False(emitted)

		shown := device.Shown()
		require.Len(shown, 1)
		assert.Equal("Review complete", shown[0].Title)
		assert.Equal("w1:completed", shown[0].Tag)
	})

	t.Run("dedup-key-includes-status", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		w, device := testWatcher(t, notify.PermissionGranted)

		emitted, err := w.Observe(ctx, "w1", StatusNeedsReview)
		require.NoError(err)
		assert.True(emitted)
		emitted, err = w.Observe(ctx, "w1", StatusCompleted)
		require.NoError(err)
		assert.True(emitted)

		shown := device.Shown()
		require.Len(shown, 2)
		assert.Equal("Input needed", shown[0].Title)
		assert.Equal("w1:needs_review", shown[0].Tag)
		assert.Equal("Review complete", shown[1].Title)
		assert.Equal("w1:completed", shown[1].Tag)
	})

	t.Run("non-terminal-is-a-no-op", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		w, device := testWatcher(t, notify.PermissionGranted)

		for _, s := range []Status{StatusPending, StatusSearching, StatusScreening, StatusSynthesizing} {
			emitted, err := w.Observe(ctx, "w1", s)
			require.NoError(err)
			assert.False(emitted)
		}
		assert.Empty(device.Shown())
	})

	t.Run("workflows-are-independent", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		w, device := testWatcher(t, notify.PermissionGranted)

		for _, id := range []string{"w1", "w2"} {
			emitted, err := w.Observe(ctx, id, StatusFailed)
			require.NoError(err)
			assert.True(emitted)
		}
		assert.Len(device.Shown(), 2)
	})

	t.Run("drop-when-not-granted-is-not-remembered", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		w, device := testWatcher(t, notify.PermissionDenied)

		emitted, err := w.Observe(ctx, "w1", StatusCompleted)
		require.NoError(err)
		assert.False(emitted)
		assert.Empty(device.Shown())

		// once granted, the same transition notifies on its next
		// observation
		device.SetPermission(notify.PermissionGranted)
		emitted, err = w.Observe(ctx, "w1", StatusCompleted)
		require.NoError(err)
		assert.True(emitted)
		assert.Len(device.Shown(), 1)
	})

	t.Run("unsupported-drops", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		w, device := testWatcher(t, notify.PermissionUnsupported)

		emitted, err := w.Observe(ctx, "w1", StatusCompleted)
		require.NoError(err)
		assert.False(emitted)
		assert.Empty(device.Shown())
	})

	t.Run("reset-discards-the-tracker", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		w, device := testWatcher(t, notify.PermissionGranted)

		_, err := w.Observe(ctx, "w1", StatusCompleted)
		require.NoError(err)
		w.Reset("w1")
		emitted, err := w.Observe(ctx, "w1", StatusCompleted)
		require.NoError(err)
		assert.True(emitted)
		assert.Len(device.Shown(), 2)
	})

	t.Run("empty-workflow-id", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		w, _ := testWatcher(t, notify.PermissionGranted)

		_, err := w.Observe(ctx, "", StatusCompleted)
		require.Error(err)
		assert.True(errors.Is(err, ErrInvalidParameter))
	})
}
