package dispatch_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/enquiry/pkg/diaglog"
	"github.com/dmitrymomot/enquiry/pkg/dispatch"
)

type memAppender struct {
	mu      sync.Mutex
	entries []diaglog.Entry
	err     error
}

func (m *memAppender) Append(e diaglog.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, e)
	return nil
}

func (m *memAppender) all() []diaglog.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]diaglog.Entry(nil), m.entries...)
}

type ctxKey struct{}

func TestDispatcher_Go(t *testing.T) {
	t.Parallel()

	t.Run("returns before task completes", func(t *testing.T) {
		t.Parallel()

		d := dispatch.New()
		release := make(chan struct{})
		finished := make(chan struct{})

		d.Go(context.Background(), "slow", func(context.Context) error {
			<-release
			close(finished)
			return nil
		})

		select {
		case <-finished:
			t.Fatal("task finished before release")
		default:
		}
		require.Equal(t, int64(1), d.Stats().Running)

		close(release)
		require.NoError(t, d.Shutdown(context.Background()))
		<-finished
		assert.Equal(t, dispatch.Stats{Succeeded: 1}, d.Stats())
	})

	t.Run("detaches from request cancellation but keeps values", func(t *testing.T) {
		t.Parallel()

		d := dispatch.New()
		ctx, cancel := context.WithCancel(context.WithValue(context.Background(), ctxKey{}, "req-1"))

		var gotErr error
		var gotVal any
		d.Go(ctx, "detached", func(ctx context.Context) error {
			cancel()
			gotErr = ctx.Err()
			gotVal = ctx.Value(ctxKey{})
			return nil
		})

		require.NoError(t, d.Shutdown(context.Background()))
		assert.NoError(t, gotErr)
		assert.Equal(t, "req-1", gotVal)
	})

	t.Run("error is recorded and not retried", func(t *testing.T) {
		t.Parallel()

		diag := &memAppender{}
		var failures []string
		var mu sync.Mutex
		d := dispatch.New(
			dispatch.WithDiagLog(diag, "Error sending email"),
			dispatch.WithOnFailure(func(name string, err error) {
				mu.Lock()
				failures = append(failures, name+": "+err.Error())
				mu.Unlock()
			}),
		)

		calls := 0
		d.Go(context.Background(), "notify", func(context.Context) error {
			calls++
			return errors.New("535 authentication failed")
		})
		require.NoError(t, d.Shutdown(context.Background()))

		assert.Equal(t, 1, calls)
		entries := diag.all()
		require.Len(t, entries, 1)
		assert.Equal(t, "Error sending email", entries[0].Message)
		assert.Equal(t, "535 authentication failed", entries[0].Error)
		assert.Contains(t, entries[0].Stack, "dispatch.(*Dispatcher)")
		assert.False(t, entries[0].Timestamp.IsZero())
		assert.Equal(t, []string{"notify: 535 authentication failed"}, failures)
		assert.Equal(t, int64(1), d.Stats().Failed)
	})

	t.Run("panic is recorded like an error", func(t *testing.T) {
		t.Parallel()

		diag := &memAppender{}
		var gotErr error
		d := dispatch.New(
			dispatch.WithDiagLog(diag, "Error sending email"),
			dispatch.WithOnFailure(func(_ string, err error) { gotErr = err }),
		)

		d.Go(context.Background(), "notify", func(context.Context) error {
			panic("transport exploded")
		})
		require.NoError(t, d.Shutdown(context.Background()))

		entries := diag.all()
		require.Len(t, entries, 1)
		assert.Equal(t, "panic: transport exploded", entries[0].Error)
		assert.Contains(t, entries[0].Stack, "goroutine")
		assert.Contains(t, entries[0].Stack, "panic(", "stack is taken where the task panicked")
		assert.NotContains(t, entries[0].Stack, "diaglog.NewEntry")
		assert.True(t, dispatch.IsPanicError(gotErr))
	})

	t.Run("diagnostic write failure does not crash", func(t *testing.T) {
		t.Parallel()

		diag := &memAppender{err: errors.New("disk full")}
		failed := make(chan struct{})
		d := dispatch.New(
			dispatch.WithDiagLog(diag, "Error sending email"),
			dispatch.WithOnFailure(func(string, error) { close(failed) }),
		)

		d.Go(context.Background(), "notify", func(context.Context) error {
			return errors.New("boom")
		})
		require.NoError(t, d.Shutdown(context.Background()))

		select {
		case <-failed:
		default:
			t.Fatal("failure callback not invoked")
		}
		assert.Empty(t, diag.all())
	})

	t.Run("context fields are copied into entry", func(t *testing.T) {
		t.Parallel()

		diag := &memAppender{}
		d := dispatch.New(dispatch.WithDiagLog(diag, "Error sending email"))

		ctx := dispatch.WithFields(context.Background(), diaglog.Field{Key: "Enquiry", Value: "abc"})
		ctx = dispatch.WithFields(ctx, diaglog.Field{Key: "From", Value: "ada@example.com"})
		d.Go(ctx, "notify", func(context.Context) error { return errors.New("boom") })
		require.NoError(t, d.Shutdown(context.Background()))

		entries := diag.all()
		require.Len(t, entries, 1)
		assert.Equal(t, []diaglog.Field{
			{Key: "Enquiry", Value: "abc"},
			{Key: "From", Value: "ada@example.com"},
		}, entries[0].Fields)
	})

	t.Run("success callback", func(t *testing.T) {
		t.Parallel()

		var names []string
		d := dispatch.New(dispatch.WithOnSuccess(func(name string) { names = append(names, name) }))
		d.Go(context.Background(), "ok", func(context.Context) error { return nil })
		require.NoError(t, d.Shutdown(context.Background()))
		assert.Equal(t, []string{"ok"}, names)
	})
}

func TestDispatcher_IndependentTasks(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "email_errors.log")
	w, err := diaglog.New(path)
	require.NoError(t, err)

	d := dispatch.New(dispatch.WithDiagLog(w, "Error sending email"))

	const n = 20
	for i := range n {
		d.Go(context.Background(), "notify", func(context.Context) error {
			if i%2 == 0 {
				return errors.New("send failed")
			}
			return nil
		})
	}
	require.NoError(t, d.Shutdown(context.Background()))

	stats := d.Stats()
	assert.Equal(t, int64(n/2), stats.Failed)
	assert.Equal(t, int64(n/2), stats.Succeeded)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, n/2, strings.Count(string(data), "Error sending email: send failed\n"))
}

func TestDispatcher_Shutdown(t *testing.T) {
	t.Parallel()

	t.Run("idle", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, dispatch.New().Shutdown(context.Background()))
	})

	t.Run("times out without cancelling running task", func(t *testing.T) {
		t.Parallel()

		d := dispatch.New()
		release := make(chan struct{})
		var taskCtxErr error
		done := make(chan struct{})
		d.Go(context.Background(), "stuck", func(ctx context.Context) error {
			<-release
			taskCtxErr = ctx.Err()
			close(done)
			return nil
		})

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		err := d.Shutdown(ctx)
		require.ErrorIs(t, err, dispatch.ErrShutdownTimeout)
		assert.ErrorIs(t, err, context.DeadlineExceeded)

		close(release)
		<-done
		assert.NoError(t, taskCtxErr)
	})
}
