package logtail

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyra/evlog/internal/logging"
)

func TestTailFollowsAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "access.xml")
	require.NoError(t, os.WriteFile(path, []byte("<log>\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := make(chan string, 10)
	done := make(chan error, 1)
	go func() { done <- New(path, logging.NewLogger(io.Discard, "info", false)).Tail(ctx, out) }()

	next := func() string {
		select {
		case line := <-out:
			return line
		case <-time.After(10 * time.Second):
			t.Fatal("timed out waiting for line")
		}
		return ""
	}

	assert.Equal(t, "<log>\n", next())

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("</log>\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	assert.Equal(t, "</log>\n", next())

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(10 * time.Second):
		t.Fatal("tail did not stop")
	}
}

func TestTailMissingFile(t *testing.T) {
	out := make(chan string)
	err := New(filepath.Join(t.TempDir(), "missing.xml"), logging.NewLogger(io.Discard, "info", false)).Tail(context.Background(), out)
	assert.Error(t, err)
}
