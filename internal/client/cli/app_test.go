package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gqlauth/internal/client/client"
	"github.com/dmitrijs2005/gqlauth/internal/client/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLoggedIn(t *testing.T) {
	app := &App{}
	if app.isLoggedIn() {
		t.Fatalf("expected isLoggedIn() == false without a token")
	}
	app.token = "tok"
	if !app.isLoggedIn() {
		t.Fatalf("expected isLoggedIn() == true with a token")
	}
}

func TestGetStatus(t *testing.T) {
	a, _ := newTestApp(&fakeAPI{})
	assert.Equal(t, "", a.getStatus())

	a.setMode(ModeOnline)
	assert.Equal(t, "(online)", a.getStatus())

	a.userName = "alice"
	assert.Equal(t, "(alice online)", a.getStatus())
}

func TestStartOnlineStatusWatcher(t *testing.T) {
	f := &fakeAPI{pingErr: client.ErrUnavailable}
	a, _ := newTestApp(f)
	a.setMode(ModeOnline)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.StartOnlineStatusWatcher(ctx, 10*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return a.mode() == ModeOffline }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestRun_ExitsOnQuit(t *testing.T) {
	capturePrints(t)

	a, out := newTestApp(&fakeAPI{})
	a.config = &config.Config{OnlineCheckInterval: time.Hour}
	a.reader = rdr("ping\nquit\n")

	a.Run(context.Background())

	assert.Equal(t, ModeOnline, a.mode())
	assert.True(t, strings.Contains(out.String(), "pong"))
}

func TestNewApp(t *testing.T) {
	c := &config.Config{}
	c.LoadDefaults()

	a, err := NewApp(c)
	require.NoError(t, err)
	assert.NotNil(t, a.api)
	assert.False(t, a.isLoggedIn())
}
