package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.ObserveAuth(AuthAnonymous)
	m.ObserveAuth(AuthAnonymous)
	m.ObserveAuth(AuthRejected)
	m.ObserveGraphQLError("UNAUTHENTICATED")
	m.ObserveGraphQLError("")
	m.ObserveHTTP(http.MethodPost, "/graphql", http.StatusOK, 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.authOutcomes.WithLabelValues(AuthAnonymous)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.authOutcomes.WithLabelValues(AuthRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.graphqlErrors.WithLabelValues("UNAUTHENTICATED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.graphqlErrors.WithLabelValues("GRAPHQL_VALIDATION_FAILED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("POST", "/graphql", "200")))
}

func TestHandler_Exposition(t *testing.T) {
	m := New()
	m.ObserveAuth(AuthAuthenticated)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), `gqlauth_auth_outcomes_total{outcome="authenticated"} 1`))
	assert.Contains(t, string(body), "go_goroutines")
}
