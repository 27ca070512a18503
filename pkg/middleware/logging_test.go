package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetgrid/fleet-sdk/pkg/middleware"
)

func findEntry(t *testing.T, entries []*logrus.Entry, message string) *logrus.Entry {
	t.Helper()
	for _, e := range entries {
		if e.Message == message {
			return e
		}
	}
	t.Fatalf("no %q log entry", message)
	return &logrus.Entry{}
}

func TestWithLogger_LogsCapturedRequestParams(t *testing.T) {
	logger, hook := test.NewNullLogger()

	handler := middleware.RequestParams()(
		middleware.WithLogger(logger)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			})))

	r := httptest.NewRequest("GET", "/fleet/vehicles", nil)
	r.Header.Set("User-Agent", "fleetctl/1.0")
	handler.ServeHTTP(httptest.NewRecorder(), r)

	started := findEntry(t, hook.AllEntries(), "request started")
	assert.Equal(t, r.RemoteAddr, started.Data["ip"])
	assert.Equal(t, "fleetctl/1.0", started.Data["user-agent"])

	completed := findEntry(t, hook.AllEntries(), "request completed")
	assert.Equal(t, false, completed.Data["authenticated"])
	assert.Equal(t, http.StatusNoContent, completed.Data["status-code"])
}

func TestWithLogger_ReportsTokenOutcomeOnCompletion(t *testing.T) {
	logger, hook := test.NewNullLogger()
	u := operator()

	handler := middleware.RequestParams()(
		middleware.WithLogger(logger)(
			middleware.Authorize(staticAuthenticator{user: u})(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))))

	r := httptest.NewRequest("GET", "/fleet/vehicles", nil)
	r.Header.Set("Authorization", "Bearer good-token")
	handler.ServeHTTP(httptest.NewRecorder(), r)

	completed := findEntry(t, hook.AllEntries(), "request completed")
	require.Equal(t, true, completed.Data["authenticated"])
}
