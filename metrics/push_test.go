package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/t2bot/stream-metadata-backup/common/config"
)

func TestPushDisabled(t *testing.T) {
	assert.NoError(t, Push(config.MetricsConfig{}))
}

func TestPushSendsToGateway(t *testing.T) {
	var path string
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	AssignmentsBackedUp.Add(2)
	require.NoError(t, Push(config.MetricsConfig{PushgatewayUrl: srv.URL, Job: "assignments_test"}))
	assert.Equal(t, "/metrics/job/assignments_test", path)
	assert.True(t, strings.Contains(body, "stream_metadata_assignments_backed_up_total"))
}

func TestPushGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	assert.Error(t, Push(config.MetricsConfig{PushgatewayUrl: srv.URL}))
}
