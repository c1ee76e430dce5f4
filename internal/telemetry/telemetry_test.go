package telemetry

import (
	"context"
	"io"
	"net"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDisabled(t *testing.T) {
	tel, shutdown, err := New(Config{Enabled: false}, nil)
	require.NoError(t, err)
	assert.NotNil(t, tel.Meter)
	assert.NotNil(t, tel.Tracer)
	assert.Nil(t, tel.MeterProvider, "no SDK when disabled")
	assert.Empty(t, tel.MetricsAddr)
	assert.NoError(t, shutdown(context.Background()))
}

func TestNewServesMetrics(t *testing.T) {
	tel, shutdown, err := New(Config{Enabled: true, ServiceName: "pagesim-test", PrometheusPort: 0}, nil)
	require.NoError(t, err)
	defer func() { assert.NoError(t, shutdown(context.Background())) }()

	counter, err := tel.Meter.Int64Counter("pagesim.test_accesses")
	require.NoError(t, err)
	counter.Add(context.Background(), 3)

	_, span := tel.Tracer.Start(context.Background(), "access")
	assert.True(t, span.SpanContext().IsValid(), "sdk tracer records spans")
	span.End()

	_, port, err := net.SplitHostPort(tel.MetricsAddr)
	require.NoError(t, err)
	resp, err := http.Get("http://" + net.JoinHostPort("127.0.0.1", port) + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "pagesim_test_accesses")
}

func TestNewPortInUse(t *testing.T) {
	busy, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer busy.Close()
	_, port, err := net.SplitHostPort(busy.Addr().String())
	require.NoError(t, err)
	portNum, err := strconv.Atoi(port)
	require.NoError(t, err)

	tel, shutdown, err := New(Config{Enabled: true, ServiceName: "pagesim-test", PrometheusPort: portNum}, nil)
	require.Error(t, err)
	assert.Nil(t, tel)
	assert.Nil(t, shutdown)
	assert.Contains(t, err.Error(), "failed to listen for metrics")
}
