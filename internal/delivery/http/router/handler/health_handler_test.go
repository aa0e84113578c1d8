package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedGraphStatus int

func (f fixedGraphStatus) NodeCount() int { return int(f) }

func TestHealthHandler_ReportsGraphSize(t *testing.T) {
	h := &HealthHandler{engine: fixedGraphStatus(42)}

	c, rec := newTestContext(http.MethodGet, "/health", "")

	require.NoError(t, h.Check(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ok", data["status"])
	assert.InDelta(t, 42, data["graph_nodes"], 0)
}

func TestHealthHandler_EmptyGraphStillHealthy(t *testing.T) {
	h := &HealthHandler{engine: fixedGraphStatus(0)}

	c, rec := newTestContext(http.MethodGet, "/health", "")

	require.NoError(t, h.Check(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
