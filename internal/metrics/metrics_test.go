package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlowOperationsCounter(t *testing.T) {
	before := testutil.ToFloat64(FlowOperations.WithLabelValues("refresh", OutcomeSuccess))
	FlowOperations.WithLabelValues("refresh", OutcomeSuccess).Inc()
	after := testutil.ToFloat64(FlowOperations.WithLabelValues("refresh", OutcomeSuccess))
	assert.Equal(t, before+1, after)
}

func TestHandlerExposesRelayMetrics(t *testing.T) {
	StoreOperations.WithLabelValues("memory", "get", OutcomeMiss).Inc()

	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.True(t, strings.Contains(body, "oauthrelay_store_operations_total"), "missing store metric")
	assert.True(t, strings.Contains(body, `backend="memory"`), "missing backend label")
}
