package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	// Register should be safe to call multiple times
	Register()
	Register()

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET /services", http.MethodGet, "200"))
	ObserveHTTP("GET /services", http.MethodGet, http.StatusOK, 12*time.Millisecond)
	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET /services", http.MethodGet, "200"))
	assert.Equal(t, before+1, after)

	IncStorageError("services.list")
	assert.GreaterOrEqual(t, testutil.ToFloat64(storageErrors.WithLabelValues("services.list")), 1.0)

	IncEvent("service_created")
	assert.GreaterOrEqual(t, testutil.ToFloat64(domainEvents.WithLabelValues("service_created")), 1.0)
}
