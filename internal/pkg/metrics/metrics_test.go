package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareAndHandler(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/api/v1/stores/:storeId", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})
	app.Get("/metrics", Handler())

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/v1/stores/:storeId", "404"))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/stores/12", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/v1/stores/:storeId", "404"))
	assert.Equal(t, before+1, after)

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "store_locator_http_requests_total")
}

func TestObserveStoreQuery(t *testing.T) {
	ObserveStoreQuery("count", time.Now().Add(-10*time.Millisecond))

	assert.GreaterOrEqual(t, testutil.CollectAndCount(storeQueryDuration), 1)
}
