package odoo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simpledock/config"
	otelmocks "simpledock/infras/otel/mocks"
)

func newTestServer(t *testing.T, searchResult string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")

		switch req.Params["service"] {
		case "common":
			_, _ = w.Write([]byte(`{"jsonrpc":"2.0","result":7}`))
		case "object":
			_, _ = w.Write([]byte(`{"jsonrpc":"2.0","result":` + searchResult + `}`))
		default:
			t.Fatalf("unexpected service %v", req.Params["service"])
		}
	}))
}

func newTestClient(serverURL string) Odoo {
	cfg := &config.Config{}
	cfg.External.Odoo.URL = serverURL
	cfg.External.Odoo.Database = "simpledock"
	cfg.External.Odoo.Username = "api"
	cfg.External.Odoo.Password = "secret"

	return New(cfg, otelmocks.NewOtel())
}

func TestValidatePurchaseOrder(t *testing.T) {
	t.Run("confirmed order found", func(t *testing.T) {
		server := newTestServer(t, `[{"id":42,"partner_id":[3,"Acme Logistics"]}]`)
		defer server.Close()

		order, err := newTestClient(server.URL).ValidatePurchaseOrder(context.Background(), "PO-1001")

		require.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, 42, order.ID)
		assert.Equal(t, "Acme Logistics", order.Partner)
	})

	t.Run("order without partner falls back to placeholder", func(t *testing.T) {
		server := newTestServer(t, `[{"id":9,"partner_id":false}]`)
		defer server.Close()

		order, err := newTestClient(server.URL).ValidatePurchaseOrder(context.Background(), "PO-2002")

		require.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, "Unknown Supplier", order.Partner)
	})

	t.Run("unknown order returns nil", func(t *testing.T) {
		server := newTestServer(t, `[]`)
		defer server.Close()

		order, err := newTestClient(server.URL).ValidatePurchaseOrder(context.Background(), "PO-MISSING")

		require.NoError(t, err)
		assert.Nil(t, order)
	})
}
