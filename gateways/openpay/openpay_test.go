package openpay_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagos-go/pagos"
	_ "github.com/pagos-go/pagos/gateways/openpay"
)

type openpayServer struct {
	*httptest.Server
	lastMethod string
	lastPath   string
	lastUser   string
	lastBody   map[string]any
	status     int
	reply      string
}

func newServer(t *testing.T) *openpayServer {
	t.Helper()
	s := &openpayServer{status: http.StatusOK}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.lastMethod = r.Method
		s.lastPath = r.URL.Path
		s.lastUser, _, _ = r.BasicAuth()
		s.lastBody = nil
		json.NewDecoder(r.Body).Decode(&s.lastBody)
		w.WriteHeader(s.status)
		w.Write([]byte(s.reply))
	}))
	t.Cleanup(s.Close)
	return s
}

func newClient(t *testing.T, endpoint string) *pagos.Client {
	t.Helper()
	client, err := pagos.NewFactory().Make(pagos.Config{
		"driver":      "openpay",
		"id":          "m0rch4nt",
		"private_key": "sk_test_123",
		"test":        true,
		"endpoint":    endpoint,
	})
	require.NoError(t, err)
	return client
}

func TestCharges_Create(t *testing.T) {
	server := newServer(t)
	server.reply = `{
		"id": "trx1",
		"transaction_type": "charge",
		"status": "completed",
		"authorization": "801585"
	}`
	client := newClient(t, server.URL)

	charges, err := client.Charges()
	require.NoError(t, err)

	response, err := charges.Create(context.Background(), 1025, "src_123", pagos.Options{
		"description": "Order 42",
	})
	require.NoError(t, err)

	// Endpoints are merchant-scoped and amounts decimal.
	assert.Equal(t, "/m0rch4nt/charges", server.lastPath)
	assert.Equal(t, "sk_test_123", server.lastUser)
	assert.Equal(t, "card", server.lastBody["method"])
	assert.Equal(t, "src_123", server.lastBody["source_id"])
	assert.Equal(t, float64(10.25), server.lastBody["amount"])

	assert.True(t, response.Success())
	assert.Equal(t, "trx1", response.Reference())
	assert.Equal(t, "801585", response.Authorization())
	assert.Equal(t, "charge", response.Type())
	assert.Equal(t, pagos.StatusPaid, response.Status())
}

func TestCharges_Create_CustomerScoped(t *testing.T) {
	server := newServer(t)
	server.reply = `{"id": "trx1", "status": "completed"}`
	client := newClient(t, server.URL)

	charges, err := client.Charges()
	require.NoError(t, err)

	_, err = charges.Create(context.Background(), 1000, "src_123", pagos.Options{"customer": "cus_9"})
	require.NoError(t, err)
	assert.Equal(t, "/m0rch4nt/customers/cus_9/charges", server.lastPath)
}

func TestCharges_Create_Declined(t *testing.T) {
	server := newServer(t)
	server.status = http.StatusPaymentRequired
	server.reply = `{
		"error_code": 3003,
		"description": "The card doesn't have sufficient funds",
		"request_id": "req-1"
	}`
	client := newClient(t, server.URL)

	charges, err := client.Charges()
	require.NoError(t, err)

	response, err := charges.Create(context.Background(), 1000, "src_123", pagos.Options{})
	require.NoError(t, err)

	assert.False(t, response.Success())
	assert.Equal(t, "The card doesn't have sufficient funds", response.Message())
	assert.Equal(t, "req-1", response.Reference())
	assert.Equal(t, pagos.ErrCodeInsufficientFunds, response.ErrorCode())
}

func TestErrorCodeTable(t *testing.T) {
	tests := []struct {
		code string
		want pagos.ErrorCode
	}{
		{"1002", pagos.ErrCodeConfig},
		{"2004", pagos.ErrCodeIncorrectNumber},
		{"2005", pagos.ErrCodeInvalidExpiryDate},
		{"3001", pagos.ErrCodeCardDeclined},
		{"3004", pagos.ErrCodePickUpCard},
		{"3005", pagos.ErrCodeSuspectedFraud},
		{"3010", pagos.ErrCodeCallIssuer},
		{"9999", pagos.ErrCodeCardDeclined},
	}
	server := newServer(t)
	client := newClient(t, server.URL)
	charges, err := client.Charges()
	require.NoError(t, err)

	for _, tt := range tests {
		server.status = http.StatusPaymentRequired
		server.reply = `{"error_code": ` + tt.code + `}`
		response, err := charges.Create(context.Background(), 1000, "src_123", pagos.Options{})
		require.NoError(t, err)
		assert.Equal(t, tt.want, response.ErrorCode(), "code %s", tt.code)
	}
}

func TestCards_DeleteHandlesEmptyReply(t *testing.T) {
	server := newServer(t)
	server.status = http.StatusNoContent
	server.reply = ""
	client := newClient(t, server.URL)

	cards, err := client.Cards()
	require.NoError(t, err)

	response, err := cards.Delete(context.Background(), "card_1", pagos.Options{"customer": "cus_9"})
	require.NoError(t, err)

	assert.Equal(t, "DELETE", server.lastMethod)
	assert.Equal(t, "/m0rch4nt/customers/cus_9/cards/card_1", server.lastPath)
	assert.True(t, response.Success())
}

func TestWebhooks_All_BareArrayReply(t *testing.T) {
	server := newServer(t)
	server.reply = `[
		{"id": "wh_1", "url": "https://example.com/a"},
		{"id": "wh_2", "url": "https://example.com/b"}
	]`
	client := newClient(t, server.URL)

	webhooks, err := client.Webhooks()
	require.NoError(t, err)

	all, err := webhooks.All(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "wh_1", all[0].Reference())
	assert.Equal(t, "wh_2", all[1].Reference())
}

func TestEventsUnsupported(t *testing.T) {
	server := newServer(t)
	client := newClient(t, server.URL)

	_, err := client.Events()
	capErr, ok := pagos.IsCapabilityError(err)
	require.True(t, ok)
	assert.Equal(t, "openpay", capErr.Driver)
}
