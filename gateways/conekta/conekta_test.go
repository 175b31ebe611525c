package conekta_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagos-go/pagos"
	_ "github.com/pagos-go/pagos/gateways/conekta"
)

type conektaServer struct {
	*httptest.Server
	lastMethod string
	lastPath   string
	lastAccept string
	lastBody   map[string]any
	status     int
	reply      string
}

func newServer(t *testing.T) *conektaServer {
	t.Helper()
	s := &conektaServer{status: http.StatusOK}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.lastMethod = r.Method
		s.lastPath = r.URL.Path
		s.lastAccept = r.Header.Get("Accept")
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
		"driver":      "conekta",
		"private_key": "key_test_123",
		"test":        true,
		"endpoint":    endpoint,
	})
	require.NoError(t, err)
	return client
}

func charges(t *testing.T, client *pagos.Client) pagos.Charges {
	t.Helper()
	c, err := client.Charges()
	require.NoError(t, err)
	return c
}

func TestCharges_Create_CardCharge(t *testing.T) {
	server := newServer(t)
	server.reply = `{
		"id": "ord_1",
		"object": "charge",
		"payment_status": "paid",
		"livemode": false
	}`
	c := charges(t, newClient(t, server.URL))

	response, err := c.Create(context.Background(), 1000, "tok_test_visa", pagos.Options{})
	require.NoError(t, err)

	assert.Equal(t, "POST", server.lastMethod)
	assert.Equal(t, "/charges", server.lastPath)
	assert.Equal(t, "application/vnd.conekta-v2.0.0+json", server.lastAccept)
	assert.Equal(t, float64(1000), server.lastBody["amount"], "amount travels in cents")
	assert.Equal(t, "MXN", server.lastBody["currency"])
	assert.Equal(t, "tok_test_visa", server.lastBody["card"])

	assert.True(t, response.Success())
	assert.True(t, response.Test())
	assert.Equal(t, "ord_1", response.Reference())
	assert.Equal(t, pagos.StatusPaid, response.Status())
}

// A cash charge surfaces the OXXO barcode through Authorization().
func TestCharges_Create_OxxoCash(t *testing.T) {
	server := newServer(t)
	server.reply = `{
		"id": "ord_2",
		"payment_status": "pending_payment",
		"payment_method": {"type": "oxxo_cash", "reference": "93000262276129"}
	}`
	c := charges(t, newClient(t, server.URL))

	response, err := c.Create(context.Background(), 1000, "", pagos.Options{"type": "oxxo_cash"})
	require.NoError(t, err)

	method, ok := server.lastBody["payment_method"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "oxxo_cash", method["type"])

	assert.True(t, response.Success())
	assert.Equal(t, pagos.StatusPending, response.Status())
	assert.Equal(t, "93000262276129", response.Authorization())
}

func TestCharges_Create_SpeiExposesClabe(t *testing.T) {
	server := newServer(t)
	server.reply = `{
		"id": "ord_3",
		"payment_status": "pending_payment",
		"payment_method": {"type": "spei", "clabe": "646180111805850538"}
	}`
	c := charges(t, newClient(t, server.URL))

	response, err := c.Create(context.Background(), 1000, "", pagos.Options{"type": "spei"})
	require.NoError(t, err)
	assert.Equal(t, "646180111805850538", response.Authorization())
}

func TestCharges_Create_Declined(t *testing.T) {
	server := newServer(t)
	server.status = http.StatusPaymentRequired
	server.reply = `{
		"object": "error",
		"type": "processing_error",
		"details": [{"message": "The card was declined", "code": "conekta.errors.processing.bank.insufficient_funds"}]
	}`
	c := charges(t, newClient(t, server.URL))

	response, err := c.Create(context.Background(), 1000, "tok_test_declined", pagos.Options{})
	require.NoError(t, err)

	assert.False(t, response.Success())
	assert.Equal(t, "The card was declined", response.Message())
	assert.Equal(t, pagos.StatusFailed, response.Status())
	assert.Equal(t, pagos.ErrCodeInsufficientFunds, response.ErrorCode(),
		"the last segment of the dotted code decides")
}

// The body-level error object must win even on HTTP 200.
func TestMapResponse_ErrorObjectOverridesOK(t *testing.T) {
	server := newServer(t)
	server.reply = `{"object": "error", "type": "authentication_error", "message": "Unrecognized key"}`
	c := charges(t, newClient(t, server.URL))

	response, err := c.Create(context.Background(), 1000, "tok", pagos.Options{})
	require.NoError(t, err)

	assert.False(t, response.Success())
	assert.Equal(t, "Unrecognized key", response.Message())
	assert.Equal(t, pagos.ErrCodeConfig, response.ErrorCode())
}

func TestCharges_Complete_Unsupported(t *testing.T) {
	server := newServer(t)
	c := charges(t, newClient(t, server.URL))

	_, err := c.Complete(context.Background(), pagos.Options{})
	capErr, ok := pagos.IsCapabilityError(err)
	require.True(t, ok)
	assert.Equal(t, "complete", capErr.Method)
}

func TestCharges_Refund(t *testing.T) {
	server := newServer(t)
	server.reply = `{"id": "ord_1", "payment_status": "refunded"}`
	c := charges(t, newClient(t, server.URL))

	response, err := c.Refund(context.Background(), 1000, "ord_1", pagos.Options{})
	require.NoError(t, err)

	assert.Equal(t, "/charges/ord_1/refund", server.lastPath)
	assert.Equal(t, float64(1000), server.lastBody["amount"])
	assert.True(t, response.Success())
	assert.Equal(t, pagos.StatusRefunded, response.Status())
}

func TestCharges_Refund_NegativeAmountNeverHitsTheWire(t *testing.T) {
	server := newServer(t)
	server.reply = `{"id": "ord_1"}`
	c := charges(t, newClient(t, server.URL))

	_, err := c.Refund(context.Background(), -500, "ord_1", pagos.Options{})
	require.Error(t, err)
	_, ok := pagos.IsInvalidArgument(err)
	assert.True(t, ok)
	assert.Empty(t, server.lastPath)
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		native string
		want   pagos.Status
	}{
		{"paid", pagos.StatusPaid},
		{"pending_payment", pagos.StatusPending},
		{"declined", pagos.StatusDeclined},
		{"partially_refunded", pagos.StatusPartiallyRefunded},
		{"chargeback", pagos.StatusChargedBack},
		{"expired", pagos.StatusExpired},
		{"something_else", pagos.Status("")},
	}
	server := newServer(t)
	c := charges(t, newClient(t, server.URL))
	for _, tt := range tests {
		server.reply = `{"id": "ord_1", "payment_status": "` + tt.native + `"}`
		response, err := c.Create(context.Background(), 1000, "tok", pagos.Options{})
		require.NoError(t, err)
		assert.Equal(t, tt.want, response.Status(), "native %q", tt.native)
	}
}

func TestRecipients_SupportedFamily(t *testing.T) {
	server := newServer(t)
	server.reply = `{"id": "payee_1"}`
	client := newClient(t, server.URL)

	recipients, err := client.Recipients()
	require.NoError(t, err)

	response, err := recipients.Create(context.Background(), pagos.Options{
		"name":  "Jane Roe",
		"email": "jane@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "/payees", server.lastPath)
	assert.Equal(t, "payee_1", response.Reference())

	// Account info is not part of Conekta's surface.
	_, err = client.Account()
	_, ok := pagos.IsCapabilityError(err)
	assert.True(t, ok)
}
