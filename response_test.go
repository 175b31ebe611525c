package pagos_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagos-go/pagos"
)

func TestResponse_MapAssignsEveryField(t *testing.T) {
	raw := map[string]any{"id": "ch_1", "outcome": "approved"}

	response := pagos.NewResponse(raw).Map(pagos.Attributes{
		Success:       true,
		Redirect:      true,
		Test:          true,
		Reference:     "ch_1",
		Message:       "Transaction approved",
		Authorization: "auth_9",
		Type:          "charge",
		Status:        pagos.StatusPaid,
	})

	assert.True(t, response.Success())
	assert.True(t, response.IsRedirect())
	assert.True(t, response.Test())
	assert.Equal(t, "ch_1", response.Reference())
	assert.Equal(t, "Transaction approved", response.Message())
	assert.Equal(t, "auth_9", response.Authorization())
	assert.Equal(t, "charge", response.Type())
	assert.Equal(t, pagos.StatusPaid, response.Status())
	assert.Empty(t, response.ErrorCode())
}

func TestResponse_ZeroValueBeforeMap(t *testing.T) {
	response := pagos.NewResponse(map[string]any{"id": "ch_1"})

	assert.False(t, response.Success())
	assert.False(t, response.IsRedirect())
	assert.Empty(t, response.Reference())
	assert.Empty(t, response.Status())
	assert.Empty(t, response.ErrorCode())
}

func TestResponse_DataReturnsVerbatimPayload(t *testing.T) {
	raw := map[string]any{
		"id":     "ch_1",
		"amount": float64(1000),
		"card":   map[string]any{"last4": "4242"},
	}

	response := pagos.NewResponse(raw).Map(pagos.Attributes{Success: true})

	assert.Equal(t, raw, response.Data())
}

func TestResponse_MapNeverTouchesRawPayload(t *testing.T) {
	raw := map[string]any{"status": "native_status", "message": "native message"}

	response := pagos.NewResponse(raw).Map(pagos.Attributes{
		Success: false,
		Message: "Transaction declined",
		Status:  pagos.StatusDeclined,
	})

	// Normalized fields come from the mapping, the payload stays native.
	assert.Equal(t, "native_status", response.Data()["status"])
	assert.Equal(t, "native message", response.Data()["message"])
	assert.Equal(t, pagos.StatusDeclined, response.Status())
	assert.Equal(t, "Transaction declined", response.Message())
}

func TestResponse_RawLookup(t *testing.T) {
	response := pagos.NewResponse(map[string]any{"balance_transaction": "txn_1", "paid": nil})

	value, err := response.Raw("balance_transaction")
	require.NoError(t, err)
	assert.Equal(t, "txn_1", value)

	// A key present with a nil value is still present.
	value, err = response.Raw("paid")
	require.NoError(t, err)
	assert.Nil(t, value)

	_, err = response.Raw("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"missing"`)
}

func TestResponse_MapReturnsSameInstance(t *testing.T) {
	response := pagos.NewResponse(map[string]any{})
	assert.Same(t, response, response.Map(pagos.Attributes{Success: true}))
}
