package openpay

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pagos-go/pagos"
)

type charges struct {
	gateway *Gateway
}

func (c *charges) Create(ctx context.Context, amount int64, payment string, opts pagos.Options) (*pagos.Response, error) {
	money, err := c.gateway.Amount(amount)
	if err != nil {
		return nil, err
	}
	currency := opts.String("currency")
	if currency == "" {
		currency = c.gateway.DefaultCurrency()
	}
	params := map[string]any{
		"method":      "card",
		"source_id":   payment,
		"amount":      json.Number(money),
		"currency":    currency,
		"description": opts.String("description"),
	}
	if opts.String("device_session_id") != "" {
		params["device_session_id"] = opts.String("device_session_id")
	}
	if opts.Has("capture") {
		params["capture"] = opts.Bool("capture")
	}
	endpoint := "charges"
	if customer := opts.String("customer"); customer != "" {
		endpoint = "customers/" + customer + "/charges"
	}
	return c.gateway.commit(ctx, http.MethodPost, endpoint, params)
}

// Complete captures a pre-authorized charge.
func (c *charges) Complete(ctx context.Context, opts pagos.Options) (*pagos.Response, error) {
	reference := opts.String("reference")
	if reference == "" {
		return nil, &pagos.InvalidArgumentError{Msg: "a charge reference is required to complete"}
	}
	return c.gateway.commit(ctx, http.MethodPost, "charges/"+reference+"/capture", map[string]any{})
}

func (c *charges) Refund(ctx context.Context, amount int64, reference string, opts pagos.Options) (*pagos.Response, error) {
	money, err := c.gateway.Amount(amount)
	if err != nil {
		return nil, err
	}
	params := map[string]any{
		"amount":      json.Number(money),
		"description": opts.String("description"),
	}
	return c.gateway.commit(ctx, http.MethodPost, "charges/"+reference+"/refund", params)
}
