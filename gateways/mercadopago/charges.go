package mercadopago

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
	params := map[string]any{
		"transaction_amount": json.Number(money),
		"token":              payment,
		"description":        opts.String("description"),
		"installments":       1,
		"payer": map[string]any{
			"email": opts.String("email"),
		},
	}
	if opts.Has("installments") {
		params["installments"] = opts["installments"]
	}
	if opts.String("payment_method_id") != "" {
		params["payment_method_id"] = opts.String("payment_method_id")
	}
	if opts.Has("capture") {
		params["capture"] = opts.Bool("capture")
	}
	return c.gateway.commit(ctx, http.MethodPost, "v1/payments", params)
}

// Complete captures a previously authorized payment.
func (c *charges) Complete(ctx context.Context, opts pagos.Options) (*pagos.Response, error) {
	reference := opts.String("reference")
	if reference == "" {
		return nil, &pagos.InvalidArgumentError{Msg: "a payment reference is required to complete"}
	}
	return c.gateway.commit(ctx, http.MethodPut, "v1/payments/"+reference, map[string]any{"capture": true})
}

func (c *charges) Refund(ctx context.Context, amount int64, reference string, opts pagos.Options) (*pagos.Response, error) {
	money, err := c.gateway.Amount(amount)
	if err != nil {
		return nil, err
	}
	params := map[string]any{}
	if !opts.Bool("full") {
		params["amount"] = json.Number(money)
	}
	return c.gateway.commit(ctx, http.MethodPost, "v1/payments/"+reference+"/refunds", params)
}
