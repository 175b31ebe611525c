package paypalplus

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
	returnURL := opts.String("return_url")
	cancelURL := opts.String("cancel_url")
	if returnURL == "" || cancelURL == "" {
		return nil, &pagos.InvalidArgumentError{Msg: "return_url and cancel_url are required"}
	}
	currency := opts.String("currency")
	if currency == "" {
		currency = c.gateway.DefaultCurrency()
	}
	params := map[string]any{
		"intent": "sale",
		"payer":  map[string]any{"payment_method": "paypal"},
		"transactions": []map[string]any{{
			"amount": map[string]any{
				"total":    json.Number(money),
				"currency": currency,
			},
			"description": opts.String("description"),
		}},
		"redirect_urls": map[string]any{
			"return_url": returnURL,
			"cancel_url": cancelURL,
		},
	}
	return c.gateway.commit(ctx, http.MethodPost, "v1/payments/payment", params)
}

// Complete executes an approved payment.
func (c *charges) Complete(ctx context.Context, opts pagos.Options) (*pagos.Response, error) {
	reference := opts.String("reference")
	payerID := opts.String("payer_id")
	if reference == "" || payerID == "" {
		return nil, &pagos.InvalidArgumentError{Msg: "reference and payer_id are required to complete"}
	}
	params := map[string]any{"payer_id": payerID}
	return c.gateway.commit(ctx, http.MethodPost, "v1/payments/payment/"+reference+"/execute", params)
}

// Refund refunds a sale. reference is the sale id, not the payment id.
func (c *charges) Refund(ctx context.Context, amount int64, reference string, opts pagos.Options) (*pagos.Response, error) {
	money, err := c.gateway.Amount(amount)
	if err != nil {
		return nil, err
	}
	currency := opts.String("currency")
	if currency == "" {
		currency = c.gateway.DefaultCurrency()
	}
	params := map[string]any{}
	if !opts.Bool("full") {
		params["amount"] = map[string]any{
			"total":    json.Number(money),
			"currency": currency,
		}
	}
	return c.gateway.commit(ctx, http.MethodPost, "v1/payments/sale/"+reference+"/refund", params)
}
