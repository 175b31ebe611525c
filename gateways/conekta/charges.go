package conekta

import (
	"context"
	"net/http"
	"strconv"

	"github.com/pagos-go/pagos"
)

type charges struct {
	gateway *Gateway
}

// Create charges a tokenized card, or opens a cash (oxxo_cash) or SPEI
// charge when opts["type"] says so; for those the settlement handle comes
// back in Authorization().
func (c *charges) Create(ctx context.Context, amount int64, payment string, opts pagos.Options) (*pagos.Response, error) {
	money, err := c.gateway.Amount(amount)
	if err != nil {
		return nil, err
	}
	cents, err := strconv.ParseInt(money, 10, 64)
	if err != nil {
		return nil, &pagos.InvalidArgumentError{Msg: "amount is not an integer number of cents"}
	}
	params := map[string]any{
		"amount":      cents,
		"currency":    currency(c.gateway, opts),
		"description": opts.String("description"),
	}
	switch opts.String("type") {
	case "oxxo_cash":
		params["payment_method"] = map[string]any{"type": "oxxo_cash"}
	case "spei":
		params["payment_method"] = map[string]any{"type": "spei"}
	default:
		params["card"] = payment
	}
	if opts.String("customer") != "" {
		params["customer_id"] = opts.String("customer")
	}
	return c.gateway.commit(ctx, http.MethodPost, "charges", params)
}

func (c *charges) Complete(ctx context.Context, opts pagos.Options) (*pagos.Response, error) {
	return nil, &pagos.CapabilityError{Driver: driverName, Method: "complete"}
}

func (c *charges) Refund(ctx context.Context, amount int64, reference string, opts pagos.Options) (*pagos.Response, error) {
	money, err := c.gateway.Amount(amount)
	if err != nil {
		return nil, err
	}
	cents, err := strconv.ParseInt(money, 10, 64)
	if err != nil {
		return nil, &pagos.InvalidArgumentError{Msg: "amount is not an integer number of cents"}
	}
	params := map[string]any{"amount": cents}
	return c.gateway.commit(ctx, http.MethodPost, "charges/"+reference+"/refund", params)
}

func currency(g *Gateway, opts pagos.Options) string {
	if c := opts.String("currency"); c != "" {
		return c
	}
	return g.DefaultCurrency()
}
