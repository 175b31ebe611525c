package stripe

import (
	"context"
	"net/http"
	"net/url"

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
	params := url.Values{}
	params.Set("amount", money)
	params.Set("currency", currency(c.gateway, opts))
	params.Set("source", payment)
	if opts.String("description") != "" {
		params.Set("description", opts.String("description"))
	}
	if opts.String("customer") != "" {
		params.Set("customer", opts.String("customer"))
	}
	if opts.Has("capture") && !opts.Bool("capture") {
		params.Set("capture", "false")
	}
	return c.gateway.commit(ctx, http.MethodPost, "charges", params)
}

// Complete captures a previously authorized charge.
func (c *charges) Complete(ctx context.Context, opts pagos.Options) (*pagos.Response, error) {
	reference := opts.String("reference")
	if reference == "" {
		return nil, &pagos.InvalidArgumentError{Msg: "a charge reference is required to complete"}
	}
	return c.gateway.commit(ctx, http.MethodPost, "charges/"+reference+"/capture", url.Values{})
}

func (c *charges) Refund(ctx context.Context, amount int64, reference string, opts pagos.Options) (*pagos.Response, error) {
	money, err := c.gateway.Amount(amount)
	if err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("charge", reference)
	params.Set("amount", money)
	return c.gateway.commit(ctx, http.MethodPost, "refunds", params)
}

func currency(g *Gateway, opts pagos.Options) string {
	if c := opts.String("currency"); c != "" {
		return c
	}
	return g.DefaultCurrency()
}
