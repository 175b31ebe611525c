package stripe

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pagos-go/pagos"
)

type cards struct {
	gateway *Gateway
}

// Create attaches a tokenized card to the customer named in opts.
func (c *cards) Create(ctx context.Context, token string, opts pagos.Options) (*pagos.Response, error) {
	customer := opts.String("customer")
	if customer == "" {
		return nil, &pagos.InvalidArgumentError{Msg: "a customer is required to store a card"}
	}
	params := url.Values{}
	params.Set("source", token)
	return c.gateway.commit(ctx, http.MethodPost, "customers/"+customer+"/sources", params)
}

func (c *cards) Delete(ctx context.Context, id string, opts pagos.Options) (*pagos.Response, error) {
	customer := opts.String("customer")
	if customer == "" {
		return nil, &pagos.InvalidArgumentError{Msg: "a customer is required to delete a card"}
	}
	return c.gateway.commit(ctx, http.MethodDelete, "customers/"+customer+"/sources/"+id, nil)
}
