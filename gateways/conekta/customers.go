package conekta

import (
	"context"
	"net/http"

	"github.com/pagos-go/pagos"
)

type customers struct {
	gateway *Gateway
}

func (c *customers) Create(ctx context.Context, attrs pagos.Options) (*pagos.Response, error) {
	return c.gateway.commit(ctx, http.MethodPost, "customers", customerParams(attrs))
}

func (c *customers) Find(ctx context.Context, id string) (*pagos.Response, error) {
	return c.gateway.commit(ctx, http.MethodGet, "customers/"+id, nil)
}

func (c *customers) Update(ctx context.Context, id string, attrs pagos.Options) (*pagos.Response, error) {
	return c.gateway.commit(ctx, http.MethodPut, "customers/"+id, customerParams(attrs))
}

func customerParams(attrs pagos.Options) map[string]any {
	params := map[string]any{}
	for _, key := range []string{"name", "email", "phone"} {
		if attrs.String(key) != "" {
			params[key] = attrs.String(key)
		}
	}
	if attrs.String("card") != "" {
		params["payment_sources"] = []map[string]any{
			{"type": "card", "token_id": attrs.String("card")},
		}
	}
	return params
}

type cards struct {
	gateway *Gateway
}

func (c *cards) Create(ctx context.Context, token string, opts pagos.Options) (*pagos.Response, error) {
	customer := opts.String("customer")
	if customer == "" {
		return nil, &pagos.InvalidArgumentError{Msg: "a customer is required to store a card"}
	}
	params := map[string]any{"type": "card", "token_id": token}
	return c.gateway.commit(ctx, http.MethodPost, "customers/"+customer+"/payment_sources", params)
}

func (c *cards) Delete(ctx context.Context, id string, opts pagos.Options) (*pagos.Response, error) {
	customer := opts.String("customer")
	if customer == "" {
		return nil, &pagos.InvalidArgumentError{Msg: "a customer is required to delete a card"}
	}
	return c.gateway.commit(ctx, http.MethodDelete, "customers/"+customer+"/payment_sources/"+id, nil)
}
