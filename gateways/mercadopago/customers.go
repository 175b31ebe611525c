package mercadopago

import (
	"context"
	"net/http"

	"github.com/pagos-go/pagos"
)

type customers struct {
	gateway *Gateway
}

func (c *customers) Create(ctx context.Context, attrs pagos.Options) (*pagos.Response, error) {
	return c.gateway.commit(ctx, http.MethodPost, "v1/customers", customerParams(attrs))
}

func (c *customers) Find(ctx context.Context, id string) (*pagos.Response, error) {
	return c.gateway.commit(ctx, http.MethodGet, "v1/customers/"+id, nil)
}

func (c *customers) Update(ctx context.Context, id string, attrs pagos.Options) (*pagos.Response, error) {
	return c.gateway.commit(ctx, http.MethodPut, "v1/customers/"+id, customerParams(attrs))
}

func customerParams(attrs pagos.Options) map[string]any {
	params := map[string]any{}
	for source, target := range map[string]string{
		"email":       "email",
		"name":        "first_name",
		"last_name":   "last_name",
		"phone":       "phone",
		"description": "description",
	} {
		if attrs.String(source) != "" {
			params[target] = attrs.String(source)
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
	return c.gateway.commit(ctx, http.MethodPost, "v1/customers/"+customer+"/cards", map[string]any{"token": token})
}

func (c *cards) Delete(ctx context.Context, id string, opts pagos.Options) (*pagos.Response, error) {
	customer := opts.String("customer")
	if customer == "" {
		return nil, &pagos.InvalidArgumentError{Msg: "a customer is required to delete a card"}
	}
	return c.gateway.commit(ctx, http.MethodDelete, "v1/customers/"+customer+"/cards/"+id, nil)
}

// events exposes the payment search feed: each element is one payment,
// normalized independently, provider order preserved.
type events struct {
	gateway *Gateway
}

func (e *events) All(ctx context.Context) ([]*pagos.Response, error) {
	return e.gateway.commitList(ctx, "v1/payments/search")
}

func (e *events) Find(ctx context.Context, id string, opts pagos.Options) (*pagos.Response, error) {
	return e.gateway.commit(ctx, http.MethodGet, "v1/payments/"+id, nil)
}
