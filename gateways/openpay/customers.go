package openpay

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
	for source, target := range map[string]string{
		"name":      "name",
		"last_name": "last_name",
		"email":     "email",
		"phone":     "phone_number",
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
	params := map[string]any{"token_id": token}
	if opts.String("device_session_id") != "" {
		params["device_session_id"] = opts.String("device_session_id")
	}
	endpoint := "cards"
	if customer := opts.String("customer"); customer != "" {
		endpoint = "customers/" + customer + "/cards"
	}
	return c.gateway.commit(ctx, http.MethodPost, endpoint, params)
}

func (c *cards) Delete(ctx context.Context, id string, opts pagos.Options) (*pagos.Response, error) {
	endpoint := "cards/" + id
	if customer := opts.String("customer"); customer != "" {
		endpoint = "customers/" + customer + "/cards/" + id
	}
	return c.gateway.commit(ctx, http.MethodDelete, endpoint, nil)
}

type webhooks struct {
	gateway *Gateway
}

func (w *webhooks) All(ctx context.Context) ([]*pagos.Response, error) {
	return w.gateway.commitList(ctx, "webhooks")
}

func (w *webhooks) Find(ctx context.Context, id string) (*pagos.Response, error) {
	return w.gateway.commit(ctx, http.MethodGet, "webhooks/"+id, nil)
}

func (w *webhooks) Create(ctx context.Context, params pagos.Options) (*pagos.Response, error) {
	return w.gateway.commit(ctx, http.MethodPost, "webhooks", webhookParams(params))
}

func (w *webhooks) Update(ctx context.Context, id string, params pagos.Options) (*pagos.Response, error) {
	return w.gateway.commit(ctx, http.MethodPut, "webhooks/"+id, webhookParams(params))
}

func (w *webhooks) Delete(ctx context.Context, id string) (*pagos.Response, error) {
	return w.gateway.commit(ctx, http.MethodDelete, "webhooks/"+id, nil)
}

func webhookParams(opts pagos.Options) map[string]any {
	params := map[string]any{"url": opts.String("url")}
	if opts.Has("event_types") {
		params["event_types"] = opts["event_types"]
	}
	return params
}
