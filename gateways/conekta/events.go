package conekta

import (
	"context"
	"net/http"

	"github.com/pagos-go/pagos"
)

type events struct {
	gateway *Gateway
}

func (e *events) All(ctx context.Context) ([]*pagos.Response, error) {
	return e.gateway.commitList(ctx, "events")
}

func (e *events) Find(ctx context.Context, id string, opts pagos.Options) (*pagos.Response, error) {
	return e.gateway.commit(ctx, http.MethodGet, "events/"+id, nil)
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
	if opts.Has("events") {
		params["events"] = opts["events"]
	}
	return params
}
