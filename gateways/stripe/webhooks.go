package stripe

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pagos-go/pagos"
)

type webhooks struct {
	gateway *Gateway
}

func (w *webhooks) All(ctx context.Context) ([]*pagos.Response, error) {
	return w.gateway.commitList(ctx, "webhook_endpoints")
}

func (w *webhooks) Find(ctx context.Context, id string) (*pagos.Response, error) {
	return w.gateway.commit(ctx, http.MethodGet, "webhook_endpoints/"+id, nil)
}

func (w *webhooks) Create(ctx context.Context, params pagos.Options) (*pagos.Response, error) {
	return w.gateway.commit(ctx, http.MethodPost, "webhook_endpoints", webhookParams(params))
}

func (w *webhooks) Update(ctx context.Context, id string, params pagos.Options) (*pagos.Response, error) {
	return w.gateway.commit(ctx, http.MethodPost, "webhook_endpoints/"+id, webhookParams(params))
}

func (w *webhooks) Delete(ctx context.Context, id string) (*pagos.Response, error) {
	return w.gateway.commit(ctx, http.MethodDelete, "webhook_endpoints/"+id, nil)
}

func webhookParams(opts pagos.Options) url.Values {
	params := url.Values{}
	if opts.String("url") != "" {
		params.Set("url", opts.String("url"))
	}
	events, ok := opts["enabled_events"].([]string)
	if !ok {
		events = []string{"*"}
	}
	for i, event := range events {
		params.Set(fmt.Sprintf("enabled_events[%d]", i), event)
	}
	return params
}
