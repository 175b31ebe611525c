package stripe

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

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
	return c.gateway.commit(ctx, http.MethodPost, "customers/"+id, customerParams(attrs))
}

func customerParams(attrs pagos.Options) url.Values {
	params := url.Values{}
	for _, key := range []string{"email", "description", "source", "name", "phone"} {
		if attrs.String(key) != "" {
			params.Set(key, attrs.String(key))
		}
	}
	if metadata, ok := attrs["metadata"].(map[string]any); ok {
		for key, value := range metadata {
			params.Set(fmt.Sprintf("metadata[%s]", key), fmt.Sprint(value))
		}
	}
	return params
}
