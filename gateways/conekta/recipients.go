package conekta

import (
	"context"
	"net/http"

	"github.com/pagos-go/pagos"
)

// recipients manages Conekta payees (payout destinations).
type recipients struct {
	gateway *Gateway
}

func (r *recipients) Create(ctx context.Context, attrs pagos.Options) (*pagos.Response, error) {
	return r.gateway.commit(ctx, http.MethodPost, "payees", payeeParams(attrs))
}

func (r *recipients) Find(ctx context.Context, id string) (*pagos.Response, error) {
	return r.gateway.commit(ctx, http.MethodGet, "payees/"+id, nil)
}

func (r *recipients) Update(ctx context.Context, id string, attrs pagos.Options) (*pagos.Response, error) {
	return r.gateway.commit(ctx, http.MethodPut, "payees/"+id, payeeParams(attrs))
}

func (r *recipients) Delete(ctx context.Context, id string) (*pagos.Response, error) {
	return r.gateway.commit(ctx, http.MethodDelete, "payees/"+id, nil)
}

func payeeParams(attrs pagos.Options) map[string]any {
	params := map[string]any{}
	for _, key := range []string{"name", "email", "phone"} {
		if attrs.String(key) != "" {
			params[key] = attrs.String(key)
		}
	}
	if attrs.String("clabe") != "" {
		params["payout_methods"] = []map[string]any{
			{"type": "payout_bank", "clabe": attrs.String("clabe")},
		}
	}
	return params
}
