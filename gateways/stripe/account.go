package stripe

import (
	"context"
	"net/http"

	"github.com/pagos-go/pagos"
)

type account struct {
	gateway *Gateway
}

func (a *account) Info(ctx context.Context) (*pagos.Response, error) {
	return a.gateway.commit(ctx, http.MethodGet, "account", nil)
}
