package stripe

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
