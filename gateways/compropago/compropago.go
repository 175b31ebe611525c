// Package compropago implements the ComproPago driver for cash payments
// collected at convenience stores. A created charge is never paid inline:
// the reply carries the store barcode in Authorization() and stays pending
// until the shopper pays at the counter.
package compropago

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pagos-go/pagos"
)

const (
	driverName = "compropago"
	apiURL     = "https://api.compropago.com/v1"
)

func init() {
	pagos.Register(driverName, New)
}

type Config struct {
	PrivateKey string `koanf:"private_key" validate:"required"`
	PublicKey  string `koanf:"public_key" validate:"required"`
	Test       bool   `koanf:"test"`
	Endpoint   string `koanf:"endpoint"`
}

type Gateway struct {
	pagos.Core
	cfg Config
}

func New(cfg pagos.Config, deps pagos.Deps) (pagos.Gateway, error) {
	var c Config
	if err := pagos.DecodeConfig(cfg, &c); err != nil {
		return nil, err
	}
	return &Gateway{
		Core: pagos.Core{
			Name:     "ComproPago",
			Currency: "MXN",
			Format:   pagos.MoneyDollars,
			Test:     c.Test,
			HTTP:     deps.HTTPClient,
			Logger:   deps.Logger,
		},
		cfg: c,
	}, nil
}

func (g *Gateway) Charges() pagos.Charges   { return &charges{gateway: g} }
func (g *Gateway) Webhooks() pagos.Webhooks { return &webhooks{gateway: g} }

func (g *Gateway) requestURL() string {
	if g.cfg.Endpoint != "" {
		return g.cfg.Endpoint
	}
	return apiURL
}

func (g *Gateway) commit(ctx context.Context, method, endpoint string, params map[string]any) (*pagos.Response, error) {
	reply, err := g.send(ctx, method, endpoint, params)
	if err != nil {
		return nil, err
	}
	return g.mapResponse(reply), nil
}

func (g *Gateway) send(ctx context.Context, method, endpoint string, params map[string]any) (*pagos.RawReply, error) {
	return g.Commit(ctx, pagos.CommitRequest{
		Method:   method,
		URL:      g.BuildURL(g.requestURL(), endpoint),
		JSON:     params,
		Username: g.cfg.PrivateKey,
	})
}

func (g *Gateway) mapResponse(reply *pagos.RawReply) *pagos.Response {
	body, ok := reply.JSON()
	if !ok {
		return g.InvalidResponse(reply)
	}
	if !reply.OK() || pagos.StringField(body, "type") == "error" {
		return g.mapFailure(body)
	}
	return g.mapSuccess(body)
}

func (g *Gateway) mapSuccess(body map[string]any) *pagos.Response {
	// The store handle lives in short_id; older replies nest it.
	authorization := pagos.StringField(body, "short_id")
	if authorization == "" {
		if instructions := pagos.MapField(body, "instructions"); instructions != nil {
			if details := pagos.MapField(instructions, "details"); details != nil {
				authorization = pagos.StringField(details, "payment_id")
			}
		}
	}
	return pagos.NewResponse(body).Map(pagos.Attributes{
		Success:       true,
		Test:          g.testMode(body),
		Reference:     pagos.StringField(body, "id"),
		Message:       "Transaction approved",
		Authorization: authorization,
		Type:          pagos.StringField(body, "object"),
		Status:        mapStatus(pagos.StringField(body, "status")),
	})
}

func (g *Gateway) mapFailure(body map[string]any) *pagos.Response {
	message := pagos.StringField(body, "message")
	if message == "" {
		message = "Transaction declined"
	}
	code := pagos.ErrCodeProcessing
	if pagos.StringField(body, "code") == "401" || pagos.StringField(body, "type") == "unauthorized" {
		code = pagos.ErrCodeConfig
	}
	return pagos.NewResponse(body).Map(pagos.Attributes{
		Success:   false,
		Test:      g.IsTest(),
		Message:   message,
		Status:    pagos.StatusFailed,
		ErrorCode: code,
	})
}

func (g *Gateway) testMode(body map[string]any) bool {
	if _, ok := body["livemode"]; ok {
		return !pagos.BoolField(body, "livemode")
	}
	return g.IsTest()
}

func mapStatus(status string) pagos.Status {
	switch status {
	case "charge.pending", "pending":
		return pagos.StatusPending
	case "charge.success", "paid":
		return pagos.StatusPaid
	case "charge.declined", "declined":
		return pagos.StatusDeclined
	case "charge.expired", "expired":
		return pagos.StatusExpired
	case "charge.canceled":
		return pagos.StatusCanceled
	default:
		return ""
	}
}

type charges struct {
	gateway *Gateway
}

func (c *charges) Create(ctx context.Context, amount int64, payment string, opts pagos.Options) (*pagos.Response, error) {
	money, err := c.gateway.Amount(amount)
	if err != nil {
		return nil, err
	}
	store := opts.String("store")
	if store == "" {
		store = "OXXO"
	}
	params := map[string]any{
		"order_id":       opts.String("order_id"),
		"order_name":     opts.String("description"),
		"order_price":    money,
		"customer_name":  opts.String("name"),
		"customer_email": opts.String("email"),
		"payment_type":   store,
		"currency":       c.gateway.DefaultCurrency(),
	}
	_ = payment // cash charges have no instrument; the shopper pays in store
	return c.gateway.commit(ctx, http.MethodPost, "charges", params)
}

func (c *charges) Complete(ctx context.Context, opts pagos.Options) (*pagos.Response, error) {
	return nil, &pagos.CapabilityError{Driver: driverName, Method: "complete"}
}

func (c *charges) Refund(ctx context.Context, amount int64, reference string, opts pagos.Options) (*pagos.Response, error) {
	return nil, &pagos.CapabilityError{Driver: driverName, Method: "refund"}
}

type webhooks struct {
	gateway *Gateway
}

func (w *webhooks) All(ctx context.Context) ([]*pagos.Response, error) {
	reply, err := w.gateway.send(ctx, http.MethodGet, "webhooks/stores", nil)
	if err != nil {
		return nil, err
	}
	body, ok := reply.JSON()
	if ok && (!reply.OK() || pagos.StringField(body, "type") == "error") {
		return []*pagos.Response{w.gateway.mapFailure(body)}, nil
	}
	items, ok := webhookList(reply, body)
	if !ok {
		return []*pagos.Response{w.gateway.InvalidResponse(reply)}, nil
	}
	responses := make([]*pagos.Response, 0, len(items))
	for _, item := range items {
		responses = append(responses, w.gateway.mapSuccess(item))
	}
	return responses, nil
}

// webhookList tolerates both reply shapes: a bare JSON array and an object
// wrapping the array under "data".
func webhookList(reply *pagos.RawReply, body map[string]any) ([]map[string]any, bool) {
	if body != nil {
		return pagos.RawList(body, "data"), true
	}
	var items []any
	if err := json.Unmarshal(reply.Body, &items); err != nil {
		return nil, false
	}
	list := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			list = append(list, m)
		}
	}
	return list, true
}

func (w *webhooks) Find(ctx context.Context, id string) (*pagos.Response, error) {
	return w.gateway.commit(ctx, http.MethodGet, "webhooks/stores/"+id, nil)
}

func (w *webhooks) Create(ctx context.Context, params pagos.Options) (*pagos.Response, error) {
	return w.gateway.commit(ctx, http.MethodPost, "webhooks/stores", map[string]any{"url": params.String("url")})
}

func (w *webhooks) Update(ctx context.Context, id string, params pagos.Options) (*pagos.Response, error) {
	return w.gateway.commit(ctx, http.MethodPut, "webhooks/stores/"+id, map[string]any{"url": params.String("url")})
}

func (w *webhooks) Delete(ctx context.Context, id string) (*pagos.Response, error) {
	return w.gateway.commit(ctx, http.MethodDelete, "webhooks/stores/"+id, nil)
}
