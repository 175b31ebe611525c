// Package openpay implements the OpenPay driver: merchant-scoped JSON REST,
// basic auth with the private key, decimal (major-unit) amounts. OpenPay
// reports failures with a numeric error_code in the body.
package openpay

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pagos-go/pagos"
)

const (
	driverName = "openpay"
	liveURL    = "https://api.openpay.mx/v1"
	testURL    = "https://sandbox-api.openpay.mx/v1"
)

func init() {
	pagos.Register(driverName, New)
}

type Config struct {
	ID         string `koanf:"id" validate:"required"` // merchant id
	PrivateKey string `koanf:"private_key" validate:"required"`
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
			Name:     "OpenPay",
			Currency: "MXN",
			Format:   pagos.MoneyDollars,
			Test:     c.Test,
			HTTP:     deps.HTTPClient,
			Logger:   deps.Logger,
		},
		cfg: c,
	}, nil
}

func (g *Gateway) Charges() pagos.Charges     { return &charges{gateway: g} }
func (g *Gateway) Customers() pagos.Customers { return &customers{gateway: g} }
func (g *Gateway) Cards() pagos.Cards         { return &cards{gateway: g} }
func (g *Gateway) Webhooks() pagos.Webhooks   { return &webhooks{gateway: g} }

func (g *Gateway) requestURL() string {
	base := liveURL
	if g.Test {
		base = testURL
	}
	if g.cfg.Endpoint != "" {
		base = g.cfg.Endpoint
	}
	return g.BuildURL(base, g.cfg.ID)
}

func (g *Gateway) commit(ctx context.Context, method, endpoint string, params map[string]any) (*pagos.Response, error) {
	reply, err := g.Commit(ctx, pagos.CommitRequest{
		Method:   method,
		URL:      g.BuildURL(g.requestURL(), endpoint),
		JSON:     params,
		Username: g.cfg.PrivateKey,
	})
	if err != nil {
		return nil, err
	}
	return g.mapResponse(reply), nil
}

func (g *Gateway) commitList(ctx context.Context, endpoint string) ([]*pagos.Response, error) {
	reply, err := g.Commit(ctx, pagos.CommitRequest{
		Method:   http.MethodGet,
		URL:      g.BuildURL(g.requestURL(), endpoint),
		Username: g.cfg.PrivateKey,
	})
	if err != nil {
		return nil, err
	}
	// OpenPay list replies are bare JSON arrays.
	items, ok := listBody(reply)
	if !ok {
		return []*pagos.Response{g.mapResponse(reply)}, nil
	}
	responses := make([]*pagos.Response, 0, len(items))
	for _, item := range items {
		responses = append(responses, g.mapSuccess(item))
	}
	return responses, nil
}

func listBody(reply *pagos.RawReply) ([]map[string]any, bool) {
	if !reply.OK() {
		return nil, false
	}
	if body, ok := reply.JSON(); ok {
		return pagos.RawList(body, "data"), true
	}
	// Not an object: decode as a top-level array.
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

func (g *Gateway) mapResponse(reply *pagos.RawReply) *pagos.Response {
	body, ok := reply.JSON()
	if !ok {
		if reply.OK() && len(reply.Body) == 0 {
			// Deletes answer 204 with no body.
			return pagos.NewResponse(map[string]any{}).Map(pagos.Attributes{
				Success: true,
				Test:    g.IsTest(),
				Message: "Transaction approved",
			})
		}
		return g.InvalidResponse(reply)
	}
	if !reply.OK() || body["error_code"] != nil {
		return g.mapFailure(body)
	}
	return g.mapSuccess(body)
}

func (g *Gateway) mapSuccess(body map[string]any) *pagos.Response {
	authorization := pagos.StringField(body, "authorization")
	if authorization == "" {
		authorization = pagos.StringField(body, "id")
	}
	return pagos.NewResponse(body).Map(pagos.Attributes{
		Success:       true,
		Test:          g.IsTest(),
		Reference:     pagos.StringField(body, "id"),
		Message:       "Transaction approved",
		Authorization: authorization,
		Type:          pagos.StringField(body, "transaction_type"),
		Status:        mapStatus(pagos.StringField(body, "status")),
	})
}

func (g *Gateway) mapFailure(body map[string]any) *pagos.Response {
	message := pagos.StringField(body, "description")
	if message == "" {
		message = "Transaction declined"
	}
	return pagos.NewResponse(body).Map(pagos.Attributes{
		Success:   false,
		Test:      g.IsTest(),
		Reference: pagos.StringField(body, "request_id"),
		Message:   message,
		Status:    pagos.StatusFailed,
		ErrorCode: mapErrorCode(pagos.StringField(body, "error_code")),
	})
}

func mapStatus(status string) pagos.Status {
	switch status {
	case "completed":
		return pagos.StatusPaid
	case "in_progress", "charge_pending":
		return pagos.StatusPending
	case "refunded":
		return pagos.StatusRefunded
	case "cancelled":
		return pagos.StatusCanceled
	case "failed":
		return pagos.StatusFailed
	case "expired":
		return pagos.StatusExpired
	default:
		return ""
	}
}

var errorCodes = map[string]pagos.ErrorCode{
	"1000": pagos.ErrCodeProcessing, // internal server error
	"1001": pagos.ErrCodeProcessing, // malformed request
	"1002": pagos.ErrCodeConfig,     // unauthorized
	"1003": pagos.ErrCodeInvalidAmount,
	"2004": pagos.ErrCodeIncorrectNumber, // check digit failed
	"2005": pagos.ErrCodeInvalidExpiryDate,
	"2006": pagos.ErrCodeInvalidCVC,
	"3001": pagos.ErrCodeCardDeclined,
	"3002": pagos.ErrCodeExpiredCard,
	"3003": pagos.ErrCodeInsufficientFunds,
	"3004": pagos.ErrCodePickUpCard, // stolen card
	"3005": pagos.ErrCodeSuspectedFraud,
	"3009": pagos.ErrCodePickUpCard, // lost card
	"3010": pagos.ErrCodeCallIssuer, // bank restriction
	"3011": pagos.ErrCodeCallIssuer, // bank retained card
}

func mapErrorCode(code string) pagos.ErrorCode {
	if mapped, ok := errorCodes[code]; ok {
		return mapped
	}
	return pagos.ErrCodeCardDeclined
}
