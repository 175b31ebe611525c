// Package stripe implements the Stripe driver: form-encoded requests,
// JSON replies, bearer auth with the secret key. Test mode is selected by
// the key itself, so there is a single API host.
package stripe

import (
	"context"
	"net/url"

	"github.com/pagos-go/pagos"
)

const (
	driverName = "stripe"
	apiURL     = "https://api.stripe.com/v1"
)

func init() {
	pagos.Register(driverName, New)
}

type Config struct {
	PrivateKey string `koanf:"private_key" validate:"required"`
	Test       bool   `koanf:"test"`
	// Endpoint overrides the API base URL, for mocks and relays.
	Endpoint string `koanf:"endpoint"`
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
			Name:     "Stripe",
			Currency: "USD",
			Format:   pagos.MoneyCents,
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
func (g *Gateway) Events() pagos.Events       { return &events{gateway: g} }
func (g *Gateway) Webhooks() pagos.Webhooks   { return &webhooks{gateway: g} }
func (g *Gateway) Account() pagos.Account     { return &account{gateway: g} }

func (g *Gateway) requestURL() string {
	if g.cfg.Endpoint != "" {
		return g.cfg.Endpoint
	}
	return apiURL
}

func (g *Gateway) commit(ctx context.Context, method, endpoint string, params url.Values) (*pagos.Response, error) {
	reply, err := g.Commit(ctx, pagos.CommitRequest{
		Method: method,
		URL:    g.BuildURL(g.requestURL(), endpoint),
		Form:   params,
		Bearer: g.cfg.PrivateKey,
	})
	if err != nil {
		return nil, err
	}
	return g.mapResponse(reply), nil
}

func (g *Gateway) commitList(ctx context.Context, endpoint string) ([]*pagos.Response, error) {
	reply, err := g.Commit(ctx, pagos.CommitRequest{
		Method: "GET",
		URL:    g.BuildURL(g.requestURL(), endpoint),
		Bearer: g.cfg.PrivateKey,
	})
	if err != nil {
		return nil, err
	}
	body, ok := reply.JSON()
	if !ok {
		return []*pagos.Response{g.InvalidResponse(reply)}, nil
	}
	if !reply.OK() || body["error"] != nil {
		return []*pagos.Response{g.mapFailure(body)}, nil
	}
	items := pagos.RawList(body, "data")
	responses := make([]*pagos.Response, 0, len(items))
	for _, item := range items {
		responses = append(responses, g.mapSuccess(item))
	}
	return responses, nil
}

// mapResponse follows the shared decision table: transport outcome first,
// then the body-level error object, which overrides an HTTP 200.
func (g *Gateway) mapResponse(reply *pagos.RawReply) *pagos.Response {
	body, ok := reply.JSON()
	if !ok {
		return g.InvalidResponse(reply)
	}
	if !reply.OK() || body["error"] != nil {
		return g.mapFailure(body)
	}
	return g.mapSuccess(body)
}

func (g *Gateway) mapSuccess(body map[string]any) *pagos.Response {
	authorization := pagos.StringField(body, "balance_transaction")
	if authorization == "" {
		authorization = pagos.StringField(body, "id")
	}
	return pagos.NewResponse(body).Map(pagos.Attributes{
		Success:       true,
		Test:          g.testMode(body),
		Reference:     pagos.StringField(body, "id"),
		Message:       "Transaction approved",
		Authorization: authorization,
		Type:          pagos.StringField(body, "type"),
		Status:        mapStatus(body),
	})
}

func (g *Gateway) mapFailure(body map[string]any) *pagos.Response {
	errObj := pagos.MapField(body, "error")
	message := pagos.StringField(errObj, "message")
	if message == "" {
		message = "Transaction declined"
	}
	return pagos.NewResponse(body).Map(pagos.Attributes{
		Success:   false,
		Test:      g.testMode(body),
		Reference: pagos.StringField(errObj, "charge"),
		Message:   message,
		Status:    pagos.StatusFailed,
		ErrorCode: mapErrorCode(errObj),
	})
}

func (g *Gateway) testMode(body map[string]any) bool {
	if _, ok := body["livemode"]; ok {
		return !pagos.BoolField(body, "livemode")
	}
	return g.IsTest()
}

func mapStatus(body map[string]any) pagos.Status {
	if pagos.BoolField(body, "refunded") {
		return pagos.StatusRefunded
	}
	switch pagos.StringField(body, "status") {
	case "succeeded":
		return pagos.StatusPaid
	case "pending":
		return pagos.StatusPending
	case "failed":
		return pagos.StatusFailed
	case "canceled":
		return pagos.StatusCanceled
	case "active":
		return pagos.StatusActive
	case "trialing":
		return pagos.StatusTrial
	default:
		return ""
	}
}

var errorCodes = map[string]pagos.ErrorCode{
	"incorrect_number":     pagos.ErrCodeIncorrectNumber,
	"invalid_number":       pagos.ErrCodeIncorrectNumber,
	"invalid_expiry_month": pagos.ErrCodeInvalidExpiryDate,
	"invalid_expiry_year":  pagos.ErrCodeInvalidExpiryDate,
	"expired_card":         pagos.ErrCodeExpiredCard,
	"invalid_cvc":          pagos.ErrCodeInvalidCVC,
	"incorrect_cvc":        pagos.ErrCodeIncorrectCVC,
	"incorrect_zip":        pagos.ErrCodeIncorrectZip,
	"incorrect_address":    pagos.ErrCodeIncorrectAddress,
	"card_declined":        pagos.ErrCodeCardDeclined,
	"processing_error":     pagos.ErrCodeProcessing,
	"amount_too_small":     pagos.ErrCodeInvalidAmount,
	"amount_too_large":     pagos.ErrCodeInvalidAmount,
	"missing":              pagos.ErrCodeConfig,
}

var declineCodes = map[string]pagos.ErrorCode{
	"insufficient_funds": pagos.ErrCodeInsufficientFunds,
	"fraudulent":         pagos.ErrCodeSuspectedFraud,
	"stolen_card":        pagos.ErrCodePickUpCard,
	"lost_card":          pagos.ErrCodePickUpCard,
	"pickup_card":        pagos.ErrCodePickUpCard,
	"call_issuer":        pagos.ErrCodeCallIssuer,
	"expired_card":       pagos.ErrCodeExpiredCard,
	"incorrect_pin":      pagos.ErrCodeIncorrectPIN,
}

// mapErrorCode collapses Stripe's error object onto the closed vocabulary.
// The decline_code refines a generic card_declined; unmapped card errors
// stay card_declined, and everything non-card lands in the config or
// processing buckets. Lossy but total.
func mapErrorCode(errObj map[string]any) pagos.ErrorCode {
	if decline, ok := declineCodes[pagos.StringField(errObj, "decline_code")]; ok {
		return decline
	}
	if code, ok := errorCodes[pagos.StringField(errObj, "code")]; ok {
		return code
	}
	switch pagos.StringField(errObj, "type") {
	case "card_error":
		return pagos.ErrCodeCardDeclined
	case "invalid_request_error", "authentication_error":
		return pagos.ErrCodeConfig
	default:
		return pagos.ErrCodeProcessing
	}
}
