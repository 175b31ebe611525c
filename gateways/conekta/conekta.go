// Package conekta implements the Conekta driver: JSON requests against
// api.conekta.io, basic auth with the private key, versioned Accept header.
// Conekta signals business failure with an error object in an HTTP 200 as
// well as with 4xx replies, so the body marker always wins.
package conekta

import (
	"context"
	"net/http"
	"strings"

	"github.com/pagos-go/pagos"
)

const (
	driverName = "conekta"
	apiURL     = "https://api.conekta.io"
	apiVersion = "application/vnd.conekta-v2.0.0+json"
)

func init() {
	pagos.Register(driverName, New)
}

type Config struct {
	PrivateKey string `koanf:"private_key" validate:"required"`
	Test       bool   `koanf:"test"`
	Endpoint   string `koanf:"endpoint"`
	Locale     string `koanf:"locale"`
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
	if c.Locale == "" {
		c.Locale = "es"
	}
	return &Gateway{
		Core: pagos.Core{
			Name:     "Conekta",
			Currency: "MXN",
			Format:   pagos.MoneyCents,
			Test:     c.Test,
			HTTP:     deps.HTTPClient,
			Logger:   deps.Logger,
		},
		cfg: c,
	}, nil
}

func (g *Gateway) Charges() pagos.Charges       { return &charges{gateway: g} }
func (g *Gateway) Customers() pagos.Customers   { return &customers{gateway: g} }
func (g *Gateway) Cards() pagos.Cards           { return &cards{gateway: g} }
func (g *Gateway) Events() pagos.Events         { return &events{gateway: g} }
func (g *Gateway) Webhooks() pagos.Webhooks     { return &webhooks{gateway: g} }
func (g *Gateway) Recipients() pagos.Recipients { return &recipients{gateway: g} }

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
	header := http.Header{}
	header.Set("Accept", apiVersion)
	header.Set("Accept-Language", g.cfg.Locale)
	return g.Commit(ctx, pagos.CommitRequest{
		Method:   method,
		URL:      g.BuildURL(g.requestURL(), endpoint),
		JSON:     params,
		Header:   header,
		Username: g.cfg.PrivateKey,
	})
}

func (g *Gateway) commitList(ctx context.Context, endpoint string) ([]*pagos.Response, error) {
	reply, err := g.send(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	body, ok := reply.JSON()
	if !ok {
		return []*pagos.Response{g.InvalidResponse(reply)}, nil
	}
	if failed(reply, body) {
		return []*pagos.Response{g.mapFailure(body)}, nil
	}
	items := pagos.RawList(body, "data")
	responses := make([]*pagos.Response, 0, len(items))
	for _, item := range items {
		responses = append(responses, g.mapSuccess(item))
	}
	return responses, nil
}

func failed(reply *pagos.RawReply, body map[string]any) bool {
	return !reply.OK() || pagos.StringField(body, "object") == "error"
}

func (g *Gateway) mapResponse(reply *pagos.RawReply) *pagos.Response {
	body, ok := reply.JSON()
	if !ok {
		return g.InvalidResponse(reply)
	}
	if failed(reply, body) {
		return g.mapFailure(body)
	}
	return g.mapSuccess(body)
}

func (g *Gateway) mapSuccess(body map[string]any) *pagos.Response {
	return pagos.NewResponse(body).Map(pagos.Attributes{
		Success:       true,
		Test:          g.testMode(body),
		Reference:     pagos.StringField(body, "id"),
		Message:       "Transaction approved",
		Authorization: authorization(body),
		Type:          pagos.StringField(body, "type"),
		Status:        mapStatus(pagos.StringField(body, "payment_status"), pagos.StringField(body, "status")),
	})
}

func (g *Gateway) testMode(body map[string]any) bool {
	if _, ok := body["livemode"]; ok {
		return !pagos.BoolField(body, "livemode")
	}
	return g.IsTest()
}

// authorization surfaces the cash/SPEI settlement handle when present: the
// OXXO barcode or the transfer CLABE, falling back to the charge id.
func authorization(body map[string]any) string {
	if method := pagos.MapField(body, "payment_method"); method != nil {
		if ref := pagos.StringField(method, "reference"); ref != "" {
			return ref
		}
		if clabe := pagos.StringField(method, "clabe"); clabe != "" {
			return clabe
		}
	}
	return pagos.StringField(body, "id")
}

func (g *Gateway) mapFailure(body map[string]any) *pagos.Response {
	message := pagos.StringField(body, "message")
	var code string
	if details := pagos.RawList(body, "details"); len(details) > 0 {
		if message == "" {
			message = pagos.StringField(details[0], "message")
		}
		code = pagos.StringField(details[0], "code")
	}
	if message == "" {
		message = "Transaction declined"
	}
	return pagos.NewResponse(body).Map(pagos.Attributes{
		Success:   false,
		Test:      g.IsTest(),
		Message:   message,
		Status:    pagos.StatusFailed,
		ErrorCode: mapErrorCode(pagos.StringField(body, "type"), code),
	})
}

func mapStatus(paymentStatus, status string) pagos.Status {
	native := paymentStatus
	if native == "" {
		native = status
	}
	switch native {
	case "paid":
		return pagos.StatusPaid
	case "pending_payment", "pending":
		return pagos.StatusPending
	case "declined":
		return pagos.StatusDeclined
	case "refunded":
		return pagos.StatusRefunded
	case "partially_refunded":
		return pagos.StatusPartiallyRefunded
	case "chargeback", "charged_back":
		return pagos.StatusChargedBack
	case "canceled":
		return pagos.StatusCanceled
	case "expired":
		return pagos.StatusExpired
	default:
		return ""
	}
}

// Conekta error codes are dotted paths; the last segment carries the cause.
var errorCodes = map[string]pagos.ErrorCode{
	"insufficient_funds":    pagos.ErrCodeInsufficientFunds,
	"declined":              pagos.ErrCodeCardDeclined,
	"expired_card":          pagos.ErrCodeExpiredCard,
	"invalid_number":        pagos.ErrCodeIncorrectNumber,
	"invalid_cvc":           pagos.ErrCodeInvalidCVC,
	"invalid_expiry_date":   pagos.ErrCodeInvalidExpiryDate,
	"suspected_fraud":       pagos.ErrCodeSuspectedFraud,
	"stolen_card":           pagos.ErrCodePickUpCard,
	"contact_issuer":        pagos.ErrCodeCallIssuer,
	"invalid_amount":        pagos.ErrCodeInvalidAmount,
	"processing_error":      pagos.ErrCodeProcessing,
	"unsupported_operation": pagos.ErrCodeUnsupported,
}

func mapErrorCode(errType, code string) pagos.ErrorCode {
	if code != "" {
		segments := strings.Split(code, ".")
		if mapped, ok := errorCodes[segments[len(segments)-1]]; ok {
			return mapped
		}
	}
	switch errType {
	case "authentication_error":
		return pagos.ErrCodeConfig
	case "parameter_validation_error":
		return pagos.ErrCodeProcessing
	default:
		return pagos.ErrCodeCardDeclined
	}
}
