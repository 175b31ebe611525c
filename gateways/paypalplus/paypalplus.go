// Package paypalplus implements the PayPal Plus (REST payments) driver:
// an OAuth client-credentials exchange per call, then JSON against
// /v1/payments. The approval flow mirrors Express Checkout — Create returns
// a redirect to the approval_url, Complete executes the approved payment.
package paypalplus

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pagos-go/pagos"
)

const (
	driverName = "paypal_plus"
	liveURL    = "https://api.paypal.com"
	testURL    = "https://api.sandbox.paypal.com"
)

func init() {
	pagos.Register(driverName, New)
}

type Config struct {
	ClientID     string `koanf:"client_id" validate:"required"`
	ClientSecret string `koanf:"client_secret" validate:"required"`
	Test         bool   `koanf:"test"`
	Endpoint     string `koanf:"endpoint"`
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
			Name:     "PayPal Plus",
			Currency: "USD",
			Format:   pagos.MoneyDollars,
			Test:     c.Test,
			HTTP:     deps.HTTPClient,
			Logger:   deps.Logger,
		},
		cfg: c,
	}, nil
}

func (g *Gateway) Charges() pagos.Charges { return &charges{gateway: g} }

func (g *Gateway) requestURL() string {
	if g.cfg.Endpoint != "" {
		return g.cfg.Endpoint
	}
	if g.Test {
		return testURL
	}
	return liveURL
}

// token performs the client-credentials exchange. A rejected credential
// pair is a business-channel failure: the caller gets a Response with
// config_error, not a raised error, because the call reached the network.
func (g *Gateway) token(ctx context.Context) (string, *pagos.Response, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	reply, err := g.Commit(ctx, pagos.CommitRequest{
		Method:   http.MethodPost,
		URL:      g.BuildURL(g.requestURL(), "v1/oauth2/token"),
		Form:     form,
		Username: g.cfg.ClientID,
		Password: g.cfg.ClientSecret,
	})
	if err != nil {
		return "", nil, err
	}
	body, ok := reply.JSON()
	if !ok {
		return "", g.InvalidResponse(reply), nil
	}
	access := pagos.StringField(body, "access_token")
	if !reply.OK() || access == "" {
		failed := pagos.NewResponse(body).Map(pagos.Attributes{
			Success:   false,
			Test:      g.IsTest(),
			Message:   "Unable to obtain an access token",
			Status:    pagos.StatusFailed,
			ErrorCode: pagos.ErrCodeConfig,
		})
		return "", failed, nil
	}
	return access, nil, nil
}

func (g *Gateway) commit(ctx context.Context, method, endpoint string, params map[string]any) (*pagos.Response, error) {
	access, failed, err := g.token(ctx)
	if err != nil {
		return nil, err
	}
	if failed != nil {
		return failed, nil
	}
	reply, err := g.Commit(ctx, pagos.CommitRequest{
		Method: method,
		URL:    g.BuildURL(g.requestURL(), endpoint),
		JSON:   params,
		Bearer: access,
	})
	if err != nil {
		return nil, err
	}
	return g.mapResponse(reply), nil
}

func (g *Gateway) mapResponse(reply *pagos.RawReply) *pagos.Response {
	body, ok := reply.JSON()
	if !ok {
		return g.InvalidResponse(reply)
	}
	// REST errors carry a "name" field; declines also answer 4xx.
	if !reply.OK() || (body["name"] != nil && body["state"] == nil) {
		return g.mapFailure(body)
	}
	return g.mapSuccess(body)
}

func (g *Gateway) mapSuccess(body map[string]any) *pagos.Response {
	attrs := pagos.Attributes{
		Success:   true,
		Test:      g.IsTest(),
		Reference: pagos.StringField(body, "id"),
		Message:   "Transaction approved",
		Status:    mapStatus(pagos.StringField(body, "state")),
	}
	if approval := approvalLink(body); approval != "" && attrs.Status == pagos.StatusPending {
		attrs.Redirect = true
		attrs.Authorization = approval
	} else {
		attrs.Authorization = pagos.StringField(body, "id")
	}
	return pagos.NewResponse(body).Map(attrs)
}

func (g *Gateway) mapFailure(body map[string]any) *pagos.Response {
	message := pagos.StringField(body, "message")
	if message == "" {
		message = "Transaction declined"
	}
	return pagos.NewResponse(body).Map(pagos.Attributes{
		Success:   false,
		Test:      g.IsTest(),
		Message:   message,
		Status:    pagos.StatusFailed,
		ErrorCode: mapErrorCode(pagos.StringField(body, "name")),
	})
}

// approvalLink walks the HATEOAS links for rel=approval_url.
func approvalLink(body map[string]any) string {
	for _, link := range pagos.RawList(body, "links") {
		if pagos.StringField(link, "rel") == "approval_url" {
			return pagos.StringField(link, "href")
		}
	}
	return ""
}

func mapStatus(state string) pagos.Status {
	switch state {
	case "approved", "completed":
		return pagos.StatusPaid
	case "created", "pending":
		return pagos.StatusPending
	case "failed":
		return pagos.StatusFailed
	case "canceled", "cancelled":
		return pagos.StatusCanceled
	case "partially_refunded":
		return pagos.StatusPartiallyRefunded
	case "refunded":
		return pagos.StatusRefunded
	default:
		return ""
	}
}

var errorCodes = map[string]pagos.ErrorCode{
	"INSTRUMENT_DECLINED":      pagos.ErrCodeCardDeclined,
	"CREDIT_CARD_REFUSED":      pagos.ErrCodeCardDeclined,
	"EXPIRED_CREDIT_CARD":      pagos.ErrCodeExpiredCard,
	"INVALID_CC_NUMBER":        pagos.ErrCodeIncorrectNumber,
	"CC_NUMBER_LENGTH_INVALID": pagos.ErrCodeIncorrectNumber,
	"PAYEE_ACCOUNT_RESTRICTED": pagos.ErrCodeConfig,
	"PERMISSION_DENIED":        pagos.ErrCodeConfig,
	"AUTHENTICATION_FAILURE":   pagos.ErrCodeConfig,
	"VALIDATION_ERROR":         pagos.ErrCodeProcessing,
	"INTERNAL_SERVICE_ERROR":   pagos.ErrCodeProcessing,
	"PAYMENT_APPROVAL_EXPIRED": pagos.ErrCodeInvalidState,
	"PAYMENT_ALREADY_DONE":     pagos.ErrCodeInvalidState,
	"TRANSACTION_REFUSED":      pagos.ErrCodeCardDeclined,
	"RISK_N_DECLINE":           pagos.ErrCodeSuspectedFraud,
}

func mapErrorCode(name string) pagos.ErrorCode {
	if mapped, ok := errorCodes[name]; ok {
		return mapped
	}
	return pagos.ErrCodeProcessing
}
