// Package mercadopago implements the MercadoPago driver: JSON REST with a
// bearer access token. Declines come back as approved-shaped payments with
// status "rejected" and the cause in status_detail, all under HTTP 201.
package mercadopago

import (
	"context"
	"net/http"

	"github.com/pagos-go/pagos"
)

const (
	driverName = "mercadopago"
	apiURL     = "https://api.mercadopago.com"
)

func init() {
	pagos.Register(driverName, New)
}

type Config struct {
	AccessToken string `koanf:"access_token" validate:"required"`
	Test        bool   `koanf:"test"`
	Endpoint    string `koanf:"endpoint"`
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
			Name:     "MercadoPago",
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
func (g *Gateway) Events() pagos.Events       { return &events{gateway: g} }

func (g *Gateway) requestURL() string {
	if g.cfg.Endpoint != "" {
		return g.cfg.Endpoint
	}
	return apiURL
}

func (g *Gateway) commit(ctx context.Context, method, endpoint string, params map[string]any) (*pagos.Response, error) {
	reply, err := g.Commit(ctx, pagos.CommitRequest{
		Method: method,
		URL:    g.BuildURL(g.requestURL(), endpoint),
		JSON:   params,
		Bearer: g.cfg.AccessToken,
	})
	if err != nil {
		return nil, err
	}
	return g.mapResponse(reply), nil
}

func (g *Gateway) commitList(ctx context.Context, endpoint string) ([]*pagos.Response, error) {
	reply, err := g.Commit(ctx, pagos.CommitRequest{
		Method: http.MethodGet,
		URL:    g.BuildURL(g.requestURL(), endpoint),
		Bearer: g.cfg.AccessToken,
	})
	if err != nil {
		return nil, err
	}
	body, ok := reply.JSON()
	if !ok {
		return []*pagos.Response{g.InvalidResponse(reply)}, nil
	}
	if !reply.OK() {
		return []*pagos.Response{g.mapFailure(body)}, nil
	}
	items := pagos.RawList(body, "results")
	responses := make([]*pagos.Response, 0, len(items))
	for _, item := range items {
		responses = append(responses, g.mapPayment(item))
	}
	return responses, nil
}

func (g *Gateway) mapResponse(reply *pagos.RawReply) *pagos.Response {
	body, ok := reply.JSON()
	if !ok {
		return g.InvalidResponse(reply)
	}
	if !reply.OK() {
		return g.mapFailure(body)
	}
	return g.mapPayment(body)
}

// mapPayment handles the body-over-transport override: a 2xx payment whose
// status is rejected is a decline, not a success.
func (g *Gateway) mapPayment(body map[string]any) *pagos.Response {
	status := mapStatus(pagos.StringField(body, "status"))
	if pagos.StringField(body, "status") == "rejected" {
		detail := pagos.StringField(body, "status_detail")
		return pagos.NewResponse(body).Map(pagos.Attributes{
			Success:   false,
			Test:      g.testMode(body),
			Reference: pagos.StringField(body, "id"),
			Message:   detail,
			Status:    pagos.StatusDeclined,
			ErrorCode: mapStatusDetail(detail),
		})
	}
	return pagos.NewResponse(body).Map(pagos.Attributes{
		Success:       true,
		Test:          g.testMode(body),
		Reference:     pagos.StringField(body, "id"),
		Message:       "Transaction approved",
		Authorization: pagos.StringField(body, "authorization_code"),
		Type:          pagos.StringField(body, "operation_type"),
		Status:        status,
	})
}

func (g *Gateway) mapFailure(body map[string]any) *pagos.Response {
	message := pagos.StringField(body, "message")
	if message == "" {
		message = "Transaction declined"
	}
	code := pagos.ErrCodeProcessing
	if pagos.StringField(body, "error") == "unauthorized" || pagos.StringField(body, "status") == "401" {
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
	if _, ok := body["live_mode"]; ok {
		return !pagos.BoolField(body, "live_mode")
	}
	return g.IsTest()
}

func mapStatus(status string) pagos.Status {
	switch status {
	case "approved", "accredited":
		return pagos.StatusPaid
	case "pending", "in_process", "in_mediation":
		return pagos.StatusPending
	case "authorized":
		return pagos.StatusAuthorized
	case "rejected":
		return pagos.StatusDeclined
	case "refunded":
		return pagos.StatusRefunded
	case "cancelled":
		return pagos.StatusCanceled
	case "charged_back":
		return pagos.StatusChargedBack
	default:
		return ""
	}
}

var statusDetails = map[string]pagos.ErrorCode{
	"cc_rejected_insufficient_amount":        pagos.ErrCodeInsufficientFunds,
	"cc_rejected_bad_filled_security_code":   pagos.ErrCodeInvalidCVC,
	"cc_rejected_bad_filled_date":            pagos.ErrCodeInvalidExpiryDate,
	"cc_rejected_bad_filled_card_number":     pagos.ErrCodeIncorrectNumber,
	"cc_rejected_bad_filled_other":           pagos.ErrCodeProcessing,
	"cc_rejected_call_for_authorize":         pagos.ErrCodeCallIssuer,
	"cc_rejected_card_disabled":              pagos.ErrCodeCallIssuer,
	"cc_rejected_card_error":                 pagos.ErrCodeCardDeclined,
	"cc_rejected_duplicated_payment":         pagos.ErrCodeProcessing,
	"cc_rejected_high_risk":                  pagos.ErrCodeSuspectedFraud,
	"cc_rejected_blacklist":                  pagos.ErrCodeSuspectedFraud,
	"cc_rejected_invalid_installments":       pagos.ErrCodeProcessing,
	"cc_rejected_max_attempts":               pagos.ErrCodeCardDeclined,
	"cc_rejected_other_reason":               pagos.ErrCodeCardDeclined,
}

func mapStatusDetail(detail string) pagos.ErrorCode {
	if mapped, ok := statusDetails[detail]; ok {
		return mapped
	}
	return pagos.ErrCodeCardDeclined
}
