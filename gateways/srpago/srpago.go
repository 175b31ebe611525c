// Package srpago implements the Sr. Pago driver: an application-login
// token exchange, then JSON calls whose body carries an explicit success
// flag regardless of the HTTP status.
package srpago

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pagos-go/pagos"
)

const (
	driverName = "sr_pago"
	liveURL    = "https://api.srpago.com"
	testURL    = "https://sandbox-api.srpago.com"
)

func init() {
	pagos.Register(driverName, New)
}

type Config struct {
	Key      string `koanf:"key" validate:"required"`
	Secret   string `koanf:"secret" validate:"required"`
	Test     bool   `koanf:"test"`
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
			Name:     "Sr. Pago",
			Currency: "MXN",
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

// login exchanges the application keys for a connection token. Rejected
// keys become a config_error Response, not a raised error.
func (g *Gateway) login(ctx context.Context) (string, *pagos.Response, error) {
	reply, err := g.Commit(ctx, pagos.CommitRequest{
		Method:   http.MethodPost,
		URL:      g.BuildURL(g.requestURL(), "v1/auth/login/application"),
		JSON:     map[string]any{},
		Username: g.cfg.Key,
		Password: g.cfg.Secret,
	})
	if err != nil {
		return "", nil, err
	}
	body, ok := reply.JSON()
	if !ok {
		return "", g.InvalidResponse(reply), nil
	}
	var token string
	if connection := pagos.MapField(pagos.MapField(body, "result"), "connection"); connection != nil {
		token = pagos.StringField(connection, "token")
	}
	if !reply.OK() || !pagos.BoolField(body, "success") || token == "" {
		failed := pagos.NewResponse(body).Map(pagos.Attributes{
			Success:   false,
			Test:      g.IsTest(),
			Message:   "Unable to obtain a connection token",
			Status:    pagos.StatusFailed,
			ErrorCode: pagos.ErrCodeConfig,
		})
		return "", failed, nil
	}
	return token, nil, nil
}

func (g *Gateway) commit(ctx context.Context, method, endpoint string, params map[string]any) (*pagos.Response, error) {
	token, failed, err := g.login(ctx)
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
		Bearer: token,
	})
	if err != nil {
		return nil, err
	}
	return g.mapResponse(reply), nil
}

// mapResponse: the body-level success flag is authoritative; Sr. Pago can
// answer 200 for declined operations.
func (g *Gateway) mapResponse(reply *pagos.RawReply) *pagos.Response {
	body, ok := reply.JSON()
	if !ok {
		return g.InvalidResponse(reply)
	}
	if !reply.OK() || !pagos.BoolField(body, "success") {
		return g.mapFailure(body)
	}
	result := pagos.MapField(body, "result")
	recipe := pagos.MapField(result, "recipe")
	if recipe == nil {
		recipe = result
	}
	status := pagos.StatusPaid
	if pagos.StringField(recipe, "status") == "refunded" {
		status = pagos.StatusRefunded
	}
	return pagos.NewResponse(body).Map(pagos.Attributes{
		Success:       true,
		Test:          g.IsTest(),
		Reference:     pagos.StringField(recipe, "transaction"),
		Message:       "Transaction approved",
		Authorization: pagos.StringField(recipe, "authorization_code"),
		Status:        status,
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
		Test:      g.IsTest(),
		Message:   message,
		Status:    pagos.StatusFailed,
		ErrorCode: mapErrorCode(pagos.StringField(errObj, "code")),
	})
}

var errorCodes = map[string]pagos.ErrorCode{
	"PaymentException":           pagos.ErrCodeCardDeclined,
	"InsufficientFundsException": pagos.ErrCodeInsufficientFunds,
	"InvalidParamException":      pagos.ErrCodeProcessing,
	"InvalidEncryptionException": pagos.ErrCodeConfig,
	"TokenAlreadyUsedException":  pagos.ErrCodeInvalidState,
	"SwitchException":            pagos.ErrCodeCallIssuer,
	"PaymentFilterException":     pagos.ErrCodeSuspectedFraud,
}

func mapErrorCode(code string) pagos.ErrorCode {
	if mapped, ok := errorCodes[code]; ok {
		return mapped
	}
	return pagos.ErrCodeCardDeclined
}

type charges struct {
	gateway *Gateway
}

func (c *charges) Create(ctx context.Context, amount int64, payment string, opts pagos.Options) (*pagos.Response, error) {
	money, err := c.gateway.Amount(amount)
	if err != nil {
		return nil, err
	}
	currency := opts.String("currency")
	if currency == "" {
		currency = c.gateway.DefaultCurrency()
	}
	params := map[string]any{
		"payment": map[string]any{
			"external": map[string]any{
				"transaction":     opts.String("reference"),
				"application_key": c.gateway.cfg.Key,
			},
			"reference": map[string]any{
				"number":      opts.String("reference"),
				"description": opts.String("description"),
			},
			"total": map[string]any{
				"amount":   json.Number(money),
				"currency": currency,
			},
		},
		"token": payment,
	}
	return c.gateway.commit(ctx, http.MethodPost, "v1/payment/card", params)
}

func (c *charges) Complete(ctx context.Context, opts pagos.Options) (*pagos.Response, error) {
	return nil, &pagos.CapabilityError{Driver: driverName, Method: "complete"}
}

func (c *charges) Refund(ctx context.Context, amount int64, reference string, opts pagos.Options) (*pagos.Response, error) {
	if _, err := c.gateway.Amount(amount); err != nil {
		return nil, err
	}
	return c.gateway.commit(ctx, http.MethodPost, "v1/payment/"+reference+"/reverse", map[string]any{})
}
