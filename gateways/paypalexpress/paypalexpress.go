// Package paypalexpress implements the legacy PayPal Express Checkout
// driver over the NVP protocol: form-posted name-value pairs, query-string
// replies, success signalled by ACK rather than the HTTP status.
package paypalexpress

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pagos-go/pagos"
)

const (
	driverName = "paypal_express"
	nvpVersion = "119.0"

	liveURL = "https://api-3t.paypal.com/nvp"
	testURL = "https://api-3t.sandbox.paypal.com/nvp"

	liveCheckoutURL = "https://www.paypal.com/cgi-bin/webscr"
	testCheckoutURL = "https://www.sandbox.paypal.com/cgi-bin/webscr"
)

func init() {
	pagos.Register(driverName, New)
}

type Config struct {
	Username  string `koanf:"username" validate:"required"`
	Password  string `koanf:"password" validate:"required"`
	Signature string `koanf:"signature" validate:"required"`
	Test      bool   `koanf:"test"`
	Endpoint  string `koanf:"endpoint"`
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
			Name:     "PayPal Express",
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

func (g *Gateway) checkoutURL() string {
	if g.Test {
		return testCheckoutURL
	}
	return liveCheckoutURL
}

// commit posts one NVP call. Credentials and protocol version ride in the
// payload itself; there is no transport-level auth.
func (g *Gateway) commit(ctx context.Context, nvpMethod string, params url.Values) (*pagos.Response, error) {
	params.Set("METHOD", nvpMethod)
	params.Set("VERSION", nvpVersion)
	params.Set("USER", g.cfg.Username)
	params.Set("PWD", g.cfg.Password)
	params.Set("SIGNATURE", g.cfg.Signature)

	reply, err := g.Commit(ctx, pagos.CommitRequest{
		Method: http.MethodPost,
		URL:    g.requestURL(),
		Form:   params,
	})
	if err != nil {
		return nil, err
	}
	return g.mapResponse(reply), nil
}

// mapResponse: the protocol-native success indicator is ACK, not the HTTP
// status; PayPal answers 200 to declined calls.
func (g *Gateway) mapResponse(reply *pagos.RawReply) *pagos.Response {
	values, ok := reply.FormValues()
	if !ok {
		return g.InvalidResponse(reply)
	}
	raw := pagos.ValuesMap(values)

	ack := values.Get("ACK")
	if reply.OK() && (ack == "Success" || ack == "SuccessWithWarning") {
		return g.mapSuccess(raw, values)
	}
	return g.mapFailure(raw, values)
}

func (g *Gateway) mapSuccess(raw map[string]any, values url.Values) *pagos.Response {
	token := values.Get("TOKEN")
	reference := values.Get("PAYMENTINFO_0_TRANSACTIONID")
	if reference == "" {
		reference = values.Get("REFUNDTRANSACTIONID")
	}
	if reference == "" {
		reference = token
	}

	// A bare SetExpressCheckout reply carries only the token: the payer
	// still has to approve at PayPal, so the response is a redirect.
	redirect := values.Get("PAYMENTINFO_0_PAYMENTSTATUS") == "" &&
		values.Get("REFUNDTRANSACTIONID") == "" && token != ""

	attrs := pagos.Attributes{
		Success:   true,
		Test:      g.IsTest(),
		Reference: reference,
		Message:   "Transaction approved",
		Status:    mapStatus(values),
	}
	if redirect {
		attrs.Redirect = true
		attrs.Status = pagos.StatusPending
		attrs.Authorization = g.checkoutURL() + "?" + url.Values{
			"cmd":   []string{"_express-checkout"},
			"token": []string{token},
		}.Encode()
	} else {
		attrs.Authorization = reference
	}
	return pagos.NewResponse(raw).Map(attrs)
}

func (g *Gateway) mapFailure(raw map[string]any, values url.Values) *pagos.Response {
	message := values.Get("L_LONGMESSAGE0")
	if message == "" {
		message = values.Get("L_SHORTMESSAGE0")
	}
	if message == "" {
		message = "Transaction declined"
	}
	return pagos.NewResponse(raw).Map(pagos.Attributes{
		Success:   false,
		Test:      g.IsTest(),
		Reference: values.Get("TOKEN"),
		Message:   message,
		Status:    pagos.StatusFailed,
		ErrorCode: mapErrorCode(values.Get("L_ERRORCODE0")),
	})
}

func mapStatus(values url.Values) pagos.Status {
	switch values.Get("PAYMENTINFO_0_PAYMENTSTATUS") {
	case "Completed", "Processed":
		return pagos.StatusPaid
	case "Pending", "In-Progress":
		return pagos.StatusPending
	case "Refunded":
		return pagos.StatusRefunded
	case "Partially-Refunded":
		return pagos.StatusPartiallyRefunded
	case "Voided":
		return pagos.StatusVoided
	case "Denied", "Failed":
		return pagos.StatusFailed
	default:
		if values.Get("REFUNDTRANSACTIONID") != "" {
			return pagos.StatusRefunded
		}
		return ""
	}
}

var errorCodes = map[string]pagos.ErrorCode{
	"10417": pagos.ErrCodeCardDeclined,      // instruct customer to use alternative
	"10486": pagos.ErrCodeCardDeclined,      // transaction could not be completed
	"15005": pagos.ErrCodeCardDeclined,      // processor decline
	"15006": pagos.ErrCodeCardDeclined,      // issuer decline
	"15007": pagos.ErrCodeExpiredCard,
	"10562": pagos.ErrCodeInvalidExpiryDate,
	"10561": pagos.ErrCodeIncorrectAddress,
	"10544": pagos.ErrCodeSuspectedFraud,
	"10545": pagos.ErrCodeSuspectedFraud,
	"11084": pagos.ErrCodeInsufficientFunds,
	"10002": pagos.ErrCodeConfig, // authentication/authorization failed
	"10008": pagos.ErrCodeConfig, // security header not valid
}

func mapErrorCode(code string) pagos.ErrorCode {
	if mapped, ok := errorCodes[code]; ok {
		return mapped
	}
	return pagos.ErrCodeProcessing
}
