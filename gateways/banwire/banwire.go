// Package banwire implements the Banwire Pago Pro driver. Requests are
// form-encoded; replies are query-string pairs parsed with parse_str
// semantics. The only supported family is direct card charges.
package banwire

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pagos-go/pagos"
)

const (
	driverName = "banwire"
	apiURL     = "https://www.banwire.com/api.pago_pro"
)

func init() {
	pagos.Register(driverName, New)
}

type Config struct {
	User     string `koanf:"user" validate:"required"`
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
			Name:     "Banwire",
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
	return apiURL
}

type charges struct {
	gateway *Gateway
}

func (c *charges) Create(ctx context.Context, amount int64, payment string, opts pagos.Options) (*pagos.Response, error) {
	money, err := c.gateway.Amount(amount)
	if err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("user", c.gateway.cfg.User)
	params.Set("reference", opts.String("reference"))
	params.Set("currency", c.gateway.DefaultCurrency())
	params.Set("ammount", money) // sic, Banwire's own field name
	params.Set("concept", opts.String("description"))
	params.Set("card_num", payment)
	for source, target := range map[string]string{
		"card_name": "card_name",
		"card_type": "card_type",
		"card_exp":  "card_exp",
		"card_ccv2": "card_ccv2",
		"phone":     "phone",
		"email":     "mail",
	} {
		if opts.String(source) != "" {
			params.Set(target, opts.String(source))
		}
	}
	if c.gateway.IsTest() {
		params.Set("sandbox", "1")
	}

	reply, err := c.gateway.Commit(ctx, pagos.CommitRequest{
		Method: http.MethodPost,
		URL:    c.gateway.requestURL(),
		Form:   params,
	})
	if err != nil {
		return nil, err
	}
	return c.gateway.mapResponse(reply), nil
}

func (c *charges) Complete(ctx context.Context, opts pagos.Options) (*pagos.Response, error) {
	return nil, &pagos.CapabilityError{Driver: driverName, Method: "complete"}
}

func (c *charges) Refund(ctx context.Context, amount int64, reference string, opts pagos.Options) (*pagos.Response, error) {
	return nil, &pagos.CapabilityError{Driver: driverName, Method: "refund"}
}

func (g *Gateway) mapResponse(reply *pagos.RawReply) *pagos.Response {
	values, ok := reply.FormValues()
	if !ok {
		return g.InvalidResponse(reply)
	}
	raw := pagos.ValuesMap(values)

	if reply.OK() && values.Get("response") == "ok" {
		return pagos.NewResponse(raw).Map(pagos.Attributes{
			Success:       true,
			Test:          g.IsTest(),
			Reference:     values.Get("referencia"),
			Message:       "Transaction approved",
			Authorization: values.Get("code_auth"),
			Status:        pagos.StatusPaid,
		})
	}

	message := values.Get("message")
	if message == "" {
		message = "Transaction declined"
	}
	return pagos.NewResponse(raw).Map(pagos.Attributes{
		Success:   false,
		Test:      g.IsTest(),
		Reference: values.Get("referencia"),
		Message:   message,
		Status:    pagos.StatusDeclined,
		ErrorCode: pagos.ErrCodeCardDeclined,
	})
}
