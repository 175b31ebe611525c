// Package bogus is a deterministic test gateway. It never touches the
// network: the payment descriptor alone decides the outcome, which makes it
// the conformance fixture for the normalization contract.
package bogus

import (
	"context"

	"github.com/pagos-go/pagos"
)

const driverName = "bogus"

func init() {
	pagos.Register(driverName, New)
}

type Config struct {
	Test bool `koanf:"test"`
}

type Gateway struct {
	pagos.Core
}

func New(cfg pagos.Config, deps pagos.Deps) (pagos.Gateway, error) {
	var c Config
	if err := pagos.DecodeConfig(cfg, &c); err != nil {
		return nil, err
	}
	return &Gateway{
		Core: pagos.Core{
			Name:     "Bogus",
			Currency: "USD",
			Format:   pagos.MoneyDollars,
			Test:     c.Test,
			HTTP:     deps.HTTPClient,
			Logger:   deps.Logger,
		},
	}, nil
}

func (g *Gateway) Charges() pagos.Charges {
	return &charges{gateway: g}
}

type charges struct {
	gateway *Gateway
}

func (c *charges) Create(ctx context.Context, amount int64, payment string, opts pagos.Options) (*pagos.Response, error) {
	if _, err := c.gateway.Amount(amount); err != nil {
		return nil, err
	}
	return c.gateway.outcome(payment, pagos.StatusPaid), nil
}

func (c *charges) Complete(ctx context.Context, opts pagos.Options) (*pagos.Response, error) {
	return c.gateway.outcome(opts.String("reference"), pagos.StatusPaid), nil
}

func (c *charges) Refund(ctx context.Context, amount int64, reference string, opts pagos.Options) (*pagos.Response, error) {
	if _, err := c.gateway.Amount(amount); err != nil {
		return nil, err
	}
	return c.gateway.outcome(reference, pagos.StatusRefunded), nil
}

// outcome maps the magic descriptor "success" to an approved response and
// anything else to a declined one.
func (g *Gateway) outcome(descriptor string, okStatus pagos.Status) *pagos.Response {
	if descriptor == "success" {
		raw := map[string]any{"id": "123", "auth": "123", "status": string(okStatus)}
		return pagos.NewResponse(raw).Map(pagos.Attributes{
			Success:       true,
			Test:          g.IsTest(),
			Reference:     "123",
			Authorization: "123",
			Message:       "Approved",
			Status:        okStatus,
		})
	}
	raw := map[string]any{"code": "1", "status": "failed"}
	return pagos.NewResponse(raw).Map(pagos.Attributes{
		Success:   false,
		Test:      g.IsTest(),
		Message:   "Error",
		Status:    pagos.StatusFailed,
		ErrorCode: pagos.ErrCodeCardDeclined,
	})
}
