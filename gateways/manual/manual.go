// Package manual is the offline pseudo-gateway for payments settled outside
// any processor (bank transfer, cash against invoice). Every operation
// succeeds locally; the status tells the caller where the money stands.
package manual

import (
	"context"

	"github.com/google/uuid"
	"github.com/pagos-go/pagos"
)

const driverName = "manual"

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
			Name:     "Manual",
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
	money, err := c.gateway.Amount(amount)
	if err != nil {
		return nil, err
	}
	reference := opts.String("reference")
	if reference == "" {
		reference = uuid.NewString()
	}
	return c.gateway.settled(reference, money, pagos.StatusPending), nil
}

func (c *charges) Complete(ctx context.Context, opts pagos.Options) (*pagos.Response, error) {
	return c.gateway.settled(opts.String("reference"), "", pagos.StatusPaid), nil
}

func (c *charges) Refund(ctx context.Context, amount int64, reference string, opts pagos.Options) (*pagos.Response, error) {
	money, err := c.gateway.Amount(amount)
	if err != nil {
		return nil, err
	}
	return c.gateway.settled(reference, money, pagos.StatusRefunded), nil
}

func (g *Gateway) settled(reference, money string, status pagos.Status) *pagos.Response {
	raw := map[string]any{"reference": reference, "status": string(status)}
	if money != "" {
		raw["amount"] = money
	}
	return pagos.NewResponse(raw).Map(pagos.Attributes{
		Success:   true,
		Test:      g.IsTest(),
		Reference: reference,
		Message:   "Transaction approved",
		Status:    status,
	})
}
