// Package pagos is a provider-agnostic payment gateway abstraction. It exposes
// a single calling surface (charges, cards, customers, events, webhooks,
// recipients, account) and normalizes every provider's response into one
// closed vocabulary of statuses and error codes.
//
// Drivers register themselves on import, in the database/sql style:
//
//	import (
//	    "github.com/pagos-go/pagos"
//	    _ "github.com/pagos-go/pagos/gateways/stripe"
//	)
//
//	factory := pagos.NewFactory()
//	client, err := factory.Make(pagos.Config{
//	    "driver":      "stripe",
//	    "private_key": "sk_test_...",
//	    "test":        true,
//	})
//	if err != nil {
//	    // raised errors are integration bugs: unknown driver, missing credential
//	}
//
//	charges, err := client.Charges()
//	resp, err := charges.Create(ctx, 1000, "tok_visa", nil)
//	if !resp.Success() {
//	    // business failures are data, never errors:
//	    // resp.ErrorCode(), resp.Message(), resp.Data()
//	}
//
// Import github.com/pagos-go/pagos/gateways/all to register the full roster.
package pagos
