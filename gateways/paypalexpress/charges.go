package paypalexpress

import (
	"context"
	"net/url"

	"github.com/pagos-go/pagos"
)

type charges struct {
	gateway *Gateway
}

// Create opens an Express Checkout session. The reply is a redirect: the
// payer approves at PayPal and returns to opts["return_url"], after which
// Complete settles the payment.
func (c *charges) Create(ctx context.Context, amount int64, payment string, opts pagos.Options) (*pagos.Response, error) {
	money, err := c.gateway.Amount(amount)
	if err != nil {
		return nil, err
	}
	returnURL := opts.String("return_url")
	cancelURL := opts.String("cancel_url")
	if returnURL == "" || cancelURL == "" {
		return nil, &pagos.InvalidArgumentError{Msg: "return_url and cancel_url are required"}
	}
	params := url.Values{}
	params.Set("PAYMENTREQUEST_0_AMT", money)
	params.Set("PAYMENTREQUEST_0_CURRENCYCODE", c.currency(opts))
	params.Set("PAYMENTREQUEST_0_PAYMENTACTION", "Sale")
	params.Set("RETURNURL", returnURL)
	params.Set("CANCELURL", cancelURL)
	if opts.String("description") != "" {
		params.Set("PAYMENTREQUEST_0_DESC", opts.String("description"))
	}
	return c.gateway.commit(ctx, "SetExpressCheckout", params)
}

// Complete executes the payment for an approved checkout token.
func (c *charges) Complete(ctx context.Context, opts pagos.Options) (*pagos.Response, error) {
	token := opts.String("token")
	payerID := opts.String("payer_id")
	if token == "" || payerID == "" {
		return nil, &pagos.InvalidArgumentError{Msg: "token and payer_id are required to complete"}
	}
	params := url.Values{}
	params.Set("TOKEN", token)
	params.Set("PAYERID", payerID)
	params.Set("PAYMENTREQUEST_0_AMT", opts.String("amount"))
	params.Set("PAYMENTREQUEST_0_CURRENCYCODE", c.currency(opts))
	params.Set("PAYMENTREQUEST_0_PAYMENTACTION", "Sale")
	return c.gateway.commit(ctx, "DoExpressCheckoutPayment", params)
}

func (c *charges) Refund(ctx context.Context, amount int64, reference string, opts pagos.Options) (*pagos.Response, error) {
	money, err := c.gateway.Amount(amount)
	if err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("TRANSACTIONID", reference)
	if opts.Bool("full") {
		params.Set("REFUNDTYPE", "Full")
	} else {
		params.Set("REFUNDTYPE", "Partial")
		params.Set("AMT", money)
		params.Set("CURRENCYCODE", c.currency(opts))
	}
	return c.gateway.commit(ctx, "RefundTransaction", params)
}

func (c *charges) currency(opts pagos.Options) string {
	if cur := opts.String("currency"); cur != "" {
		return cur
	}
	return c.gateway.DefaultCurrency()
}
