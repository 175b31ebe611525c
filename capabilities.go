package pagos

import "context"

// Capability interfaces. Every operation performs one blocking provider
// call and returns a normalized Response; the error return carries only
// raised kinds (see errors.go), never business failures.

// Charges is the payment operation family.
type Charges interface {
	// Create charges amount (in base units) against a payment token,
	// card id, or driver-specific payment descriptor.
	Create(ctx context.Context, amount int64, payment string, opts Options) (*Response, error)
	// Complete finishes a two-step flow (capture, redirect return).
	Complete(ctx context.Context, opts Options) (*Response, error)
	// Refund returns amount against a previously created charge.
	Refund(ctx context.Context, amount int64, reference string, opts Options) (*Response, error)
}

type Customers interface {
	Create(ctx context.Context, attrs Options) (*Response, error)
	Find(ctx context.Context, id string) (*Response, error)
	Update(ctx context.Context, id string, attrs Options) (*Response, error)
}

type Cards interface {
	Create(ctx context.Context, token string, opts Options) (*Response, error)
	Delete(ctx context.Context, id string, opts Options) (*Response, error)
}

type Events interface {
	All(ctx context.Context) ([]*Response, error)
	Find(ctx context.Context, id string, opts Options) (*Response, error)
}

type Webhooks interface {
	All(ctx context.Context) ([]*Response, error)
	Find(ctx context.Context, id string) (*Response, error)
	Create(ctx context.Context, params Options) (*Response, error)
	Update(ctx context.Context, id string, params Options) (*Response, error)
	Delete(ctx context.Context, id string) (*Response, error)
}

type Recipients interface {
	Create(ctx context.Context, attrs Options) (*Response, error)
	Find(ctx context.Context, id string) (*Response, error)
	Update(ctx context.Context, id string, attrs Options) (*Response, error)
	Delete(ctx context.Context, id string) (*Response, error)
}

type Account interface {
	Info(ctx context.Context) (*Response, error)
}

// Drivers advertise a capability family by implementing the matching
// provider interface; the Client checks for it at call time and returns a
// typed CapabilityError otherwise.

type ChargesProvider interface {
	Charges() Charges
}

type CustomersProvider interface {
	Customers() Customers
}

type CardsProvider interface {
	Cards() Cards
}

type EventsProvider interface {
	Events() Events
}

type WebhooksProvider interface {
	Webhooks() Webhooks
}

type RecipientsProvider interface {
	Recipients() Recipients
}

type AccountProvider interface {
	Account() Account
}
