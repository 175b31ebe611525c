package pagos

// Client is the provider-facing facade returned by Factory.Make. Each
// capability accessor resolves against what the active driver actually
// implements; an unsupported capability is a typed, catchable error rather
// than a silent no-op.
type Client struct {
	driver  string
	gateway Gateway
}

// Driver returns the originally requested driver name.
func (c *Client) Driver() string {
	return c.driver
}

// Gateway returns the bound gateway instance.
func (c *Client) Gateway() Gateway {
	return c.gateway
}

func (c *Client) Charges() (Charges, error) {
	if p, ok := c.gateway.(ChargesProvider); ok {
		return p.Charges(), nil
	}
	return nil, &CapabilityError{Driver: c.driver, Method: "charges"}
}

func (c *Client) Customers() (Customers, error) {
	if p, ok := c.gateway.(CustomersProvider); ok {
		return p.Customers(), nil
	}
	return nil, &CapabilityError{Driver: c.driver, Method: "customers"}
}

func (c *Client) Cards() (Cards, error) {
	if p, ok := c.gateway.(CardsProvider); ok {
		return p.Cards(), nil
	}
	return nil, &CapabilityError{Driver: c.driver, Method: "cards"}
}

func (c *Client) Events() (Events, error) {
	if p, ok := c.gateway.(EventsProvider); ok {
		return p.Events(), nil
	}
	return nil, &CapabilityError{Driver: c.driver, Method: "events"}
}

func (c *Client) Webhooks() (Webhooks, error) {
	if p, ok := c.gateway.(WebhooksProvider); ok {
		return p.Webhooks(), nil
	}
	return nil, &CapabilityError{Driver: c.driver, Method: "webhooks"}
}

func (c *Client) Recipients() (Recipients, error) {
	if p, ok := c.gateway.(RecipientsProvider); ok {
		return p.Recipients(), nil
	}
	return nil, &CapabilityError{Driver: c.driver, Method: "recipients"}
}

func (c *Client) Account() (Account, error) {
	if p, ok := c.gateway.(AccountProvider); ok {
		return p.Account(), nil
	}
	return nil, &CapabilityError{Driver: c.driver, Method: "account"}
}
