// Package all registers every bundled driver with the default registry.
// Import it for its side effects when an application wants the full roster:
//
//	import _ "github.com/pagos-go/pagos/gateways/all"
//
// Applications that ship a single provider should blank-import only that
// driver's package instead.
package all

import (
	_ "github.com/pagos-go/pagos/gateways/banwire"
	_ "github.com/pagos-go/pagos/gateways/bogus"
	_ "github.com/pagos-go/pagos/gateways/compropago"
	_ "github.com/pagos-go/pagos/gateways/conekta"
	_ "github.com/pagos-go/pagos/gateways/manual"
	_ "github.com/pagos-go/pagos/gateways/mercadopago"
	_ "github.com/pagos-go/pagos/gateways/openpay"
	_ "github.com/pagos-go/pagos/gateways/paypalexpress"
	_ "github.com/pagos-go/pagos/gateways/paypalplus"
	_ "github.com/pagos-go/pagos/gateways/srpago"
	_ "github.com/pagos-go/pagos/gateways/stripe"
)
