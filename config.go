package pagos

import (
	"fmt"

	"github.com/go-playground/validator"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
)

// Config is the untyped driver configuration handed to Factory.Make. The
// "driver" key selects the provider; everything else is credential material
// the selected driver decodes into its own typed config.
type Config map[string]any

// Driver returns the driver name, or "" when absent.
func (c Config) Driver() string {
	driver, _ := c["driver"].(string)
	return driver
}

var validate = validator.New()

// DecodeConfig unmarshals a Config map into a driver's typed config struct
// (koanf tags) and enforces its validate tags. Required-credential
// violations surface as InvalidArgumentError: a missing key is an
// integration bug, not a business outcome.
func DecodeConfig(cfg Config, out any) error {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(cfg, "."), nil); err != nil {
		return &InvalidArgumentError{Msg: fmt.Sprintf("invalid gateway config: %v", err)}
	}
	if err := k.Unmarshal("", out); err != nil {
		return &InvalidArgumentError{Msg: fmt.Sprintf("invalid gateway config: %v", err)}
	}
	if err := validate.Struct(out); err != nil {
		return &InvalidArgumentError{Msg: fmt.Sprintf("missing required gateway config: %v", err)}
	}
	return nil
}

// Options carries provider pass-through parameters on capability calls.
type Options map[string]any

// String returns the option as a string, or "" when absent or not a string.
func (o Options) String(key string) string {
	v, _ := o[key].(string)
	return v
}

// Bool returns the option as a bool, false when absent.
func (o Options) Bool(key string) bool {
	v, _ := o[key].(bool)
	return v
}

// Has reports whether the option is present at all.
func (o Options) Has(key string) bool {
	_, ok := o[key]
	return ok
}
