package pagos

import "fmt"

// Response is the normalized outcome of a single gateway call. The raw
// provider payload is captured once at construction; typed fields are
// assigned by one bulk Map call. After Map the value is treated as
// immutable by convention.
//
// Invariants every driver mapping table must hold:
//   - Success() implies ErrorCode() == ""
//   - !Success() implies Status() is failed, declined, or ""
type Response struct {
	success       bool
	redirect      bool
	test          bool
	reference     string
	message       string
	authorization string
	kind          string
	status        Status
	errorCode     ErrorCode
	raw           map[string]any
}

// Attributes is the bulk-assignment payload for Response.Map. Being a
// struct, an unknown attribute is unrepresentable.
type Attributes struct {
	Success       bool
	Redirect      bool
	Test          bool
	Reference     string
	Message       string
	Authorization string
	Type          string
	Status        Status
	ErrorCode     ErrorCode
}

// NewResponse captures the verbatim provider payload. Map must be called
// afterwards to assign the typed fields.
func NewResponse(raw map[string]any) *Response {
	return &Response{raw: raw}
}

// Map bulk-assigns every typed field. It is the single mutation point and
// never touches the raw payload.
func (r *Response) Map(attrs Attributes) *Response {
	r.success = attrs.Success
	r.redirect = attrs.Redirect
	r.test = attrs.Test
	r.reference = attrs.Reference
	r.message = attrs.Message
	r.authorization = attrs.Authorization
	r.kind = attrs.Type
	r.status = attrs.Status
	r.errorCode = attrs.ErrorCode
	return r
}

// Success reports whether the provider accepted the operation.
func (r *Response) Success() bool {
	return r.success
}

// IsRedirect reports whether the caller must redirect the payer to
// Authorization() to continue the flow.
func (r *Response) IsRedirect() bool {
	return r.redirect
}

// Test reports whether the call ran against the provider's sandbox.
func (r *Response) Test() bool {
	return r.test
}

// Reference is the gateway-assigned id the caller should persist.
func (r *Response) Reference() string {
	return r.reference
}

// Message is a human-readable outcome, the provider's own when available.
func (r *Response) Message() string {
	return r.message
}

// Authorization carries the auth code, redirect URL, or barcode/clabe,
// depending on the operation.
func (r *Response) Authorization() string {
	return r.authorization
}

// Status is the normalized lifecycle state, or "" when unmapped.
func (r *Response) Status() Status {
	return r.status
}

// ErrorCode is the normalized failure classification, or "" on success.
func (r *Response) ErrorCode() ErrorCode {
	return r.errorCode
}

// Type is the provider-specific operation or event type, passed through
// unmapped.
func (r *Response) Type() string {
	return r.kind
}

// Data returns the verbatim provider payload.
func (r *Response) Data() map[string]any {
	return r.raw
}

// Raw looks up a single key of the provider payload. A missing key is an
// error, not a nil: callers reaching past the typed accessors must know
// exactly which provider field they depend on.
func (r *Response) Raw(key string) (any, error) {
	v, ok := r.raw[key]
	if !ok {
		return nil, fmt.Errorf("response payload has no key %q", key)
	}
	return v, nil
}
