package pagos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyFormat states how a provider expects amounts on the wire: minor
// units ("cents") or a major-unit decimal string ("dollars").
type MoneyFormat string

const (
	MoneyCents   MoneyFormat = "cents"
	MoneyDollars MoneyFormat = "dollars"
)

// Gateway is the contract every provider driver implements. Capability
// families are advertised separately, by implementing ChargesProvider,
// CustomersProvider and friends.
type Gateway interface {
	DisplayName() string
	DefaultCurrency() string
	MoneyFormat() MoneyFormat
}

// HTTPDoer is the pluggable blocking transport. It must return the status
// code and body for 4xx/5xx replies rather than turning them into errors;
// *http.Client already behaves this way.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Deps carries the shared collaborators a Factory hands to every driver
// constructor.
type Deps struct {
	HTTPClient HTTPDoer
	Logger     *slog.Logger
}

// Core holds the provider-independent half of a driver and is embedded by
// every gateway: identity, money conversion, and the single point where an
// HTTP call is issued.
type Core struct {
	Name     string
	Currency string
	Format   MoneyFormat
	Test     bool
	HTTP     HTTPDoer
	Logger   *slog.Logger
}

func (c *Core) DisplayName() string {
	return c.Name
}

func (c *Core) DefaultCurrency() string {
	return c.Currency
}

func (c *Core) MoneyFormat() MoneyFormat {
	return c.Format
}

// IsTest reports whether the driver targets the provider sandbox.
func (c *Core) IsTest() bool {
	return c.Test
}

// Amount converts a base-unit (minor-unit) amount into the provider's wire
// representation. A one-cent rounding error here is a financial bug, so the
// major-unit path goes through exact decimal arithmetic, never floats.
func (c *Core) Amount(money int64) (string, error) {
	if money < 0 {
		return "", &InvalidArgumentError{Msg: "amount must not be negative"}
	}
	if c.Format == MoneyCents {
		return strconv.FormatInt(money, 10), nil
	}
	major := decimal.NewFromInt(money).Div(decimal.NewFromInt(100))
	return major.StringFixed(int32(c.CurrencyDecimalPlaces())), nil
}

// CurrencyDecimalPlaces resolves the driver currency's minor-unit exponent.
func (c *Core) CurrencyDecimalPlaces() int {
	return CurrencyDecimals(c.Currency)
}

// BuildURL concatenates a resolved base endpoint with a path fragment.
func (c *Core) BuildURL(base, endpoint string) string {
	if endpoint == "" {
		return base
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(endpoint, "/")
}

// CommitRequest describes exactly one provider call. At most one of JSON,
// Form and Query may be set; Query-only requests carry no body.
type CommitRequest struct {
	Method string
	URL    string

	// JSON is serialized as an application/json body.
	JSON map[string]any
	// Form is serialized as an application/x-www-form-urlencoded body.
	Form url.Values
	// Query is appended to the URL.
	Query url.Values

	Header   http.Header
	Username string // basic auth, sent when non-empty
	Password string
	Bearer   string // bearer auth, sent when non-empty
}

// RawReply is the untouched transport result of a commit.
type RawReply struct {
	StatusCode int
	Body       []byte
}

// OK reports transport-level success. Drivers still have to check the body
// for provider-native error markers that override it.
func (r *RawReply) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// JSON decodes the body as a JSON object. ok is false for anything else,
// including JSON scalars and arrays.
func (r *RawReply) JSON() (map[string]any, bool) {
	var body map[string]any
	if err := json.Unmarshal(r.Body, &body); err != nil || body == nil {
		return nil, false
	}
	return body, true
}

// FormValues decodes the body with query-string semantics, as used by NVP
// and form-encoded provider replies.
func (r *RawReply) FormValues() (url.Values, bool) {
	values, err := url.ParseQuery(string(r.Body))
	if err != nil || len(values) == 0 {
		return nil, false
	}
	return values, true
}

// Commit performs exactly one blocking HTTP call. Business failures come
// back as a RawReply with whatever status and body the provider produced;
// the error return is reserved for transport and context failures. The
// request parameters are serialized once and never mutated.
func (c *Core) Commit(ctx context.Context, req CommitRequest) (*RawReply, error) {
	var bodyReader io.Reader
	var contentType string

	switch {
	case req.JSON != nil:
		data, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, fmt.Errorf("error marshalling json: %w", err)
		}
		bodyReader = bytes.NewReader(data)
		contentType = "application/json"
	case req.Form != nil:
		bodyReader = strings.NewReader(req.Form.Encode())
		contentType = "application/x-www-form-urlencoded"
	}

	target := req.URL
	if len(req.Query) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if req.Username != "" {
		httpReq.SetBasicAuth(req.Username, req.Password)
	}
	if req.Bearer != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Bearer)
	}

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	c.logger().DebugContext(ctx, "gateway commit",
		"gateway", c.Name,
		"method", req.Method,
		"url", req.URL,
		"status", resp.StatusCode,
	)

	return &RawReply{StatusCode: resp.StatusCode, Body: body}, nil
}

// InvalidResponse degrades a malformed or non-decodable provider body into
// a failed Response. Any call that reached the network must hand the caller
// a Response, never a parser crash.
func (c *Core) InvalidResponse(reply *RawReply) *Response {
	c.logger().Warn("unparseable gateway response",
		"gateway", c.Name,
		"status", reply.StatusCode,
	)
	raw := map[string]any{
		"status_code": reply.StatusCode,
		"body":        string(reply.Body),
	}
	return NewResponse(raw).Map(Attributes{
		Success:   false,
		Test:      c.Test,
		Message:   "API response not valid",
		Status:    StatusFailed,
		ErrorCode: ErrCodeProcessing,
	})
}

func (c *Core) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// RawList extracts an ordered slice of object payloads from a provider
// reply, preserving provider order. Non-object elements are skipped.
func RawList(body map[string]any, key string) []map[string]any {
	items, _ := body[key].([]any)
	list := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			list = append(list, m)
		}
	}
	return list
}

// ValuesMap flattens parsed query-string values into a raw payload map,
// keeping the first value per key.
func ValuesMap(values url.Values) map[string]any {
	raw := make(map[string]any, len(values))
	for key := range values {
		raw[key] = values.Get(key)
	}
	return raw
}
