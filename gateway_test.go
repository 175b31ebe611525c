package pagos_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagos-go/pagos"
)

func testCore(currency string, format pagos.MoneyFormat) *pagos.Core {
	return &pagos.Core{
		Name:     "Test",
		Currency: currency,
		Format:   format,
		Test:     true,
		HTTP:     http.DefaultClient,
		Logger:   slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})),
	}
}

// ============================================================================
// AMOUNT CONVERSION
// ============================================================================

func TestCore_Amount(t *testing.T) {
	tests := []struct {
		name     string
		currency string
		format   pagos.MoneyFormat
		money    int64
		want     string
	}{
		{"cents pass through untouched", "USD", pagos.MoneyCents, 1000, "1000"},
		{"cents zero", "USD", pagos.MoneyCents, 0, "0"},
		{"dollars two decimals", "USD", pagos.MoneyDollars, 1000, "10.00"},
		{"dollars keep sub-unit precision", "MXN", pagos.MoneyDollars, 1025, "10.25"},
		{"dollars single cent", "USD", pagos.MoneyDollars, 1, "0.01"},
		{"zero-decimal currency", "JPY", pagos.MoneyDollars, 1000, "10"},
		{"three-decimal currency", "KWD", pagos.MoneyDollars, 1000, "10.000"},
		{"unknown currency defaults to two", "XXX", pagos.MoneyDollars, 550, "5.50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core := testCore(tt.currency, tt.format)
			got, err := core.Amount(tt.money)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCore_Amount_NegativeIsInvalidArgument(t *testing.T) {
	for _, format := range []pagos.MoneyFormat{pagos.MoneyCents, pagos.MoneyDollars} {
		core := testCore("USD", format)
		_, err := core.Amount(-1)
		require.Error(t, err)
		_, ok := pagos.IsInvalidArgument(err)
		assert.True(t, ok)
	}
}

func TestCore_BuildURL(t *testing.T) {
	core := testCore("USD", pagos.MoneyCents)

	assert.Equal(t, "https://api.test.com/v1/charges", core.BuildURL("https://api.test.com", "v1/charges"))
	assert.Equal(t, "https://api.test.com/v1/charges", core.BuildURL("https://api.test.com/", "/v1/charges"))
	assert.Equal(t, "https://api.test.com", core.BuildURL("https://api.test.com", ""))
}

// ============================================================================
// COMMIT
// ============================================================================

func TestCore_Commit_JSONBodyAndBearerAuth(t *testing.T) {
	var got struct {
		contentType   string
		authorization string
		body          []byte
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.contentType = r.Header.Get("Content-Type")
		got.authorization = r.Header.Get("Authorization")
		got.body, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"id":"ch_1"}`))
	}))
	defer server.Close()

	core := testCore("USD", pagos.MoneyCents)
	reply, err := core.Commit(context.Background(), pagos.CommitRequest{
		Method: http.MethodPost,
		URL:    server.URL,
		JSON:   map[string]any{"amount": "1000"},
		Bearer: "sk_test_123",
	})

	require.NoError(t, err)
	assert.True(t, reply.OK())
	assert.Equal(t, "application/json", got.contentType)
	assert.Equal(t, "Bearer sk_test_123", got.authorization)
	assert.JSONEq(t, `{"amount":"1000"}`, string(got.body))

	body, ok := reply.JSON()
	require.True(t, ok)
	assert.Equal(t, "ch_1", pagos.StringField(body, "id"))
}

func TestCore_Commit_FormBodyAndBasicAuth(t *testing.T) {
	var got struct {
		contentType string
		username    string
		password    string
		form        url.Values
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.contentType = r.Header.Get("Content-Type")
		got.username, got.password, _ = r.BasicAuth()
		require.NoError(t, r.ParseForm())
		got.form = r.PostForm
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	form := url.Values{}
	form.Set("amount", "1000")
	form.Set("currency", "usd")

	core := testCore("USD", pagos.MoneyCents)
	reply, err := core.Commit(context.Background(), pagos.CommitRequest{
		Method:   http.MethodPost,
		URL:      server.URL,
		Form:     form,
		Username: "sk_test_123",
		Password: "secret",
	})

	require.NoError(t, err)
	assert.True(t, reply.OK())
	assert.Equal(t, "application/x-www-form-urlencoded", got.contentType)
	assert.Equal(t, "sk_test_123", got.username)
	assert.Equal(t, "secret", got.password)
	assert.Equal(t, "1000", got.form.Get("amount"))
	assert.Equal(t, "usd", got.form.Get("currency"))
}

func TestCore_Commit_QueryOnlyRequestHasNoBody(t *testing.T) {
	var got struct {
		query       url.Values
		contentType string
		body        []byte
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.query = r.URL.Query()
		got.contentType = r.Header.Get("Content-Type")
		got.body, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	query := url.Values{}
	query.Set("limit", "10")

	core := testCore("USD", pagos.MoneyCents)
	_, err := core.Commit(context.Background(), pagos.CommitRequest{
		Method: http.MethodGet,
		URL:    server.URL,
		Query:  query,
	})

	require.NoError(t, err)
	assert.Equal(t, "10", got.query.Get("limit"))
	assert.Empty(t, got.contentType)
	assert.Empty(t, got.body)
}

func TestCore_Commit_ExtraHeadersAreForwarded(t *testing.T) {
	var accept, language string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept = r.Header.Get("Accept")
		language = r.Header.Get("Accept-Language")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	header := http.Header{}
	header.Set("Accept", "application/vnd.conekta-v2.0.0+json")
	header.Set("Accept-Language", "es")

	core := testCore("MXN", pagos.MoneyCents)
	_, err := core.Commit(context.Background(), pagos.CommitRequest{
		Method: http.MethodPost,
		URL:    server.URL,
		JSON:   map[string]any{},
		Header: header,
	})

	require.NoError(t, err)
	assert.Equal(t, "application/vnd.conekta-v2.0.0+json", accept)
	assert.Equal(t, "es", language)
}

// A provider decline is transported as 4xx/5xx plus a body; Commit must
// return it, not raise it.
func TestCore_Commit_NonSuccessStatusIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"code":"card_declined"}}`))
	}))
	defer server.Close()

	core := testCore("USD", pagos.MoneyCents)
	reply, err := core.Commit(context.Background(), pagos.CommitRequest{
		Method: http.MethodPost,
		URL:    server.URL,
		JSON:   map[string]any{},
	})

	require.NoError(t, err)
	assert.False(t, reply.OK())
	assert.Equal(t, http.StatusPaymentRequired, reply.StatusCode)

	body, ok := reply.JSON()
	require.True(t, ok)
	assert.NotNil(t, pagos.MapField(body, "error"))
}

func TestCore_Commit_TransportFailureIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	core := testCore("USD", pagos.MoneyCents)
	_, err := core.Commit(context.Background(), pagos.CommitRequest{
		Method: http.MethodPost,
		URL:    server.URL,
		JSON:   map[string]any{},
	})

	require.Error(t, err)
}

func TestCore_Commit_HonorsContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	core := testCore("USD", pagos.MoneyCents)
	_, err := core.Commit(ctx, pagos.CommitRequest{
		Method: http.MethodGet,
		URL:    server.URL,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

// ============================================================================
// RAW REPLIES
// ============================================================================

func TestRawReply_JSON(t *testing.T) {
	reply := &pagos.RawReply{StatusCode: 200, Body: []byte(`{"id":"ch_1"}`)}
	body, ok := reply.JSON()
	require.True(t, ok)
	assert.Equal(t, "ch_1", pagos.StringField(body, "id"))

	for _, raw := range []string{"", "<html>oops</html>", `"scalar"`, `[1,2]`, "null"} {
		_, ok := (&pagos.RawReply{StatusCode: 200, Body: []byte(raw)}).JSON()
		assert.False(t, ok, "body %q", raw)
	}
}

func TestRawReply_FormValues(t *testing.T) {
	reply := &pagos.RawReply{StatusCode: 200, Body: []byte("ACK=Success&TOKEN=EC-123")}
	values, ok := reply.FormValues()
	require.True(t, ok)
	assert.Equal(t, "Success", values.Get("ACK"))
	assert.Equal(t, "EC-123", values.Get("TOKEN"))

	_, ok = (&pagos.RawReply{StatusCode: 200, Body: []byte("")}).FormValues()
	assert.False(t, ok)
}

func TestCore_InvalidResponse(t *testing.T) {
	core := testCore("USD", pagos.MoneyCents)
	reply := &pagos.RawReply{StatusCode: 502, Body: []byte("<html>Bad Gateway</html>")}

	response := core.InvalidResponse(reply)

	assert.False(t, response.Success())
	assert.Equal(t, "API response not valid", response.Message())
	assert.Equal(t, pagos.StatusFailed, response.Status())
	assert.Equal(t, pagos.ErrCodeProcessing, response.ErrorCode())
	assert.True(t, response.Test())

	statusCode, err := response.Raw("status_code")
	require.NoError(t, err)
	assert.Equal(t, 502, statusCode)

	body, err := response.Raw("body")
	require.NoError(t, err)
	assert.Equal(t, "<html>Bad Gateway</html>", body)
}

// ============================================================================
// PAYLOAD HELPERS
// ============================================================================

func TestRawList(t *testing.T) {
	body := map[string]any{
		"data": []any{
			map[string]any{"id": "first"},
			"not-an-object",
			map[string]any{"id": "second"},
		},
	}

	items := pagos.RawList(body, "data")
	require.Len(t, items, 2)
	assert.Equal(t, "first", pagos.StringField(items[0], "id"))
	assert.Equal(t, "second", pagos.StringField(items[1], "id"))

	assert.Empty(t, pagos.RawList(body, "missing"))
	assert.Empty(t, pagos.RawList(map[string]any{"data": "scalar"}, "data"))
}

func TestValuesMap(t *testing.T) {
	values := url.Values{}
	values.Set("response", "ok")
	values.Add("tags", "a")
	values.Add("tags", "b")

	raw := pagos.ValuesMap(values)
	assert.Equal(t, "ok", raw["response"])
	assert.Equal(t, "a", raw["tags"])
}
