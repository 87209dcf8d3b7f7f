package flickr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flickrServer отвечает JSONP-обёрткой вокруг body, используя имя callback из запроса.
func flickrServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cb := r.URL.Query().Get("jsoncallback")
		if cb == "" {
			http.Error(w, "no callback", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/javascript")
		_, _ = w.Write([]byte(cb + "(" + body + ")"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchViaCallback(t *testing.T) {
	srv := flickrServer(t, `{"photos":{"photo":[]},"stat":"ok"}`)
	tr := NewCallbackTransport(NewHTTPClient(5*time.Second), discard)

	payload, err := tr.FetchViaCallback(context.Background(), srv.URL+"/services/rest/?format=json", "jsoncallback")
	require.NoError(t, err)
	assert.JSONEq(t, `{"photos":{"photo":[]},"stat":"ok"}`, string(payload))
}

func TestFetchViaCallbackUniqueNames(t *testing.T) {
	var names []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cb := r.URL.Query().Get("cb")
		names = append(names, cb)
		_, _ = w.Write([]byte(cb + "({});"))
	}))
	defer srv.Close()

	tr := NewCallbackTransport(srv.Client(), discard)
	for i := 0; i < 2; i++ {
		_, err := tr.FetchViaCallback(context.Background(), srv.URL, "cb")
		require.NoError(t, err)
	}

	require.Len(t, names, 2)
	assert.True(t, strings.HasPrefix(names[0], "jsonp_"))
	assert.NotEqual(t, names[0], names[1])
}

func TestFetchViaCallbackStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewCallbackTransport(srv.Client(), discard).FetchViaCallback(context.Background(), srv.URL, "jsoncallback")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "down for maintenance")
}

func TestFetchViaCallbackCancelled(t *testing.T) {
	srv := flickrServer(t, `{}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCallbackTransport(srv.Client(), discard).FetchViaCallback(ctx, srv.URL, "jsoncallback")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUnwrapCallback(t *testing.T) {
	table := []struct {
		name   string
		body   string
		expect string
		err    bool
	}{
		{name: "plain", body: `cb({"a":1})`, expect: `{"a":1}`},
		{name: "semicolon and whitespace", body: "\n cb( {\"a\":1} );\n", expect: `{"a":1}`},
		{name: "comment prefix", body: `/**/cb({"a":1})`, expect: `{"a":1}`},
		{name: "other callback", body: `jsonFlickrApi({"a":1})`, err: true},
		{name: "no closing paren", body: `cb({"a":1}`, err: true},
		{name: "invalid json", body: `cb({"a":)`, err: true},
		{name: "bare json", body: `{"a":1}`, err: true},
	}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			payload, err := unwrapCallback([]byte(tc.body), "cb")
			if tc.err {
				assert.ErrorIs(t, err, ErrMalformedPayload)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expect, string(payload))
		})
	}
}

func TestClientAgainstServer(t *testing.T) {
	srv := flickrServer(t, `{"photos":{"page":1,"pages":1,"perpage":100,"total":1,"photo":[
		{"id":"42","secret":"abc","server":"7","farm":9,"width_o":"1600","height_o":"900"}
	]},"stat":"ok"}`)

	c := NewClient(
		ClientConfig{APIKey: "k", Endpoint: srv.URL + "/services/rest/"},
		NewCallbackTransport(srv.Client(), discard),
		discard,
	)

	photos, err := c.Search(context.Background(), "sunset")
	require.NoError(t, err)
	require.Len(t, photos.Photo, 1)
	assert.Equal(t, "42", photos.Photo[0].ID)
	assert.EqualValues(t, 1600, photos.Photo[0].OriginalWidth)
}

func TestClientErrorsHideAPIKey(t *testing.T) {
	const key = "SUPERSECRETKEY"
	c := NewClient(
		ClientConfig{APIKey: key, Endpoint: "http://127.0.0.1:1/services/rest/"},
		NewCallbackTransport(NewHTTPClient(2*time.Second), discard),
		discard,
	)

	_, err := c.Search(context.Background(), "sunset")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), key)

	var failed *RequestFailedError
	require.ErrorAs(t, err, &failed)
	var urlErr *url.Error
	require.ErrorAs(t, err, &urlErr)
	assert.Contains(t, urlErr.URL, "api_key=REDACTED")
	assert.Contains(t, urlErr.URL, "text=sunset")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Search(ctx, "sunset")
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotContains(t, err.Error(), key)
}

func TestRedactURL(t *testing.T) {
	assert.Equal(t, "http://h/rest/?api_key=REDACTED&text=a", redactURL("http://h/rest/?api_key=s3cret&text=a"))
	assert.Equal(t, "http://h/rest/?text=a", redactURL("http://h/rest/?text=a"))
	assert.Equal(t, "<redacted>", redactURL("http://[::1"))
}
