package flickr

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"testing"

	"github.com/GoArmGo/FlickrSearch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type fetcherStub struct {
	payload string
	err     error

	calls int
	url   string
	param string
}

func (f *fetcherStub) FetchViaCallback(_ context.Context, rawURL, param string) (json.RawMessage, error) {
	f.calls++
	f.url = rawURL
	f.param = param
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.payload), nil
}

func newTestClient(f *fetcherStub) *Client {
	return NewClient(ClientConfig{APIKey: "test-key"}, f, discard)
}

func TestSearchReturnsPhotosField(t *testing.T) {
	f := &fetcherStub{payload: `{"photos":{"photo":[{"id":"1","secret":"s","server":"2","farm":3}]},"stat":"ok"}`}

	photos, err := newTestClient(f).Search(context.Background(), "cats")
	require.NoError(t, err)

	assert.Equal(t, &domain.Photos{Photo: []domain.Photo{{ID: "1", Secret: "s", Server: "2", Farm: "3"}}}, photos)
	assert.Equal(t, 1, f.calls)
	assert.Equal(t, "jsoncallback", f.param)
}

func TestSearchPassesPaginationThrough(t *testing.T) {
	f := &fetcherStub{payload: `{"photos":{"page":1,"pages":12,"perpage":100,"total":"1187","photo":[]},"stat":"ok"}`}

	photos, err := newTestClient(f).Search(context.Background(), "cats")
	require.NoError(t, err)

	assert.Equal(t, 12, photos.Pages)
	assert.Equal(t, 100, photos.PerPage)
	assert.Equal(t, json.Number("1187"), photos.Total)
	assert.Empty(t, photos.Photo)
}

func TestSearchURL(t *testing.T) {
	f := &fetcherStub{payload: `{"photos":{"photo":[]},"stat":"ok"}`}
	query := "rock & roll #1 + more"

	_, err := newTestClient(f).Search(context.Background(), query)
	require.NoError(t, err)

	u, err := url.Parse(f.url)
	require.NoError(t, err)
	assert.Equal(t, "api.flickr.com", u.Host)
	assert.Equal(t, "/services/rest/", u.Path)
	assert.Contains(t, u.RawQuery, "text="+url.QueryEscape(query))

	q := u.Query()
	assert.Equal(t, "flickr.photos.search", q.Get("method"))
	assert.Equal(t, "test-key", q.Get("api_key"))
	assert.Equal(t, query, q.Get("text"))
	assert.Equal(t, "interestingness-desc", q.Get("sort"))
	assert.Equal(t, "o_dims,url_o", q.Get("extras"))
	assert.Equal(t, "json", q.Get("format"))
	assert.Len(t, q, 6)
}

func TestSearchCustomEndpointAndParam(t *testing.T) {
	f := &fetcherStub{payload: `{"photos":{"photo":[]},"stat":"ok"}`}
	c := NewClient(ClientConfig{APIKey: "k", Endpoint: "http://127.0.0.1:9999/rest/", CallbackParam: "cb"}, f, discard)

	_, err := c.Search(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "cb", f.param)

	u, err := url.Parse(f.url)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", u.Host)
}

func TestSearchTransportFailureKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	f := &fetcherStub{err: cause}

	photos, err := newTestClient(f).Search(context.Background(), "cats")
	assert.Nil(t, photos)
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)

	var rf *RequestFailedError
	require.ErrorAs(t, err, &rf)
	assert.Equal(t, "cats", rf.Query)
	assert.Same(t, cause, rf.Err)
}

func TestSearchAPIError(t *testing.T) {
	f := &fetcherStub{payload: `{"stat":"fail","code":100,"message":"Invalid API Key (Key has invalid format)"}`}

	_, err := newTestClient(f).Search(context.Background(), "cats")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 100, apiErr.Code)
	assert.Equal(t, "Invalid API Key (Key has invalid format)", apiErr.Message)

	var rf *RequestFailedError
	assert.ErrorAs(t, err, &rf)
}

func TestSearchMalformedPayload(t *testing.T) {
	table := []struct {
		name    string
		payload string
	}{
		{name: "wrong shape", payload: `{"photos":[1,2,3],"stat":"ok"}`},
		{name: "missing photos", payload: `{"stat":"ok"}`},
		{name: "not an object", payload: `"ok"`},
	}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newTestClient(&fetcherStub{payload: tc.payload}).Search(context.Background(), "cats")
			assert.ErrorIs(t, err, ErrMalformedPayload)
		})
	}
}

func TestSearchDoesNotCache(t *testing.T) {
	f := &fetcherStub{payload: `{"photos":{"photo":[]},"stat":"ok"}`}
	c := newTestClient(f)

	for i := 0; i < 3; i++ {
		_, err := c.Search(context.Background(), "same")
		require.NoError(t, err)
	}
	assert.Equal(t, 3, f.calls)
}
