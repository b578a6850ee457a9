// Copyright (c) Revstack, Inc.
// SPDX-License-Identifier: MPL-2.0

package callback

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/revstack/session/oauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yhat/scrape"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// testExchanger records Exchange calls and optionally fails them.
type testExchanger struct {
	mu       sync.Mutex
	calls    []oauth.TokenPair
	failWith error
}

func (e *testExchanger) Exchange(ctx context.Context, pair oauth.TokenPair) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, pair)
	return e.failWith
}

func (e *testExchanger) callCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.calls)
}

func testSuccessFn(returnTo string, w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintf(w, "success %s", returnTo)
}

func testFailFn(perr *oauth.ProviderError, e error, w http.ResponseWriter, req *http.Request) {
	w.WriteHeader(http.StatusInternalServerError)
	switch {
	case perr != nil:
		fmt.Fprintf(w, "provider %s", perr.Code)
	case e != nil:
		fmt.Fprintf(w, "error %s", e.Error())
	}
}

func TestCompletion(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := &testExchanger{}

	tests := []struct {
		name      string
		e         oauth.Exchanger
		sFn       SuccessResponseFunc
		eFn       ErrorResponseFunc
		wantErr   bool
		wantIsErr error
	}{
		{"valid", e, testSuccessFn, testFailFn, false, nil},
		{"nil-exchanger", nil, testSuccessFn, testFailFn, true, oauth.ErrNilParameter},
		{"nil-sFn", e, nil, testFailFn, true, oauth.ErrNilParameter},
		{"nil-eFn", e, testSuccessFn, nil, true, oauth.ErrNilParameter},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert, require := assert.New(t), require.New(t)
			got, err := Completion(ctx, tt.e, tt.sFn, tt.eFn)
			if tt.wantErr {
				require.Error(err)
				assert.True(errors.Is(err, tt.wantIsErr))
				return
			}
			require.NoError(err)
			assert.NotNil(got)
		})
	}
}

func Test_CompletionResponses(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	post := func(t *testing.T, h http.HandlerFunc, form url.Values) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest(http.MethodPost, "/auth/callback", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		h(w, req)
		return w
	}

	t.Run("posted-pair-is-exchanged-once", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		e := &testExchanger{}
		h, err := Completion(ctx, e, testSuccessFn, testFailFn)
		require.NoError(err)

		w := post(t, h, url.Values{
			"access_token":  {"abc"},
			"refresh_token": {"xyz"},
		})
		assert.Equal(http.StatusOK, w.Code)
		assert.Equal("success /", w.Body.String())
		require.Equal(1, e.callCount())
		assert.Equal(oauth.AccessToken("abc"), e.calls[0].AccessToken)
		assert.Equal(oauth.RefreshToken("xyz"), e.calls[0].RefreshToken)
	})

	t.Run("body-pair-wins-over-query-pair", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		e := &testExchanger{}
		h, err := Completion(ctx, e, testSuccessFn, testFailFn)
		require.NoError(err)

		form := url.Values{
			"access_token":  {"frag-a"},
			"refresh_token": {"frag-r"},
		}
		req := httptest.NewRequest(
			http.MethodPost,
			"/auth/callback?access_token=query-a&refresh_token=query-r",
			strings.NewReader(form.Encode()),
		)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		h(w, req)

		assert.Equal(http.StatusOK, w.Code)
		require.Equal(1, e.callCount())
		assert.Equal(oauth.AccessToken("frag-a"), e.calls[0].AccessToken)
	})

	t.Run("query-pair-on-get", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		e := &testExchanger{}
		h, err := Completion(ctx, e, testSuccessFn, testFailFn)
		require.NoError(err)

		req := httptest.NewRequest(http.MethodGet, "/auth/callback?access_token=abc&refresh_token=xyz&return_to=%2Fmanuscripts%2F7", nil)
		w := httptest.NewRecorder()
		h(w, req)

		assert.Equal("success /manuscripts/7", w.Body.String())
		assert.Equal(1, e.callCount())
	})

	t.Run("provider-error-short-circuits", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		e := &testExchanger{}
		h, err := Completion(ctx, e, testSuccessFn, testFailFn)
		require.NoError(err)

		w := post(t, h, url.Values{
			"error":         {"access_denied"},
			"access_token":  {"abc"},
			"refresh_token": {"xyz"},
		})
		assert.Equal("provider access_denied", w.Body.String())
		assert.Equal(0, e.callCount())
	})

	t.Run("missing-pair-makes-no-exchange", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		e := &testExchanger{}
		h, err := Completion(ctx, e, testSuccessFn, testFailFn)
		require.NoError(err)

		w := post(t, h, url.Values{"access_token": {"abc"}})
		assert.Contains(w.Body.String(), oauth.ErrMissingTokens.Error())
		assert.Equal(0, e.callCount())
	})

	t.Run("exchange-failure-reason-is-surfaced", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		e := &testExchanger{failWith: errors.New("backend rejected the pair")}
		h, err := Completion(ctx, e, testSuccessFn, testFailFn)
		require.NoError(err)

		w := post(t, h, url.Values{
			"access_token":  {"abc"},
			"refresh_token": {"xyz"},
		})
		assert.Contains(w.Body.String(), "backend rejected the pair")
		assert.Equal(1, e.callCount())
	})

	t.Run("get-without-tokens-serves-relay-page", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		e := &testExchanger{}
		h, err := Completion(ctx, e, testSuccessFn, testFailFn)
		require.NoError(err)

		req := httptest.NewRequest(http.MethodGet, "/auth/callback", nil)
		w := httptest.NewRecorder()
		h(w, req)

		assert.Equal(http.StatusOK, w.Code)
		root, err := html.Parse(w.Body)
		require.NoError(err)
		_, ok := scrape.Find(root, scrape.ByTag(atom.Script))
		assert.True(ok)
		assert.Equal(0, e.callCount())
	})

	t.Run("get-without-tokens-without-relay", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		e := &testExchanger{}
		h, err := Completion(ctx, e, testSuccessFn, testFailFn, WithoutFragmentRelay())
		require.NoError(err)

		req := httptest.NewRequest(http.MethodGet, "/auth/callback", nil)
		w := httptest.NewRecorder()
		h(w, req)

		assert.Contains(w.Body.String(), oauth.ErrMissingTokens.Error())
		assert.Equal(0, e.callCount())
	})
}

// Test_CompletionEndToEnd drives the full flow the way a browser would:
// fragment relay page, reposted tokens, exchange, then the transition page
// pointing at the application root.
func Test_CompletionEndToEnd(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)
	ctx := context.Background()

	e := &testExchanger{}
	h, err := Completion(ctx, e, DefaultSuccessResponse(), DefaultErrorResponse())
	require.NoError(err)
	srv := httptest.NewServer(h)
	defer srv.Close()

	// the fragment #access_token=abc&refresh_token=xyz never reaches the
	// server; the relay page reposts it the way a browser does
	resp, err := http.Get(srv.URL + "/auth/callback")
	require.NoError(err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(err)
	resp.Body.Close()
	require.Contains(string(body), "URLSearchParams")

	form := url.Values{
		"access_token":  {"abc"},
		"refresh_token": {"xyz"},
	}
	resp, err = http.Post(srv.URL+"/auth/callback", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(err)
	defer resp.Body.Close()
	require.Equal(http.StatusOK, resp.StatusCode)

	root, err := html.Parse(resp.Body)
	require.NoError(err)
	var refresh string
	for _, meta := range scrape.FindAll(root, scrape.ByTag(atom.Meta)) {
		if scrape.Attr(meta, "http-equiv") == "refresh" {
			refresh = scrape.Attr(meta, "content")
		}
	}
	assert.Equal("1.5;url=/", refresh)
	assert.Equal(1, e.callCount())
}

// Test_CompletionErrorPage asserts the rendered recovery page for an expired
// session redirect.
func Test_CompletionErrorPage(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)
	ctx := context.Background()

	e := &testExchanger{}
	h, err := Completion(ctx, e, DefaultSuccessResponse(), DefaultErrorResponse())
	require.NoError(err)

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?error=invalid_state&error_description=anything", nil)
	w := httptest.NewRecorder()
	h(w, req)

	require.Equal(http.StatusUnauthorized, w.Code)
	root, err := html.Parse(w.Body)
	require.NoError(err)

	h1, ok := scrape.Find(root, scrape.ByTag(atom.H1))
	require.True(ok)
	assert.Equal("Session Expired", scrape.Text(h1))

	home, ok := scrape.Find(root, scrape.ById("return-home"))
	require.True(ok)
	assert.Equal("/", scrape.Attr(home, "href"))

	_, ok = scrape.Find(root, scrape.ById("go-back"))
	assert.True(ok)
	assert.Equal(0, e.callCount())
}
