package callback

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/revstack/session/oauth"
)

// Redirect is the parsed form of an incoming provider redirect URL.
type Redirect struct {
	// Tokens is the extracted pair. Only set when ProviderError is nil.
	Tokens oauth.TokenPair

	// ReturnTo is the post-success navigation target, defaulting to "/".
	ReturnTo string

	// ProviderError is set when the provider reported an authentication
	// error instead of issuing tokens.
	ProviderError *oauth.ProviderError
}

// ParseRedirectURL converts a full redirect URL into a Redirect. Providers
// place tokens in the hash fragment by convention (keeping them out of server
// logs), so the fragment is parsed first; the query string is only consulted
// when the fragment lacks a complete pair. When neither source holds a
// complete pair the result is oauth.ErrMissingTokens.
func ParseRedirectURL(rawURL string) (*Redirect, error) {
	const op = "callback.ParseRedirectURL"
	if rawURL == "" {
		return nil, fmt.Errorf("%s: redirect url is empty: %w", op, oauth.ErrInvalidParameter)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%s: unable to parse redirect url: %w", op, err)
	}

	// a malformed fragment is treated as an empty one
	frag, _ := url.ParseQuery(u.Fragment)
	query := u.Query()

	if code := firstOf(frag, query, "error"); code != "" {
		return &Redirect{
			ProviderError: &oauth.ProviderError{
				Code:        code,
				Description: firstOf(frag, query, "error_description"),
				Uri:         firstOf(frag, query, "error_uri"),
			},
		}, nil
	}

	pair := pairFrom(frag)
	if !pair.Valid() {
		pair = pairFrom(query)
	}
	if !pair.Valid() {
		return nil, fmt.Errorf("%s: no complete token pair in fragment or query: %w", op, oauth.ErrMissingTokens)
	}

	return &Redirect{
		Tokens:   pair,
		ReturnTo: sanitizeReturnTo(firstOf(frag, query, "return_to")),
	}, nil
}

func pairFrom(v url.Values) oauth.TokenPair {
	return oauth.TokenPair{
		AccessToken:  oauth.AccessToken(v.Get("access_token")),
		RefreshToken: oauth.RefreshToken(v.Get("refresh_token")),
	}
}

func firstOf(frag, query url.Values, key string) string {
	if v := frag.Get(key); v != "" {
		return v
	}
	return query.Get(key)
}

// sanitizeReturnTo confines the post-success navigation to a relative path
// within the application; anything else falls back to the application root.
func sanitizeReturnTo(target string) string {
	if target == "" {
		return "/"
	}
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return "/"
	}
	return target
}
