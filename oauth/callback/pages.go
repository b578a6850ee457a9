package callback

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/revstack/session/oauth"
)

// relayPage reposts the fragment parameters in the request body, merged over
// the query-string parameters, so the server-side handler finally sees what
// the provider put in the URL hash.
const relayPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Signing in&hellip;</title></head>
<body>
<noscript>JavaScript is required to complete sign-in.</noscript>
<script>
(function () {
	var params = new URLSearchParams(window.location.search);
	var frag = new URLSearchParams(window.location.hash.replace(/^#/, ""));
	frag.forEach(function (v, k) { params.set(k, v); });
	var form = document.createElement("form");
	form.method = "POST";
	form.action = window.location.pathname;
	params.forEach(function (v, k) {
		var input = document.createElement("input");
		input.type = "hidden";
		input.name = k;
		input.value = v;
		form.appendChild(input);
	});
	document.body.appendChild(form);
	form.submit();
})();
</script>
</body>
</html>
`

func writeRelayPage(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(relayPage))
}

var errorPageTmpl = template.Must(template.New("oauth-error").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Message}}</p>
<p>
<a id="return-home" href="{{.HomeURL}}">Return home</a>
<a id="go-back" href="javascript:history.back()">Go back</a>
</p>
</body>
</html>
`))

var successPageTmpl = template.Must(template.New("oauth-success").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="{{.PauseSeconds}};url={{.ReturnTo}}">
<title>Signed in</title>
</head>
<body>
<h1>Signed in</h1>
<p>Taking you back to <a href="{{.ReturnTo}}">your work</a>&hellip;</p>
</body>
</html>
`))

// WriteErrorPage renders the recovery page for a failed completion run with
// its return-home and go-back actions.
func WriteErrorPage(w http.ResponseWriter, status int, display oauth.ErrorDisplay) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return errorPageTmpl.Execute(w, struct {
		Title   string
		Message string
		HomeURL string
	}{
		Title:   display.Title,
		Message: display.Message,
		HomeURL: "/",
	})
}

// WriteSuccessPage renders the transition view shown after a successful
// exchange; the page navigates itself to returnTo once DefaultSuccessPause
// has elapsed.
func WriteSuccessPage(w http.ResponseWriter, returnTo string) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return successPageTmpl.Execute(w, struct {
		PauseSeconds string
		ReturnTo     string
	}{
		PauseSeconds: fmt.Sprintf("%g", DefaultSuccessPause.Seconds()),
		ReturnTo:     returnTo,
	})
}

// DefaultSuccessResponse returns a SuccessResponseFunc which renders the
// standard transition page.
func DefaultSuccessResponse() SuccessResponseFunc {
	return func(returnTo string, w http.ResponseWriter, req *http.Request) {
		_ = WriteSuccessPage(w, returnTo)
	}
}

// DefaultErrorResponse returns an ErrorResponseFunc which renders the
// standard recovery page: provider-reported errors map through
// oauth.Describe, a redirect without a complete pair is a 400, and a failed
// exchange is a 502 whose message carries the collaborator's reason.
func DefaultErrorResponse() ErrorResponseFunc {
	return func(perr *oauth.ProviderError, e error, w http.ResponseWriter, req *http.Request) {
		switch {
		case perr != nil:
			_ = WriteErrorPage(w, http.StatusUnauthorized, oauth.Describe(perr.Code, perr.Description))
		case errors.Is(e, oauth.ErrMissingTokens):
			_ = WriteErrorPage(w, http.StatusBadRequest, oauth.ErrorDisplay{
				Title:   "Sign-in Failed",
				Message: "The sign-in response was missing its credentials. Please start the sign-in flow again.",
			})
		case e != nil:
			status := http.StatusInternalServerError
			if errors.Is(e, oauth.ErrExchangeFailed) {
				status = http.StatusBadGateway
			}
			_ = WriteErrorPage(w, status, oauth.ErrorDisplay{
				Title:   "Sign-in Failed",
				Message: e.Error(),
			})
		default:
			_ = WriteErrorPage(w, http.StatusInternalServerError, oauth.ErrorDisplay{
				Title:   "Sign-in Failed",
				Message: "Something went wrong during sign-in. Please try again.",
			})
		}
	}
}
