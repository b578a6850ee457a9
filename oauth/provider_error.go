package oauth

import (
	"fmt"
)

// ProviderError represents an OAuth2 authentication error response reported
// by the identity provider on the redirect. See:
// https://www.rfc-editor.org/rfc/rfc6749#section-4.1.2.1
type ProviderError struct {
	Code        string
	Description string
	Uri         string
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Description == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// ErrorDisplay is a human-readable rendering of a provider error, suitable
// for the recovery page shown to the user.
type ErrorDisplay struct {
	Title   string
	Message string
}

// Describe maps a provider error code to its display copy. The mapping is
// total: known codes have fixed copy independent of any error_description
// the provider sent along, and unknown codes fall back to the raw
// description.
func Describe(code, description string) ErrorDisplay {
	switch code {
	case "access_denied":
		return ErrorDisplay{
			Title:   "Access Denied",
			Message: "You declined the sign-in request. You can try signing in again whenever you're ready.",
		}
	case "invalid_request":
		return ErrorDisplay{
			Title:   "Invalid Request",
			Message: "The sign-in request was malformed. Please start the sign-in flow again.",
		}
	case "temporarily_unavailable":
		return ErrorDisplay{
			Title:   "Service Unavailable",
			Message: "The sign-in service is temporarily unavailable. Please try again in a few minutes.",
		}
	case "server_error":
		return ErrorDisplay{
			Title:   "Server Error",
			Message: "The sign-in service reported an internal error. Please try again.",
		}
	case "invalid_state":
		return ErrorDisplay{
			Title:   "Session Expired",
			Message: "Your sign-in session has expired. Please start the sign-in flow again.",
		}
	default:
		msg := description
		if msg == "" {
			msg = "Something went wrong during sign-in. Please try again."
		}
		return ErrorDisplay{
			Title:   "Sign-in Failed",
			Message: msg,
		}
	}
}
