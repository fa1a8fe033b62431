package github

import (
	"errors"
	"net/http"

	gh "github.com/google/go-github/v62/github"

	apperrors "github.com/Kamar-Folarin/github-release-tracker/internal/errors"
)

// classifyError maps go-github failures onto RemoteError (GitHub answered
// with a non-2xx status) or TransportError (no usable answer at all).
func classifyError(op string, err error) error {
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return apperrors.NewRemoteError(statusOf(rateErr.Response, http.StatusForbidden), rateErr.Message)
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return apperrors.NewRemoteError(statusOf(abuseErr.Response, http.StatusTooManyRequests), abuseErr.Message)
	}

	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) {
		status := statusOf(respErr.Response, http.StatusBadGateway)
		message := respErr.Message
		if message == "" {
			message = http.StatusText(status)
		}
		return apperrors.NewRemoteError(status, message)
	}

	return apperrors.NewTransportError(op, err)
}

func statusOf(resp *http.Response, fallback int) int {
	if resp == nil {
		return fallback
	}
	return resp.StatusCode
}
