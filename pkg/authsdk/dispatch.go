package authsdk

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
)

// attemptState tracks one dispatched call. The only path out of
// stateRetriedOnce on a 401 is stateGaveUp, so a call is never sent more than
// twice.
type attemptState int

const (
	stateNotAttempted attemptState = iota
	stateAttempted
	stateRetriedOnce
	stateGaveUp
)

func (a attemptState) String() string {
	switch a {
	case stateNotAttempted:
		return "not_attempted"
	case stateAttempted:
		return "attempted"
	case stateRetriedOnce:
		return "retried_once"
	case stateGaveUp:
		return "gave_up"
	default:
		return fmt.Sprintf("attemptState(%d)", int(a))
	}
}

// sent is the transition taken after a request went out.
func (a attemptState) sent() attemptState {
	if a == stateNotAttempted {
		return stateAttempted
	}
	return a
}

// unauthorized is the transition taken when the server answered 401.
func (a attemptState) unauthorized() attemptState {
	if a == stateAttempted {
		return stateRetriedOnce
	}
	return stateGaveUp
}

var errRejectedAfterRefresh = errors.New("request rejected again after token refresh")

// Do sends an authenticated request to path under the API base URL. A 401
// triggers one forced refresh and one retry with the new token; if that also
// fails the session is logged out and *SessionExpiredError is returned.
// Errors from obtaining the initial token (ErrAuthRequired,
// *TokenRefreshError) are returned unchanged. The body is resent verbatim on
// retry.
func (s *Session) Do(
	ctx context.Context,
	method, path string,
	body []byte,
	headers map[string]string,
) (*http.Response, error) {
	token, err := s.GetValidAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	state := stateNotAttempted
	for {
		resp, err := s.send(ctx, method, path, body, headers, token)
		if err != nil {
			return nil, err
		}
		state = state.sent()

		if resp.StatusCode != http.StatusUnauthorized {
			return resp, nil
		}
		drainAndClose(resp)

		state = state.unauthorized()
		s.logger.Debug("Request unauthorized", "method", method, "path", path, "state", state)

		if state == stateGaveUp {
			return nil, s.giveUp(ctx, token, errRejectedAfterRefresh)
		}

		rejected := token
		token, err = s.ForceRefresh(ctx, rejected)
		if err != nil {
			// The caller stopped waiting; the session itself may be fine.
			if errors.Is(err, ErrTimeout) && !isRefreshFailure(err) {
				return nil, err
			}
			return nil, s.giveUp(ctx, rejected, err)
		}
	}
}

func (s *Session) send(
	ctx context.Context,
	method, path string,
	body []byte,
	headers map[string]string,
	token string,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.client.url(path), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	return resp, nil
}

// giveUp logs out the session still holding the rejected token. A session
// that has since logged in again is left alone.
func (s *Session) giveUp(ctx context.Context, rejected string, cause error) error {
	s.logger.Warn("Giving up on request, session expired", "error", cause)

	s.clearIf(context.WithoutCancel(ctx), func(held *Credential) bool {
		return held.AccessToken == rejected
	})
	return &SessionExpiredError{Err: cause}
}

func isRefreshFailure(err error) bool {
	var refreshErr *TokenRefreshError
	return errors.As(err, &refreshErr)
}
