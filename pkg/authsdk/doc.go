/*
Package authsdk keeps a storefront shopper's session alive against the
commerce API.

# SDKClient and Session

SDKClient performs the two unauthenticated exchanges, login and refresh:

	client := authsdk.NewSDKClient("https://api.example.com")

A Session owns the shopper's credential, persisted through a CredentialStore,
and makes authenticated calls on their behalf:

	session, err := client.NewSession(ctx, authsdk.SessionConfig{Store: store})
	if _, err := session.Login(ctx, username, password); err != nil {
		return err
	}

	resp, err := session.Do(ctx, http.MethodPost, "/orders", body, nil)

# Token Refresh

GetValidAccessToken returns the held access token as long as it is more than
the refresh threshold (5 minutes by default) away from expiry. Once it is due,
the first caller starts a refresh exchange and every concurrent caller waits
for that same exchange; there is never more than one refresh request in
flight per Session.

A failed exchange (network error, rejected refresh token, no refresh token,
or an unusable new access token) logs the session out and returns
*TokenRefreshError. The next call then returns ErrAuthRequired.

# Dispatching Requests

Do attaches the bearer token and sends the request. If the API answers 401 the
session forces one refresh, regardless of what the local clock says, and
retries once. A second 401, or a failed forced refresh, logs the session out
and returns *SessionExpiredError.

# Errors

  - ErrAuthRequired: no credential, the shopper must log in
  - ErrTimeout: the caller's context ended while waiting on a refresh, or the
    exchange exceeded its own timeout
  - *TokenRefreshError: the session could not be renewed
  - *SessionExpiredError: the API kept rejecting the session
  - *APIError: any other non-2xx response, decoded by DecodeJSON
*/
package authsdk
