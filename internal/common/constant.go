package common

// SessionCookieName is the cookie carrying the session token on
// authenticated requests and in login/finalize responses.
const SessionCookieName = "sessionToken"

// RequestIDHeaderName carries a client-generated correlation id on
// every outbound API call.
const RequestIDHeaderName = "X-Request-Id"
