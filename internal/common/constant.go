package common

// AuthorizationHeaderName is the HTTP header that carries the opaque bearer
// token issued by login.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is stripped from the header value when a client sends it.
const BearerPrefix = "Bearer "
