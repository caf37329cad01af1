// Package rest exposes the contacts API over HTTP/JSON.
//
// Routes are registered on a gorilla/mux router. Handlers that need a caller
// are wrapped by Server.authenticated, which resolves the bearer token and
// passes the resolved user to the handler explicitly.
package rest
