// Package client is the storefront's HTTP transport to the EduRoot backend.
//
// # Overview
//
// HTTPClient is a single configured client: a base URL (backend origin plus
// the API path), a fixed request timeout, default JSON headers, and two
// interceptors run around every call:
//
//   - the request interceptor reads the bearer token from the token store
//     and sets "Authorization: Bearer <token>"; it never fails a request.
//   - the response interceptor turns non-2xx replies into *ResponseError and
//     logs 401s. Only when AutoLogoutOnUnauthorized is set does a 401 also
//     call the hook registered with OnUnauthorized.
//
// On top of the verb methods (Get, Post, Put, Delete) HTTPClient implements
// API, the typed backend contract used by the services package.
//
// # Error Handling
//
// Transport failures (no response) wrap ErrUnavailable. HTTP error replies
// are *ResponseError carrying the status and raw body; a 401 also matches
// ErrUnauthorized with errors.Is. Bodies that do not have the documented
// shape wrap ErrMalformedResponse.
package client
