// Package authsdk is the Go client for the authd service.
//
// The client keeps the access token in memory and the refresh token in an
// HttpOnly cookie managed by its cookie jar, mirroring how a browser talks
// to the service. Authenticated requests that come back 401 trigger a
// single refresh-and-retry cycle; concurrent refreshes collapse into one
// network call.
package authsdk
