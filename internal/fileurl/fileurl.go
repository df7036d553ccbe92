// Package fileurl builds the externally-servable URL for a token-gated
// file. The format is defined exactly once, here, so the serve-file
// endpoint and every caller agree on it.
package fileurl

import "net/url"

// ServePath is the route of the remote serve-file endpoint that consumes
// (path, token) pairs and streams the object inline.
const ServePath = "/functions/v1/serve-file-inline"

// Build constructs the servable URL for storagePath using token.
// Pure formatting, no I/O.
func Build(baseURL, storagePath, token string) string {
	q := url.Values{}
	q.Set("path", storagePath)
	q.Set("token", token)
	return baseURL + ServePath + "?" + q.Encode()
}
