package api

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
)

// The API transports every filter value base64-encoded, and the composite
// payload percent-encoded inside the URL path. These helpers are pure and
// lossless; the server reverses them.

// EncodeField base64-encodes a text value for inclusion in the search payload.
func EncodeField(value string) string {
	return base64.StdEncoding.EncodeToString([]byte(value))
}

// EncodeInteger base64-encodes the decimal representation of an integer.
func EncodeInteger(value int) string {
	return EncodeField(strconv.Itoa(value))
}

// EncodePathSegment percent-encodes a string so it can sit in a URL path
// segment.
func EncodePathSegment(value string) string {
	return url.PathEscape(value)
}

// DecodeID reverses the transport encoding of an establishment id: base64
// back to text, then text to integer.
func DecodeID(opaque string) (int, error) {
	raw, err := base64.StdEncoding.DecodeString(opaque)
	if err != nil {
		return 0, fmt.Errorf("decode id %q: %w", opaque, err)
	}
	id, err := strconv.Atoi(string(raw))
	if err != nil {
		return 0, fmt.Errorf("parse id %q: %w", string(raw), err)
	}
	return id, nil
}
