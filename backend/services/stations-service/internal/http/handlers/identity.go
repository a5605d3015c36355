package handlers

import (
	"net/http"
	"strconv"
)

// Identity headers set by the api-gateway after JWT verification.
const (
	userIDHeader    = "X-User-ID"
	userEmailHeader = "X-User-Email"
)

func userID(r *http.Request) int64 {
	id, err := strconv.ParseInt(r.Header.Get(userIDHeader), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
