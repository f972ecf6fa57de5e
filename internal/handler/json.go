// Package handler contains the HTTP JSON API handlers.
//
// This file implements shared request/response plumbing. The API has no
// accounts of its own: callers identify themselves with an opaque UUID in
// the X-User-ID header, and every user-scoped handler resolves it through
// requestUserID.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/riverlabs/aquacheck/internal/domain"
)

// maxBodyBytes caps JSON request bodies at 1 MiB. Image uploads go through
// multipart forms and have their own limit.
const maxBodyBytes = 1 << 20

// userIDHeader carries the caller-supplied user identity.
const userIDHeader = "X-User-ID"

// decodeJSON reads a JSON request body into dst with a size cap.
// Unknown fields are rejected so typos surface as errors instead of being
// silently ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return domain.Errorf(domain.ETOOLARGE, "", "request body must not exceed %d bytes", maxBytesErr.Limit)
		}
		return domain.Invalid("", fmt.Sprintf("invalid request body: %v", err))
	}

	// A second document after the first is a malformed request.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return domain.Invalid("", "request body must contain a single JSON object")
	}

	return nil
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// requestUserID extracts and validates the caller-supplied user ID.
func requestUserID(r *http.Request) (uuid.UUID, error) {
	raw := r.Header.Get(userIDHeader)
	if raw == "" {
		return uuid.Nil, domain.Invalid("", "X-User-ID header is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.Invalid("", "X-User-ID header must be a valid UUID")
	}
	return id, nil
}

// pathUUID parses a UUID path parameter registered as {name} on the mux.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := r.PathValue(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.Invalid("", fmt.Sprintf("%s must be a valid UUID", name))
	}
	return id, nil
}

// queryInt parses an optional integer query parameter, returning def when
// the parameter is absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
