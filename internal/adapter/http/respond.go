package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/couchcryptid/disaster-helper/internal/domain"
	"github.com/couchcryptid/disaster-helper/internal/service"
	"github.com/couchcryptid/disaster-helper/internal/store"
)

// Request headers carrying the caller's identity.
const (
	headerSession = "X-Session-ID"
	headerUser    = "X-User-ID"
)

const maxBodyBytes = 1 << 20

var errBadBody = &domain.ValidationError{Message: "invalid request body"}

func sessionOf(r *http.Request) string {
	if s := strings.TrimSpace(r.Header.Get(headerSession)); s != "" {
		return s
	}
	return store.DefaultSession
}

func userOf(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerUser))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errBadBody
	}
	return nil
}

// coordinatesFromQuery reads lat and lon. Both absent yields nil; one
// without the other, or a value out of range, is a validation error.
func coordinatesFromQuery(r *http.Request) (*domain.Coordinates, error) {
	q := r.URL.Query()
	latStr, lonStr := q.Get("lat"), q.Get("lon")
	if latStr == "" && lonStr == "" {
		return nil, nil
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, &domain.ValidationError{Field: "lat", Message: fmt.Sprintf("invalid latitude %q", latStr)}
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return nil, &domain.ValidationError{Field: "lon", Message: fmt.Sprintf("invalid longitude %q", lonStr)}
	}
	at := &domain.Coordinates{Lat: lat, Lon: lon}
	if err := checkCoordinates(at); err != nil {
		return nil, err
	}
	return at, nil
}

// checkCoordinates rejects a latitude outside [-90, 90] or a longitude
// outside [-180, 180]. nil means no location and passes.
func checkCoordinates(at *domain.Coordinates) error {
	if at == nil {
		return nil
	}
	if math.IsNaN(at.Lat) || at.Lat < -90 || at.Lat > 90 {
		return &domain.ValidationError{Field: "lat", Message: fmt.Sprintf("invalid latitude %v", at.Lat)}
	}
	if math.IsNaN(at.Lon) || at.Lon < -180 || at.Lon > 180 {
		return &domain.ValidationError{Field: "lon", Message: fmt.Sprintf("invalid longitude %v", at.Lon)}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // client may have gone away
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps err onto a status code and an {"error": ...} body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: verr.Error()})
	case errors.Is(err, service.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrImmutable):
		writeJSON(w, http.StatusForbidden, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, service.ErrFeatureDisabled):
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: err.Error()})
	case errors.Is(err, service.ErrUpstream):
		s.logger.Error("upstream failure", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusBadGateway, errorBody{Error: service.ErrUpstream.Error()})
	case errors.Is(err, store.ErrCorruptSnapshot):
		s.logger.Error("corrupt snapshot", "method", r.Method, "path", r.URL.Path, "session", sessionOf(r), "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}
