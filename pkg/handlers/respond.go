package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"anitrack/pkg/identity"
)

const (
	typeError   string = "error"
	typeMessage string = "message"

	msgServerError  string = "server error"
	msgUnauthorized string = "unauthorized"

	// MaxBodyBytes caps every JSON request body.
	MaxBodyBytes int64 = 1 << 20
)

// DecodeJSONBody reads an application/json body of at most MaxBodyBytes into
// req. It answers 413 for an oversized body and 400 for any other failure.
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, req any) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		writeError(w, http.StatusBadRequest, typeError, "invalid Content-Type")
		return false
	}

	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer body.Close()

	if err := json.NewDecoder(body).Decode(req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, typeError, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, typeError, "bad json")
		return false
	}

	return true
}

func WriteResp(w http.ResponseWriter, logger *slog.Logger, body any, status int) bool {
	resp, err := json.Marshal(body)
	if err != nil {
		logger.Error("failed to serialize JSON response", "error", err)
		writeError(w, http.StatusInternalServerError, typeError, msgServerError)
		return false
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err := w.Write(resp); err != nil {
		logger.Error("failed to write response to client", "error", err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, data any) bool {
	return WriteResp(w, logger, data, http.StatusOK)
}

func writeError(w http.ResponseWriter, status int, field, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{field: msg}); err != nil {
		return
	}
}

func writeServerError(w http.ResponseWriter, logger *slog.Logger, action string, err error) {
	logger.Error(action, "error", err)
	writeError(w, http.StatusInternalServerError, typeError, msgServerError)
}

func getIdentityFromContext(w http.ResponseWriter, r *http.Request) (*identity.Identity, bool) {
	id, ok := identity.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, typeError, msgUnauthorized)
		return nil, false
	}
	return id, true
}
