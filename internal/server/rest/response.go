package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/contactkeeper/internal/common"
)

const maxBodyBytes = 1 << 20

type dataEnvelope struct {
	Data any `json:"data"`
}

type errorEnvelope struct {
	Errors map[string][]string `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, dataEnvelope{Data: data})
}

func writeErrors(w http.ResponseWriter, status int, fields map[string][]string) {
	writeJSON(w, status, errorEnvelope{Errors: fields})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeErrors(w, status, map[string][]string{"message": {msg}})
}

// writeError maps service errors to HTTP statuses. Anything unrecognised is
// logged and reported as a bare 500.
func (s *Server) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var ve *common.ValidationError
	switch {
	case errors.As(err, &ve):
		writeErrors(w, http.StatusBadRequest, ve.Fields)
	case errors.Is(err, common.ErrorMalformedBody):
		writeMessage(w, http.StatusBadRequest, common.ErrorMalformedBody.Error())
	case errors.Is(err, common.ErrorUsernameTaken):
		writeErrors(w, http.StatusBadRequest, map[string][]string{"username": {common.ErrorUsernameTaken.Error()}})
	case errors.Is(err, common.ErrorInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, common.ErrorInvalidCredentials.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		writeMessage(w, http.StatusUnauthorized, common.ErrorUnauthorized.Error())
	case errors.Is(err, common.ErrorNotFound):
		writeMessage(w, http.StatusNotFound, common.ErrorNotFound.Error())
	default:
		s.logger.Error(ctx, "request failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, common.ErrorInternal.Error())
	}
}

// decodeBody reads a single JSON value from the request body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return common.ErrorMalformedBody
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return common.ErrorMalformedBody
	}
	return nil
}
