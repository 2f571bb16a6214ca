package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jryan2014/car-audio-events/internal/bootstrap/logging"
	"github.com/jryan2014/car-audio-events/internal/errs"
)

// envelope is the uniform response wrapper. Every payload carries the
// success flag; handlers add their entity under its own key.
type envelope map[string]any

func respond(ctx context.Context, w http.ResponseWriter, status int, body envelope) {
	if body == nil {
		body = envelope{}
	}
	if _, ok := body["success"]; !ok {
		body["success"] = true
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error(ctx, "write response failed", slog.Any("err", errs.Loggable(err)))
	}
}

// fail maps the error kind to a transport status code. This is the only
// place kinds become status codes.
func fail(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errs.KindOf(err) {
	case errs.KindValidation:
		status = http.StatusBadRequest
	case errs.KindAuth:
		status = http.StatusUnauthorized
		w.Header().Set("WWW-Authenticate", "Bearer")
	case errs.KindUpstream:
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		logging.Error(ctx, "request failed", slog.Any("err", errs.Loggable(err)))
	} else {
		logging.Warn(ctx, "request rejected", slog.Any("err", errs.Loggable(err)))
	}

	respond(ctx, w, status, envelope{
		"success": false,
		"error":   err.Error(),
	})
}
