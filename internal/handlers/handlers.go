package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vancomm/bstree/internal/middleware"
)

// sendJSONOrLog writes v with the given status code.
func sendJSONOrLog(w http.ResponseWriter, log logrus.FieldLogger, status int, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.WithError(err).WithField("response", v).Error("unable to encode response")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(payload); err != nil {
		log.WithError(err).Warn("unable to send response")
	}
}

func sendErrorOrLog(w http.ResponseWriter, log logrus.FieldLogger, status int, err error) {
	sendJSONOrLog(w, log, status, wrapError(err))
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}

// requestLog tags log with the token subject of an authenticated request.
func requestLog(log logrus.FieldLogger, r *http.Request) logrus.FieldLogger {
	if claims, ok := middleware.ClaimsFrom(r.Context()); ok {
		return log.WithField("subject", claims.Subject)
	}
	return log
}
