package middlewares

import (
	"encoding/json"
	"net/http"

	"webintel/webintel/config"
	"webintel/webintel/utils/errs"
	"webintel/webintel/utils/types"
)

// APIKeyMiddleware requires the Authorization header to equal cfg.APIKey
// exactly. No scheme prefix is stripped.
func APIKeyMiddleware(cfg config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				writeError(w, errs.New(errs.ErrUnauthorized, "API key is missing"))
				return
			}
			if auth != cfg.APIKey {
				writeError(w, errs.New(errs.ErrUnauthorized, "Invalid API key"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(errs.HTTPStatus(err))
	json.NewEncoder(w).Encode(types.ErrorResponse{Detail: errs.Message(err)})
}
