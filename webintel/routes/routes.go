package routes

import (
	"encoding/json"
	"net/http"

	"webintel/webintel/utils/errs"
	"webintel/webintel/utils/types"
)

// handleJSON encodes the handler result, or {"detail": ...} with the status
// derived from the error kind.
func handleJSON(handler func(w http.ResponseWriter, r *http.Request) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := handler(w, r)
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			w.WriteHeader(errs.HTTPStatus(err))
			json.NewEncoder(w).Encode(types.ErrorResponse{Detail: errs.Message(err)})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(res)
	}
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errs.InvalidRequest("invalid request body: " + err.Error())
	}
	return nil
}
