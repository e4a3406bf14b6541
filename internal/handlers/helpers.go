package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fleetkeeper/fleetkeeper/internal/entities"
)

// callerRoleHeader carries the authenticated caller's role, set by the
// upstream session gateway. Authentication itself is not this service's
// concern.
const callerRoleHeader = "X-Caller-Role"

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// callerRole extracts and validates the caller's role from the request.
func callerRole(r *http.Request) (entities.Role, error) {
	return entities.ParseRole(r.Header.Get(callerRoleHeader))
}

func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
