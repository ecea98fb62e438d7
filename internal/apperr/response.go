package apperr

import (
	"encoding/json"
	"net/http"
)

// detailBody is the wire shape of every error response.
type detailBody struct {
	Detail string `json:"detail"`
}

// Write renders err as the standard {"detail": <message>} JSON error
// response with the mapped HTTP status.
func Write(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusOf(err))
	_ = json.NewEncoder(w).Encode(detailBody{Detail: MessageOf(err)})
}
