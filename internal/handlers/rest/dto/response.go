package dto

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ErrorResponse struct {
	Detail string `json:"detail"`
}

type PingResponse struct {
	Message string `json:"message"`
	Service string `json:"service,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, detail string) error {
	return WriteJSON(w, status, ErrorResponse{Detail: detail})
}

// PathID читает {id} из маршрута. Нераспознанный id для клиента
// неотличим от отсутствующей записи.
func PathID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
