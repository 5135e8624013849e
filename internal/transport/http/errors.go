package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeError сериализует отказ в формат {"error": "<reason>"}.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg})
}

// writeDomainError — единственное место, где доменные ошибки превращаются
// в HTTP-статусы. Отказы по ссылкам — 400 (fail-closed на записи),
// отсутствие заказа — 404, всё остальное — 500 с пробросом сообщения.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, "Order not found")
	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusBadRequest, "User not found")
	case errors.Is(err, domain.ErrProductNotFound):
		writeError(w, http.StatusBadRequest, "Product not found")
	case domain.IsInvalidInput(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
