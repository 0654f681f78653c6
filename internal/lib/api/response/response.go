// Package response пишет ответы в конверте {code, message, data}; code 200 — успех.
package response

import (
	"encoding/json"
	"net/http"
)

type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// OK — успешный ответ с данными (nil — без поля data).
func OK(w http.ResponseWriter, data any) {
	write(w, http.StatusOK, Response{Code: http.StatusOK, Message: "success", Data: data})
}

// Error — ошибка; HTTP-статус совпадает с кодом конверта.
func Error(w http.ResponseWriter, code int, message string) {
	write(w, code, Response{Code: code, Message: message})
}

func write(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
