package handler

import "github.com/bookmanager/catalog-api/internal/core/domain"

// response is the uniform success envelope. Error responses use the same
// shape and are rendered centrally by the API error handler.
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// listResponse adds the item count the list and search endpoints report.
type listResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
	Data    any  `json:"data"`
}

// authResponse is returned by register and login.
type authResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
}
