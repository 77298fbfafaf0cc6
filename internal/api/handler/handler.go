package handler

import (
	"devlinker/backend/internal/chathub"
	"devlinker/backend/internal/storage"
)

// Handler holds the dependencies shared by all HTTP handlers.
type Handler struct {
	Store     storage.Storage
	Gateway   *chathub.Gateway
	JWTSecret string
}

func NewHandler(store storage.Storage, gateway *chathub.Gateway, jwtSecret string) *Handler {
	return &Handler{
		Store:     store,
		Gateway:   gateway,
		JWTSecret: jwtSecret,
	}
}
