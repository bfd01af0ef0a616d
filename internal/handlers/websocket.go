package handlers

import (
	"chatclone-backend/internal/hub"
	"net/http"
)

func HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	hub.HandleClient(w, r, requestUserID(r))
}
