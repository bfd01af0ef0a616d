package handlers

import (
	"chatclone-backend/internal/fileHandlers"
	"encoding/json"
	"net/http"
)

func UploadAttachment(w http.ResponseWriter, r *http.Request) {
	attachment, err := fileHandlers.HandleAttachment(r)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	err = json.NewEncoder(w).Encode(attachment)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}
