package handlers

import (
	"chatclone-backend/internal/models"
	"encoding/json"
	"net/http"
	"strconv"
)

func GetUserInfo(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)

	paramUserID := r.URL.Query().Get("userID")
	if paramUserID == "" {
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	var requestedUserID int64

	if paramUserID == "self" {
		requestedUserID = userID
	} else {
		var err error
		requestedUserID, err = strconv.ParseInt(paramUserID, 10, 64)
		if err != nil {
			http.Error(w, "", http.StatusBadRequest)
			return
		}
	}

	user, found := db.User(requestedUserID)
	if !found {
		http.Error(w, "", http.StatusNotFound)
		return
	}

	// email and phone stay private to the account owner
	if requestedUserID != userID {
		user = user.Snapshot()
	} else {
		user.Password = nil
	}

	err := json.NewEncoder(w).Encode(user)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}

func UpdateUserInfo(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)

	user, found := db.User(userID)
	if !found {
		http.Error(w, "", http.StatusNotFound)
		return
	}

	if displayName := r.URL.Query().Get("displayName"); displayName != "" {
		user.DisplayName = displayName
	}

	if avatarColor := r.URL.Query().Get("avatarColor"); avatarColor != "" {
		user.AvatarColor = avatarColor
	}

	if phone := r.URL.Query().Get("phone"); phone != "" {
		user.Phone = phone
	}

	if status := r.URL.Query().Get("status"); status != "" {
		switch status {
		case models.StatusOnline, models.StatusIdle, models.StatusDnd, models.StatusOffline:
			user.Status = status
		default:
			http.Error(w, "Unknown status", http.StatusBadRequest)
			return
		}
	}

	err := db.SaveUser(user)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}
