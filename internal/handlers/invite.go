package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
)

func CreateInvite(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)

	serverID, err := strconv.ParseInt(r.URL.Query().Get("serverID"), 10, 64)
	if err != nil || serverID == 0 {
		http.Error(w, "Invalid server ID", http.StatusBadRequest)
		return
	}

	server, found := db.Server(serverID)
	if !found {
		http.Error(w, "", http.StatusNotFound)
		return
	}

	isMember := false
	for _, member := range server.Members {
		if member.ID == userID {
			isMember = true
			break
		}
	}
	if !isMember {
		http.Error(w, "You are not a member of this server", http.StatusForbidden)
		return
	}

	invite, err := db.CreateInvite(serverID, userID)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	err = json.NewEncoder(w).Encode(invite)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}

func GetInvite(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Missing invite code", http.StatusBadRequest)
		return
	}

	invite, found := db.InviteByCode(code)
	if !found {
		http.Error(w, "invalid_invite", http.StatusNotFound)
		return
	}

	err := json.NewEncoder(w).Encode(invite)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}

func UseInvite(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Missing invite code", http.StatusBadRequest)
		return
	}

	server, found, err := db.UseInvite(code, userID)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "invalid_invite", http.StatusNotFound)
		return
	}

	err = json.NewEncoder(w).Encode(server)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}
