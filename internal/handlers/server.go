package handlers

import (
	"chatclone-backend/internal/models"
	"chatclone-backend/internal/snowflake"
	"encoding/json"
	"net/http"
	"strconv"
)

func CreateServer(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)

	serverName := r.URL.Query().Get("name")
	if serverName == "" {
		serverName = "My server"
	}

	owner, found := db.User(userID)
	if !found {
		http.Error(w, "", http.StatusUnauthorized)
		return
	}

	serverID, err := snowflake.Generate()
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	textChannelID, err := snowflake.Generate()
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	voiceChannelID, err := snowflake.Generate()
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	server := models.Server{
		ID:      serverID,
		OwnerID: userID,
		Name:    serverName,
		Channels: []models.Channel{
			{ID: textChannelID, Name: "general", Type: models.ChannelTypeText},
			{ID: voiceChannelID, Name: "General", Type: models.ChannelTypeVoice},
		},
		Members: []models.User{owner.Snapshot()},
	}

	err = db.SaveServer(server)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	err = json.NewEncoder(w).Encode(server)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}

func GetServerList(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)

	servers := []models.Server{}
	for _, server := range db.Servers() {
		for _, member := range server.Members {
			if member.ID == userID {
				servers = append(servers, server)
				break
			}
		}
	}

	err := json.NewEncoder(w).Encode(servers)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}

func DeleteServer(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)

	serverID, err := strconv.ParseInt(r.URL.Query().Get("serverID"), 10, 64)
	if err != nil || serverID == 0 {
		http.Error(w, "Invalid server ID", http.StatusBadRequest)
		return
	}

	if !isServerOwner(userID, serverID) {
		sugar.Warnf("User ID [%d] tried to delete server ID [%d] they don't own\n", userID, serverID)
		http.Error(w, "You don't own this server", http.StatusForbidden)
		return
	}

	err = db.DeleteServer(serverID)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}

func RenameServer(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)

	serverID, err := strconv.ParseInt(r.URL.Query().Get("serverID"), 10, 64)
	if err != nil || serverID == 0 {
		http.Error(w, "Invalid server ID", http.StatusBadRequest)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "Server name can't be empty", http.StatusBadRequest)
		return
	}

	server, found := db.Server(serverID)
	if !found {
		http.Error(w, "", http.StatusNotFound)
		return
	}

	if server.OwnerID != userID {
		http.Error(w, "You don't own this server", http.StatusForbidden)
		return
	}

	server.Name = name

	err = db.SaveServer(server)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}
