package handlers

import (
	"chatclone-backend/internal/models"
	"chatclone-backend/internal/snowflake"
	"encoding/json"
	"net/http"
	"strconv"
)

func CreateChannel(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)

	serverID, err := strconv.ParseInt(r.URL.Query().Get("serverID"), 10, 64)
	if err != nil || serverID == 0 {
		http.Error(w, "Invalid server ID", http.StatusBadRequest)
		return
	}

	if !isServerOwner(userID, serverID) {
		sugar.Warnf("User ID [%d] tried to create a channel in server ID [%d] they don't own\n", userID, serverID)
		http.Error(w, "You don't own this server", http.StatusForbidden)
		return
	}

	channelName := r.URL.Query().Get("name")
	if channelName == "" {
		channelName = "New Channel"
	}

	channelType := r.URL.Query().Get("type")
	switch channelType {
	case "":
		channelType = models.ChannelTypeText
	case models.ChannelTypeText, models.ChannelTypeVoice:
	default:
		http.Error(w, "Unknown channel type", http.StatusBadRequest)
		return
	}

	channelID, err := snowflake.Generate()
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	channel := models.Channel{
		ID:   channelID,
		Name: channelName,
		Type: channelType,
	}

	server, found := db.Server(serverID)
	if !found {
		http.Error(w, "", http.StatusNotFound)
		return
	}

	server.Channels = append(server.Channels, channel)

	err = db.SaveServer(server)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	err = json.NewEncoder(w).Encode(channel)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}
