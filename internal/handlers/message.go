package handlers

import (
	"chatclone-backend/internal/database"
	"chatclone-backend/internal/models"
	"chatclone-backend/internal/snowflake"
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

// messageContext picks the partition from the request: channelID for channel
// messages, dmUserID for a direct conversation with that user. Exactly one
// must be present.
func messageContext(userID int64, channelID string, dmUserID string) (database.Context, bool) {
	if (channelID == "") == (dmUserID == "") {
		return database.Context{}, false
	}

	if channelID != "" {
		id, err := strconv.ParseInt(channelID, 10, 64)
		if err != nil || id == 0 {
			return database.Context{}, false
		}
		return database.ChannelContext(id), true
	}

	id, err := strconv.ParseInt(dmUserID, 10, 64)
	if err != nil || id == 0 {
		return database.Context{}, false
	}
	return database.DMContext(userID, id), true
}

func isChannelMember(userID int64, channelID int64) bool {
	for _, server := range db.Servers() {
		for _, channel := range server.Channels {
			if channel.ID != channelID {
				continue
			}
			for _, member := range server.Members {
				if member.ID == userID {
					return true
				}
			}
			return false
		}
	}
	return false
}

func CreateMessage(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)

	type AddMessageRequest struct {
		Content     string               `json:"content"`
		ChannelID   string               `json:"channelID"`
		DmUserID    string               `json:"dmUserID"`
		Attachments []models.Attachment  `json:"attachments"`
		Voice       *models.VoiceMessage `json:"voice"`
	}

	var messageRequest AddMessageRequest
	err := json.NewDecoder(r.Body).Decode(&messageRequest)
	if err != nil {
		sugar.Debug(err)
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	context, ok := messageContext(userID, messageRequest.ChannelID, messageRequest.DmUserID)
	if !ok {
		http.Error(w, "Specify either a channel or a DM target", http.StatusBadRequest)
		return
	}

	if context.Kind == database.ContextChannel {
		channelID, _ := strconv.ParseInt(messageRequest.ChannelID, 10, 64)
		if !isChannelMember(userID, channelID) {
			http.Error(w, "You are not a member of this channel", http.StatusForbidden)
			return
		}
	}

	author, found := db.User(userID)
	if !found {
		http.Error(w, "", http.StatusUnauthorized)
		return
	}

	messageID, err := snowflake.Generate()
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	msg := models.Message{
		ID:          messageID,
		Author:      author.Snapshot(),
		Timestamp:   time.Now().UnixMilli(),
		Content:     messageRequest.Content,
		Attachments: messageRequest.Attachments,
		Voice:       messageRequest.Voice,
	}

	err = db.SaveMessage(context, msg)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	err = json.NewEncoder(w).Encode(msg)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}

func GetMessageList(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)

	context, ok := messageContext(userID, r.URL.Query().Get("channelID"), r.URL.Query().Get("dmUserID"))
	if !ok {
		http.Error(w, "Specify either a channel or a DM target", http.StatusBadRequest)
		return
	}

	err := json.NewEncoder(w).Encode(db.Messages(context))
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}
