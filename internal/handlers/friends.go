package handlers

import (
	"chatclone-backend/internal/models"
	strvalidator "chatclone-backend/internal/validator"
	"encoding/json"
	"net/http"
	"strconv"
)

func GetFriendList(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)

	friends := db.Friends(userID)

	snapshots := make([]models.User, 0, len(friends))
	for _, friend := range friends {
		snapshots = append(snapshots, friend.Snapshot())
	}

	err := json.NewEncoder(w).Encode(snapshots)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}

func GetFriendRequests(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)

	err := json.NewEncoder(w).Encode(db.FriendRequestsFor(userID))
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}

// SendFriendRequest addresses the target by username#discriminator tag, the
// way the add-friend form does.
func SendFriendRequest(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)

	type Request struct {
		Username      string `json:"username"`
		Discriminator string `json:"discriminator"`
	}

	var request Request
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		sugar.Debug(err)
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	if err := strvalidator.Discriminator(request.Discriminator); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	target, found := db.FindUserByTag(request.Username, request.Discriminator)
	if !found {
		http.Error(w, "unknown_tag", http.StatusNotFound)
		return
	}

	if target.ID == userID {
		http.Error(w, "self_request", http.StatusBadRequest)
		return
	}

	result, err := db.SendFriendRequest(userID, target.ID)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	err = json.NewEncoder(w).Encode(map[string]string{"result": string(result)})
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}

func AcceptFriendRequest(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)

	requestID, err := strconv.ParseInt(r.URL.Query().Get("requestID"), 10, 64)
	if err != nil || requestID == 0 {
		http.Error(w, "Invalid request ID", http.StatusBadRequest)
		return
	}

	// only the recipient may accept
	if !requestInvolves(userID, requestID, true) {
		http.Error(w, "", http.StatusForbidden)
		return
	}

	err = db.AcceptFriendRequest(requestID)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}

func DeclineFriendRequest(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)

	requestID, err := strconv.ParseInt(r.URL.Query().Get("requestID"), 10, 64)
	if err != nil || requestID == 0 {
		http.Error(w, "Invalid request ID", http.StatusBadRequest)
		return
	}

	// either side may decline, the sender declining cancels their request
	if !requestInvolves(userID, requestID, false) {
		http.Error(w, "", http.StatusForbidden)
		return
	}

	err = db.DeclineFriendRequest(requestID)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}

func requestInvolves(userID int64, requestID int64, recipientOnly bool) bool {
	for _, request := range db.FriendRequestsFor(userID) {
		if request.ID != requestID {
			continue
		}
		if recipientOnly {
			return request.ToUserID == userID
		}
		return true
	}
	// unknown ids fall through to the store's silent no-op
	return true
}
