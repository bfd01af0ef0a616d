package database

import (
	"chatclone-backend/internal/hub"
	"chatclone-backend/internal/models"
	"chatclone-backend/internal/snowflake"
	"time"
)

// RequestResult tells the caller what SendFriendRequest did.
type RequestResult string

const (
	RequestSent     RequestResult = "sent"
	RequestAccepted RequestResult = "accepted"
	RequestExists   RequestResult = "exists"
)

// FriendRequestsFor returns every request the user is part of, sent or
// received.
func (db *Database) FriendRequestsFor(userID int64) []models.FriendRequest {
	requests := readList[models.FriendRequest](db, friendRequestsKey)

	matching := []models.FriendRequest{}
	for _, request := range requests {
		if request.FromUserID == userID || request.ToUserID == userID {
			matching = append(matching, request)
		}
	}
	return matching
}

// SendFriendRequest creates a pending request from one user to another.
// If the target already has a pending request towards the sender the two
// evidently want to be friends, so that existing request is accepted instead
// of creating a duplicate. Any other existing relation between the pair
// blocks a new request.
func (db *Database) SendFriendRequest(fromUserID int64, toUserID int64) (RequestResult, error) {
	requests := readList[models.FriendRequest](db, friendRequestsKey)

	for _, request := range requests {
		connectsPair := (request.FromUserID == fromUserID && request.ToUserID == toUserID) ||
			(request.FromUserID == toUserID && request.ToUserID == fromUserID)
		if !connectsPair {
			continue
		}

		if request.Status == models.RequestPending && request.FromUserID == toUserID {
			err := db.AcceptFriendRequest(request.ID)
			if err != nil {
				return RequestExists, err
			}
			return RequestAccepted, nil
		}
		return RequestExists, nil
	}

	requestID, err := snowflake.Generate()
	if err != nil {
		return RequestExists, err
	}

	requests = append(requests, models.FriendRequest{
		ID:         requestID,
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Status:     models.RequestPending,
		Timestamp:  time.Now().UnixMilli(),
	})

	err = writeList(db, friendRequestsKey, requests)
	if err != nil {
		return RequestExists, err
	}

	db.emitter.Emit(hub.Event{Type: hub.FriendsUpdated})
	return RequestSent, nil
}

// AcceptFriendRequest removes the request and records the friendship. An
// unknown request id is a silent no-op, which also makes accepting the same
// id twice harmless. No duplicate-friendship guard exists beyond that.
func (db *Database) AcceptFriendRequest(requestID int64) error {
	requests := readList[models.FriendRequest](db, friendRequestsKey)

	found := false
	var accepted models.FriendRequest

	remaining := make([]models.FriendRequest, 0, len(requests))
	for _, request := range requests {
		if request.ID == requestID {
			found = true
			accepted = request
			continue
		}
		remaining = append(remaining, request)
	}

	if !found {
		return nil
	}

	err := writeList(db, friendRequestsKey, remaining)
	if err != nil {
		return err
	}

	friendships := readList[models.Friendship](db, friendshipsKey)
	friendships = append(friendships, models.Friendship{
		UserID1:   accepted.FromUserID,
		UserID2:   accepted.ToUserID,
		Timestamp: time.Now().UnixMilli(),
	})

	err = writeList(db, friendshipsKey, friendships)
	if err != nil {
		return err
	}

	db.emitter.Emit(hub.Event{Type: hub.FriendsUpdated})
	return nil
}

// DeclineFriendRequest drops the request unconditionally, no-op if unknown.
func (db *Database) DeclineFriendRequest(requestID int64) error {
	requests := readList[models.FriendRequest](db, friendRequestsKey)

	remaining := make([]models.FriendRequest, 0, len(requests))
	for _, request := range requests {
		if request.ID != requestID {
			remaining = append(remaining, request)
		}
	}

	err := writeList(db, friendRequestsKey, remaining)
	if err != nil {
		return err
	}

	db.emitter.Emit(hub.Event{Type: hub.FriendsUpdated})
	return nil
}

// Friends resolves the user's friendships against the users collection.
// Friend ids that no longer resolve are silently dropped.
func (db *Database) Friends(userID int64) []models.User {
	friendships := readList[models.Friendship](db, friendshipsKey)

	friendIDs := make(map[int64]bool)
	for _, friendship := range friendships {
		switch userID {
		case friendship.UserID1:
			friendIDs[friendship.UserID2] = true
		case friendship.UserID2:
			friendIDs[friendship.UserID1] = true
		}
	}

	friends := []models.User{}
	for _, user := range db.Users() {
		if friendIDs[user.ID] {
			friends = append(friends, user)
		}
	}
	return friends
}
