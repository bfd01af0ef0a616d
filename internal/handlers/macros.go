package handlers

import "net/http"

func requestUserID(r *http.Request) int64 {
	return r.Context().Value(UserIDKeyType{}).(int64)
}

func isServerOwner(userID int64, serverID int64) bool {
	server, found := db.Server(serverID)
	if !found {
		return false
	}
	return server.OwnerID == userID
}
