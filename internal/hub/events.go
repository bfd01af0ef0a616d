package hub

// Event types pushed to every connected session so it can re-read the
// affected collection.
const (
	UsersUpdated    = "users_updated"
	ServersUpdated  = "servers_updated"
	FriendsUpdated  = "friends_updated"
	MessagesUpdated = "messages_updated"
)

// Event is the sync feed payload. ContextID is only set for message events so
// listeners can refresh a single channel or DM conversation.
type Event struct {
	Type      string `json:"type"`
	ContextID string `json:"contextId,omitempty"`
}
