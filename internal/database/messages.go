package database

import (
	"chatclone-backend/internal/hub"
	"chatclone-backend/internal/models"
	"fmt"
	"strconv"
)

type ContextKind string

const (
	ContextChannel ContextKind = "channel"
	ContextDM      ContextKind = "dm"
)

// Context identifies the partition a message log lives in: a channel or a
// two-party DM conversation. Callers state the kind explicitly, nothing is
// inferred from the id's shape.
type Context struct {
	Kind ContextKind
	ID   string
}

func ChannelContext(channelID int64) Context {
	return Context{Kind: ContextChannel, ID: strconv.FormatInt(channelID, 10)}
}

// DMContext derives the conversation id for a user pair. The two ids are
// sorted before joining so both argument orders produce the same context.
func DMContext(userID1 int64, userID2 int64) Context {
	a := strconv.FormatInt(userID1, 10)
	b := strconv.FormatInt(userID2, 10)
	if b < a {
		a, b = b, a
	}
	return Context{Kind: ContextDM, ID: a + "_" + b}
}

func (c Context) storageKey() string {
	return fmt.Sprintf("messages:%s:%s", c.Kind, c.ID)
}

// Messages returns the context's full log in insertion order, empty when the
// context was never written.
func (db *Database) Messages(context Context) []models.Message {
	return readList[models.Message](db, context.storageKey())
}

// SaveMessage appends to the context's log. Messages are append-only, there
// is no edit or delete.
func (db *Database) SaveMessage(context Context, message models.Message) error {
	messages := db.Messages(context)
	messages = append(messages, message)

	err := writeList(db, context.storageKey(), messages)
	if err != nil {
		return err
	}

	db.emitter.Emit(hub.Event{Type: hub.MessagesUpdated, ContextID: context.ID})
	return nil
}
