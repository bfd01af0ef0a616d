package database

import (
	"chatclone-backend/internal/hub"
	"chatclone-backend/internal/keyValue"
	"encoding/json"

	"go.uber.org/zap"
)

// Collection keys inside the key-value store. Every collection is one
// JSON-encoded list under its key, messages get one list per context.
const (
	usersKey          = "users"
	serversKey        = "servers"
	friendRequestsKey = "friend_requests"
	friendshipsKey    = "friendships"
	invitesKey        = "invites"
)

// Emitter pushes collection-change events to whoever is listening. The
// database never cares how they get delivered.
type Emitter interface {
	Emit(event hub.Event)
}

// Database provides collection-level CRUD over a flat key-value store.
// Writes re-serialize the whole affected collection, last write wins. It
// never returns not-found as an error, callers check sentinel results.
type Database struct {
	kv      keyValue.Store
	emitter Emitter
	sugar   *zap.SugaredLogger
}

func Setup(kv keyValue.Store, emitter Emitter, sugar *zap.SugaredLogger) *Database {
	return &Database{
		kv:      kv,
		emitter: emitter,
		sugar:   sugar,
	}
}

// readList deserializes the collection under key. Absent or malformed data
// fails open to an empty list, storage errors are logged and swallowed the
// same way.
func readList[T any](db *Database, key string) []T {
	value, err := db.kv.Get(key)
	if err != nil {
		db.sugar.Errorf("Reading collection [%s] failed: %v", key, err)
		return []T{}
	}

	if value == "" {
		return []T{}
	}

	var list []T
	err = json.Unmarshal([]byte(value), &list)
	if err != nil {
		db.sugar.Warnf("Collection [%s] holds malformed data, treating as empty", key)
		return []T{}
	}

	return list
}

func writeList[T any](db *Database, key string, list []T) error {
	bytes, err := json.Marshal(list)
	if err != nil {
		return err
	}

	return db.kv.Set(key, string(bytes))
}
