package database_test

import (
	"chatclone-backend/internal/database"
	"chatclone-backend/internal/hub"
	"chatclone-backend/internal/keyValue"
	"chatclone-backend/internal/models"
	"chatclone-backend/internal/snowflake"
	"os"
	"testing"

	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	_ = snowflake.Setup(0)
	os.Exit(m.Run())
}

// recordingEmitter collects emitted events so tests can assert on the
// notification side of every mutation.
type recordingEmitter struct {
	events []hub.Event
}

func (e *recordingEmitter) Emit(event hub.Event) {
	e.events = append(e.events, event)
}

func (e *recordingEmitter) lastEvent(t *testing.T) hub.Event {
	t.Helper()
	if len(e.events) == 0 {
		t.Fatal("expected at least one emitted event, got none")
	}
	return e.events[len(e.events)-1]
}

func newTestDatabase(t *testing.T) (*database.Database, *keyValue.MemoryStore, *recordingEmitter) {
	t.Helper()
	kv := keyValue.NewMemoryStore()
	emitter := &recordingEmitter{}
	return database.Setup(kv, emitter, zap.NewNop().Sugar()), kv, emitter
}

func testUser(id int64, username string) models.User {
	return models.User{
		ID:            id,
		Email:         username + "@example.com",
		UserName:      username,
		Discriminator: "0001",
		DisplayName:   username,
		AvatarColor:   "#5865F2",
		Status:        models.StatusOnline,
	}
}

func TestSaveUserUpsert(t *testing.T) {
	db, _, emitter := newTestDatabase(t)

	for i, name := range []string{"alice", "bob", "carol"} {
		if err := db.SaveUser(testUser(int64(i+1), name)); err != nil {
			t.Fatal(err)
		}
	}

	updated := testUser(2, "bob")
	updated.DisplayName = "Bobby"
	if err := db.SaveUser(updated); err != nil {
		t.Fatal(err)
	}

	users := db.Users()
	if len(users) != 3 {
		t.Fatalf("expected 3 users after upsert, got %d", len(users))
	}

	// replaced in place, position preserved
	if users[1].ID != 2 || users[1].DisplayName != "Bobby" {
		t.Errorf("expected updated bob at index 1, got %+v", users[1])
	}

	if event := emitter.lastEvent(t); event.Type != hub.UsersUpdated {
		t.Errorf("expected %s event, got %s", hub.UsersUpdated, event.Type)
	}
}

func TestMalformedCollectionFailsOpen(t *testing.T) {
	db, kv, _ := newTestDatabase(t)

	if err := kv.Set("users", "{not json"); err != nil {
		t.Fatal(err)
	}

	if users := db.Users(); len(users) != 0 {
		t.Errorf("expected malformed collection to read as empty, got %d records", len(users))
	}
}

func TestFindUser(t *testing.T) {
	db, _, _ := newTestDatabase(t)

	if err := db.SaveUser(testUser(1, "alice")); err != nil {
		t.Fatal(err)
	}

	if _, found := db.FindUserByEmail("ALICE@Example.COM"); !found {
		t.Error("expected case-insensitive email lookup to find alice")
	}

	if _, found := db.FindUserByTag("Alice", "0001"); !found {
		t.Error("expected case-insensitive username lookup to find alice")
	}

	if _, found := db.FindUserByTag("alice", "0002"); found {
		t.Error("discriminator must match exactly")
	}

	if _, found := db.User(42); found {
		t.Error("expected unknown id to report not found")
	}
}

func TestSendFriendRequest(t *testing.T) {
	db, _, _ := newTestDatabase(t)

	result, err := db.SendFriendRequest(1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if result != database.RequestSent {
		t.Fatalf("expected %q, got %q", database.RequestSent, result)
	}

	requests := db.FriendRequestsFor(1)
	if len(requests) != 1 {
		t.Fatalf("expected exactly one pending request, got %d", len(requests))
	}
	if requests[0].Status != models.RequestPending {
		t.Errorf("expected pending status, got %q", requests[0].Status)
	}

	// sending the same request again changes nothing
	result, err = db.SendFriendRequest(1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if result != database.RequestExists {
		t.Errorf("expected %q on duplicate, got %q", database.RequestExists, result)
	}
	if len(db.FriendRequestsFor(1)) != 1 {
		t.Error("duplicate request must not create a second record")
	}
}

func TestMutualRequestAutoAccepts(t *testing.T) {
	db, _, _ := newTestDatabase(t)

	if err := db.SaveUser(testUser(1, "alice")); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveUser(testUser(2, "bob")); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveUser(testUser(3, "carol")); err != nil {
		t.Fatal(err)
	}

	if _, err := db.SendFriendRequest(2, 1); err != nil {
		t.Fatal(err)
	}

	result, err := db.SendFriendRequest(1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if result != database.RequestAccepted {
		t.Fatalf("expected %q for mutual request, got %q", database.RequestAccepted, result)
	}

	if remaining := db.FriendRequestsFor(1); len(remaining) != 0 {
		t.Errorf("expected no pending requests after auto-accept, got %d", len(remaining))
	}

	aliceFriends := db.Friends(1)
	if len(aliceFriends) != 1 || aliceFriends[0].ID != 2 {
		t.Errorf("expected alice's friends to be exactly [bob], got %+v", aliceFriends)
	}

	bobFriends := db.Friends(2)
	if len(bobFriends) != 1 || bobFriends[0].ID != 1 {
		t.Errorf("expected bob's friends to be exactly [alice], got %+v", bobFriends)
	}

	if friends := db.Friends(3); len(friends) != 0 {
		t.Errorf("carol must have no friends, got %+v", friends)
	}
}

func TestAcceptFriendRequest(t *testing.T) {
	db, _, _ := newTestDatabase(t)

	if err := db.SaveUser(testUser(1, "alice")); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveUser(testUser(2, "bob")); err != nil {
		t.Fatal(err)
	}

	if _, err := db.SendFriendRequest(1, 2); err != nil {
		t.Fatal(err)
	}

	requests := db.FriendRequestsFor(2)
	if len(requests) != 1 {
		t.Fatalf("expected one request, got %d", len(requests))
	}

	if err := db.AcceptFriendRequest(requests[0].ID); err != nil {
		t.Fatal(err)
	}

	if len(db.FriendRequestsFor(2)) != 0 {
		t.Error("accepted request must be removed")
	}
	if friends := db.Friends(2); len(friends) != 1 {
		t.Fatalf("expected one friend after accept, got %d", len(friends))
	}

	// accepting the removed id again is a no-op
	if err := db.AcceptFriendRequest(requests[0].ID); err != nil {
		t.Fatal(err)
	}
	if friends := db.Friends(2); len(friends) != 1 {
		t.Errorf("double accept must not duplicate the friendship, got %d friends", len(friends))
	}
}

func TestDeclineUnknownRequestIsNoOp(t *testing.T) {
	db, _, _ := newTestDatabase(t)

	if _, err := db.SendFriendRequest(1, 2); err != nil {
		t.Fatal(err)
	}

	if err := db.DeclineFriendRequest(99999); err != nil {
		t.Fatal(err)
	}

	if len(db.FriendRequestsFor(1)) != 1 {
		t.Error("declining an unknown id must leave the collection unchanged")
	}
}

func TestFriendsDropsDanglingIDs(t *testing.T) {
	db, _, _ := newTestDatabase(t)

	// only alice resolves, the friendship partner was never saved
	if err := db.SaveUser(testUser(1, "alice")); err != nil {
		t.Fatal(err)
	}
	if _, err := db.SendFriendRequest(2, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := db.SendFriendRequest(1, 2); err != nil {
		t.Fatal(err)
	}

	if friends := db.Friends(1); len(friends) != 0 {
		t.Errorf("unresolvable friend ids must be dropped, got %+v", friends)
	}
}
