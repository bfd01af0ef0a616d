package handlers

import (
	"bytes"
	"chatclone-backend/internal/database"
	"chatclone-backend/internal/hub"
	"chatclone-backend/internal/jwt"
	"chatclone-backend/internal/keyValue"
	"chatclone-backend/internal/models"
	"chatclone-backend/internal/snowflake"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	_ = snowflake.Setup(0)
	jwt.Setup("test-secret", false)
	os.Exit(m.Run())
}

type nopEmitter struct{}

func (nopEmitter) Emit(event hub.Event) {}

func setupTestHandlers(t *testing.T) {
	t.Helper()
	sugar = zap.NewNop().Sugar()
	db = database.Setup(keyValue.NewMemoryStore(), nopEmitter{}, sugar)
}

func saveTestUser(t *testing.T, id int64, username string, password string) models.User {
	t.Helper()

	passwordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	user := models.User{
		ID:            id,
		Email:         username + "@example.com",
		UserName:      username,
		Discriminator: "0001",
		DisplayName:   username,
		Password:      passwordBytes,
		AvatarColor:   "#5865F2",
		Status:        models.StatusOnline,
		JoinedAt:      time.Now().UnixMilli(),
	}
	if err := db.SaveUser(user); err != nil {
		t.Fatal(err)
	}
	return user
}

func authedRequest(method string, target string, body []byte, userID int64) *http.Request {
	r := httptest.NewRequest(method, target, bytes.NewReader(body))
	return r.WithContext(context.WithValue(r.Context(), UserIDKeyType{}, userID))
}

func TestRegister(t *testing.T) {
	setupTestHandlers(t)

	body := []byte(`{
		"email": "alice@gmail.com",
		"username": "alice",
		"displayName": "Alice",
		"password": "Secret123",
		"confirmPassword": "Secret123"
	}`)

	w := httptest.NewRecorder()
	Register(w, httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body)))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	jwtCookie := false
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "JWT" && cookie.Value != "" {
			jwtCookie = true
		}
	}
	if !jwtCookie {
		t.Error("expected a JWT cookie on successful registration")
	}

	user, found := db.FindUserByEmail("alice@gmail.com")
	if !found {
		t.Fatal("expected registered user to be saved")
	}
	if len(user.Discriminator) != 4 {
		t.Errorf("expected a 4-digit discriminator, got %q", user.Discriminator)
	}
	if bcrypt.CompareHashAndPassword(user.Password, []byte("Secret123")) != nil {
		t.Error("stored password hash doesn't match the registration password")
	}
}

func TestRegisterValidationErrors(t *testing.T) {
	setupTestHandlers(t)

	body := []byte(`{
		"email": "not-an-email",
		"username": "alice",
		"password": "short",
		"confirmPassword": "short"
	}`)

	w := httptest.NewRecorder()
	Register(w, httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body)))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var fieldErrors map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &fieldErrors); err != nil {
		t.Fatalf("expected a field error map, got %q", w.Body.String())
	}
	if fieldErrors["Email"] == "" {
		t.Error("expected an Email field error")
	}
	if fieldErrors["Password"] == "" {
		t.Error("expected a Password field error")
	}
}

func TestLogin(t *testing.T) {
	setupTestHandlers(t)
	saveTestUser(t, 1, "alice", "Secret123")

	w := httptest.NewRecorder()
	Login(w, httptest.NewRequest(http.MethodPost, "/api/auth/login",
		bytes.NewReader([]byte(`{"email": "alice@example.com", "password": "Secret123"}`))))
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for valid login, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	Login(w, httptest.NewRequest(http.MethodPost, "/api/auth/login",
		bytes.NewReader([]byte(`{"email": "alice@example.com", "password": "WrongPass1"}`))))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong password, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	Login(w, httptest.NewRequest(http.MethodPost, "/api/auth/login",
		bytes.NewReader([]byte(`{"email": "nobody@example.com", "password": "Secret123"}`))))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for unknown email, got %d", w.Code)
	}
}

func TestSendFriendRequestHandler(t *testing.T) {
	setupTestHandlers(t)
	alice := saveTestUser(t, 1, "alice", "Secret123")
	saveTestUser(t, 2, "bob", "Secret123")

	w := httptest.NewRecorder()
	SendFriendRequest(w, authedRequest(http.MethodPost, "/api/friends/request",
		[]byte(`{"username": "bob", "discriminator": "0001"}`), alice.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if result["result"] != "sent" {
		t.Errorf("expected result %q, got %q", "sent", result["result"])
	}

	// requesting yourself
	w = httptest.NewRecorder()
	SendFriendRequest(w, authedRequest(http.MethodPost, "/api/friends/request",
		[]byte(`{"username": "alice", "discriminator": "0001"}`), alice.ID))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for self request, got %d", w.Code)
	}

	// unknown tag
	w = httptest.NewRecorder()
	SendFriendRequest(w, authedRequest(http.MethodPost, "/api/friends/request",
		[]byte(`{"username": "nobody", "discriminator": "9999"}`), alice.ID))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown tag, got %d", w.Code)
	}
}

func TestServerAndInviteFlow(t *testing.T) {
	setupTestHandlers(t)
	alice := saveTestUser(t, 1, "alice", "Secret123")
	bob := saveTestUser(t, 2, "bob", "Secret123")

	w := httptest.NewRecorder()
	CreateServer(w, authedRequest(http.MethodPost, "/api/server/create?name=clubhouse", nil, alice.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var server models.Server
	if err := json.Unmarshal(w.Body.Bytes(), &server); err != nil {
		t.Fatal(err)
	}
	if server.Name != "clubhouse" {
		t.Errorf("expected server name %q, got %q", "clubhouse", server.Name)
	}
	if len(server.Channels) != 2 {
		t.Errorf("expected the default text and voice channels, got %+v", server.Channels)
	}
	if len(server.Members) != 1 || server.Members[0].ID != alice.ID {
		t.Errorf("expected the owner as the only member, got %+v", server.Members)
	}

	w = httptest.NewRecorder()
	CreateInvite(w, authedRequest(http.MethodPost,
		"/api/invite/create?serverID="+jsonID(server.ID), nil, alice.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var invite models.Invite
	if err := json.Unmarshal(w.Body.Bytes(), &invite); err != nil {
		t.Fatal(err)
	}

	// bob can't invite before joining
	w = httptest.NewRecorder()
	CreateInvite(w, authedRequest(http.MethodPost,
		"/api/invite/create?serverID="+jsonID(server.ID), nil, bob.ID))
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for non-member invite creation, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	UseInvite(w, authedRequest(http.MethodPost, "/api/invite/use?code="+invite.Code, nil, bob.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var joined models.Server
	if err := json.Unmarshal(w.Body.Bytes(), &joined); err != nil {
		t.Fatal(err)
	}
	if len(joined.Members) != 2 {
		t.Errorf("expected 2 members after bob joined, got %d", len(joined.Members))
	}

	// bob sees the server in his list now
	w = httptest.NewRecorder()
	GetServerList(w, authedRequest(http.MethodGet, "/api/server/fetch", nil, bob.ID))
	var servers []models.Server
	if err := json.Unmarshal(w.Body.Bytes(), &servers); err != nil {
		t.Fatal(err)
	}
	if len(servers) != 1 {
		t.Errorf("expected bob's server list to hold 1 server, got %d", len(servers))
	}
}

func TestCreateAndFetchMessages(t *testing.T) {
	setupTestHandlers(t)
	alice := saveTestUser(t, 1, "alice", "Secret123")
	bob := saveTestUser(t, 2, "bob", "Secret123")

	body := []byte(`{"content": "hey bob", "dmUserID": "2"}`)
	w := httptest.NewRecorder()
	CreateMessage(w, authedRequest(http.MethodPost, "/api/message/create", body, alice.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// both orderings read the same conversation
	w = httptest.NewRecorder()
	GetMessageList(w, authedRequest(http.MethodGet, "/api/message/fetch?dmUserID=1", nil, bob.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var messages []models.Message
	if err := json.Unmarshal(w.Body.Bytes(), &messages); err != nil {
		t.Fatal(err)
	}
	if len(messages) != 1 || messages[0].Content != "hey bob" {
		t.Errorf("expected bob to read alice's DM, got %+v", messages)
	}

	// both or neither context is an error
	w = httptest.NewRecorder()
	GetMessageList(w, authedRequest(http.MethodGet, "/api/message/fetch", nil, bob.ID))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without a context, got %d", w.Code)
	}
}

func jsonID(id int64) string {
	bytes, _ := json.Marshal(id)
	return string(bytes)
}
