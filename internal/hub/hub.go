package hub

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const syncChannel = "sync_events"

type Client struct {
	UserID    int64
	SessionID string
	Conn      *websocket.Conn
	Events    chan Event
}

var clients = make(map[string]*Client)
var clientsMutex sync.Mutex

var sugar *zap.SugaredLogger
var redisClient *redis.Client
var selfContained = true

var redisCtx = context.Background()

func Setup(_sugar *zap.SugaredLogger, _redisClient *redis.Client, _selfContained bool) {
	sugar = _sugar
	redisClient = _redisClient
	selfContained = _selfContained

	if !selfContained {
		go listenRedis()
	}
}

// listenRedis forwards sync events published by other backend processes to
// the sessions connected here.
func listenRedis() {
	pubsub := redisClient.Subscribe(redisCtx, syncChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var event Event
		err := json.Unmarshal([]byte(msg.Payload), &event)
		if err != nil {
			sugar.Error(err)
			continue
		}
		broadcast(event)
	}
}

// Emit delivers an event to every connected session, fire and forget. When
// running against redis the event goes through pub/sub so all backend
// processes see it.
func Emit(event Event) {
	if selfContained {
		broadcast(event)
		return
	}

	bytes, err := json.Marshal(event)
	if err != nil {
		sugar.Error(err)
		return
	}

	err = redisClient.Publish(redisCtx, syncChannel, string(bytes)).Err()
	if err != nil {
		sugar.Error(err)
	}
}

func broadcast(event Event) {
	clientsMutex.Lock()
	defer clientsMutex.Unlock()

	for sessionID, client := range clients {
		select {
		case client.Events <- event:
		default:
			// a session that stopped draining its feed shouldn't block the rest
			sugar.Warnf("Session ID [%s] isn't reading its event feed, dropping event", sessionID)
		}
	}
}

// Broadcaster satisfies the store's emitter interface with the hub above.
type Broadcaster struct{}

func (Broadcaster) Emit(event Event) {
	Emit(event)
}

func HandleClient(w http.ResponseWriter, r *http.Request, userID int64) {
	sugar.Debugf("Connecting user ID [%d] to WebSocket", userID)

	var upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
	defer conn.Close()

	sessionID, err := uuid.NewV7()
	if err != nil {
		sugar.Error(err)
		return
	}

	client := &Client{
		UserID:    userID,
		SessionID: sessionID.String(),
		Conn:      conn,
		Events:    make(chan Event, 32),
	}

	setClient(client)
	defer deleteClient(client.SessionID)

	done := make(chan struct{})

	// writing the event feed to the client
	go func() {
		for {
			select {
			case <-done:
				return
			case event, ok := <-client.Events:
				if !ok {
					return
				}
				err := conn.WriteJSON(event)
				if err != nil {
					sugar.Error(err)
					return
				}
			}
		}
	}()

	// clients don't send anything meaningful, reading only detects disconnect
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			sugar.Debug(err)
			break
		}
	}

	close(done)
}

func setClient(client *Client) {
	sugar.Debugf("Adding user ID [%d] to clients as session ID [%s]", client.UserID, client.SessionID)
	clientsMutex.Lock()
	defer clientsMutex.Unlock()

	clients[client.SessionID] = client
}

func deleteClient(sessionID string) {
	sugar.Debugf("Removing session ID [%s] from clients", sessionID)
	clientsMutex.Lock()
	defer clientsMutex.Unlock()

	delete(clients, sessionID)
}

func GetClient(sessionID string) (*Client, bool) {
	clientsMutex.Lock()
	defer clientsMutex.Unlock()

	client, exists := clients[sessionID]
	return client, exists
}
