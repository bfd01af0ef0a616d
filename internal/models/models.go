package models

const (
	StatusOnline  = "online"
	StatusIdle    = "idle"
	StatusDnd     = "dnd"
	StatusOffline = "offline"
)

const (
	ChannelTypeText  = "text"
	ChannelTypeVoice = "voice"
)

type User struct {
	ID            int64    `json:"id,string"`
	Email         string   `json:"email,omitempty"`
	UserName      string   `json:"userName"`
	Discriminator string   `json:"discriminator"`
	DisplayName   string   `json:"displayName"`
	Phone         string   `json:"phone,omitempty"`
	Password      []byte   `json:"password,omitempty"`
	AvatarColor   string   `json:"avatarColor"`
	Status        string   `json:"status"`
	Roles         []string `json:"roles,omitempty"`
	JoinedAt      int64    `json:"joinedAt"`
}

// Snapshot strips the fields that must never leave the backend before a user
// record is embedded into servers or messages.
func (u User) Snapshot() User {
	u.Email = ""
	u.Phone = ""
	u.Password = nil
	return u
}

type Channel struct {
	ID   int64  `json:"id,string"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Server members are denormalized user snapshots taken at join time, they are
// not kept in sync with the users collection afterwards.
type Server struct {
	ID       int64     `json:"id,string"`
	OwnerID  int64     `json:"ownerID,string"`
	Name     string    `json:"name"`
	Icon     string    `json:"icon,omitempty"`
	Channels []Channel `json:"channels"`
	Members  []User    `json:"members"`
}

const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestDeclined = "declined"
)

type FriendRequest struct {
	ID         int64  `json:"id,string"`
	FromUserID int64  `json:"fromUserID,string"`
	ToUserID   int64  `json:"toUserID,string"`
	Status     string `json:"status"`
	Timestamp  int64  `json:"timestamp"`
}

// Friendship is symmetric, one stored pair means both directions are friends.
type Friendship struct {
	UserID1   int64 `json:"userID1,string"`
	UserID2   int64 `json:"userID2,string"`
	Timestamp int64 `json:"timestamp"`
}

type Invite struct {
	Code      string `json:"code"`
	ServerID  int64  `json:"serverID,string"`
	CreatedBy int64  `json:"createdBy,string"`
	CreatedAt int64  `json:"createdAt"`
	Uses      int    `json:"uses"`
}

type Attachment struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Url  string `json:"url"`
	Type string `json:"type"`
}

type VoiceMessage struct {
	Url          string  `json:"url"`
	DurationSecs float64 `json:"durationSecs"`
}

type Message struct {
	ID          int64         `json:"id,string"`
	Author      User          `json:"author"`
	Timestamp   int64         `json:"timestamp"`
	Content     string        `json:"content"`
	Attachments []Attachment  `json:"attachments,omitempty"`
	Voice       *VoiceMessage `json:"voice,omitempty"`
}

type ConfigFile struct {
	Address           string
	Port              string
	BehindNginx       bool
	TlsCert           string
	TlsKey            string
	PrintHttpRequests bool
	JwtSecret         string
	SnowflakeWorkerID int64
	SelfContained     bool
	DbUser            string
	DbPassword        string
	DbAddress         string
	DbPort            string
	DbDatabase        string
	RedisAddress      string
	RedisPassword     string
	RedisDb           int
}
