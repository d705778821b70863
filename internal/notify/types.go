package notify

import (
	"strconv"
	"time"

	"lizard-economy/internal/notify/platforms"
)

type Kind string

const (
	KindPetDied          Kind = "pet_died"
	KindProposalReceived Kind = "proposal_received"
	KindProposalAccepted Kind = "proposal_accepted"
	KindTopUpCredited    Kind = "topup_credited"
	KindPurchase         Kind = "purchase"
	KindAdminGrant       Kind = "admin_grant"
	KindQuizTimeout      Kind = "quiz_timeout"
)

type Audience string

const (
	AudienceUser   Audience = "user"
	AudienceAdmins Audience = "admins"
)

type Field = platforms.Field

// Notice is one best-effort message produced by an economy operation.
type Notice struct {
	Kind     Kind
	Audience Audience
	UserID   int64
	Title    string
	Text     string
	Fields   []Field
}

func ToUser(userID int64, kind Kind, title, text string, fields ...Field) Notice {
	return Notice{Kind: kind, Audience: AudienceUser, UserID: userID, Title: title, Text: text, Fields: fields}
}

func ToAdmins(kind Kind, title, text string, fields ...Field) Notice {
	return Notice{Kind: kind, Audience: AudienceAdmins, Title: title, Text: text, Fields: fields}
}

func IntField(name string, v int64) Field {
	return Field{Name: name, Value: strconv.FormatInt(v, 10)}
}

// Notifier accepts notices without blocking the caller. Notify reports
// whether the notice was queued.
type Notifier interface {
	Notify(n Notice) bool
}

// Discard drops every notice.
type Discard struct{}

func (Discard) Notify(Notice) bool { return false }

type Target struct {
	Platform string
	Endpoint string
}

func (t Target) key() string {
	return t.Platform + "|" + t.Endpoint
}

type Config struct {
	Enabled             bool
	AdminChatIDs        []int64
	DiscordWebhook      string
	Workers             int
	RetryMax            int
	RetryBase           time.Duration
	FailureThreshold    int
	CircuitOpenDuration time.Duration
	RequestTimeout      time.Duration
	DispatchBuffer      int
}

type job struct {
	Target  Target
	Notice  Notice
	Message platforms.Message
	Attempt int
}
