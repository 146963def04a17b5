package api

import "time"

// Role identifies who authored a message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is a single transcript entry
type Message struct {
	UUID      string     `json:"uuid"`
	Role      Role       `json:"role"`
	Content   string     `json:"content"`
	Citations []Citation `json:"citations,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Citation points from an assistant answer back to a source document
type Citation struct {
	DocumentUUID    string  `json:"document_uuid"`
	DocumentTitle   string  `json:"document_title"`
	RelevantExcerpt string  `json:"relevant_excerpt"`
	ConfidenceScore float64 `json:"confidence_score"`
}

// Conversation summarises a transcript in the history list
type Conversation struct {
	UUID          string    `json:"uuid"`
	Title         string    `json:"title"`
	CreatedAt     time.Time `json:"created_at"`
	LastMessageAt time.Time `json:"last_message_at"`
}

// ConversationDetail is a conversation together with its transcript
type ConversationDetail struct {
	Conversation Conversation `json:"conversation"`
	Messages     []Message    `json:"messages"`
}

// QueryRequest is the body of a conversation query
type QueryRequest struct {
	Query            string `json:"query"`
	ConversationUUID string `json:"conversation_uuid,omitempty"`
}

// QueryResponse is the backend answer to a query
type QueryResponse struct {
	MessageUUID  string        `json:"message_uuid"`
	Response     string        `json:"response"`
	Citations    []Citation    `json:"citations"`
	CreatedAt    time.Time     `json:"created_at"`
	Conversation *Conversation `json:"conversation,omitempty"`
}

// AssistantMessage converts the response into a transcript entry
func (r *QueryResponse) AssistantMessage() Message {
	return Message{
		UUID:      r.MessageUUID,
		Role:      RoleAssistant,
		Content:   r.Response,
		Citations: r.Citations,
		CreatedAt: r.CreatedAt,
	}
}

// ExportFormat is the file type requested from the export endpoint
type ExportFormat string

const (
	FormatPDF      ExportFormat = "pdf"
	FormatMarkdown ExportFormat = "markdown"
)

// ExportRequest is the body of an export call
type ExportRequest struct {
	ConversationUUID string       `json:"conversation_uuid"`
	Format           ExportFormat `json:"format"`
}

// Tier ranks achievements; bronze is the lowest
type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

// Rank orders tiers from bronze (1) to platinum (4); unknown tiers rank 0
func (t Tier) Rank() int {
	switch t {
	case TierBronze:
		return 1
	case TierSilver:
		return 2
	case TierGold:
		return 3
	case TierPlatinum:
		return 4
	default:
		return 0
	}
}

// Achievement is a gamification record
type Achievement struct {
	UUID        string                 `json:"uuid"`
	Type        string                 `json:"type"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Icon        string                 `json:"icon"`
	Tier        Tier                   `json:"tier"`
	Progress    *int                   `json:"progress,omitempty"`
	Unlocked    bool                   `json:"unlocked"`
	UnlockedAt  *time.Time             `json:"unlocked_at,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// Streak is the consecutive-day activity counter
type Streak struct {
	CurrentStreak    int    `json:"current_streak"`
	LongestStreak    int    `json:"longest_streak"`
	LastActivityDate string `json:"last_activity_date"`
}

// AchievementsResponse is the payload of the achievements endpoint
type AchievementsResponse struct {
	Achievements []Achievement `json:"achievements"`
	Streak       *Streak       `json:"streak,omitempty"`
}

// User is the account returned on login
type User struct {
	UUID  string `json:"uuid"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// LoginRequest carries credentials to the auth endpoint
type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

// Session is an authenticated login
type Session struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	User        User      `json:"user"`
	ExpiresAt   time.Time `json:"-"`
}

// Expired reports whether the session has a known expiry in the past
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

func clampCitations(citations []Citation) {
	for i := range citations {
		switch {
		case citations[i].ConfidenceScore < 0:
			citations[i].ConfidenceScore = 0
		case citations[i].ConfidenceScore > 1:
			citations[i].ConfidenceScore = 1
		}
	}
}

func clampProgress(a *Achievement) {
	if a.Progress == nil {
		return
	}
	p := *a.Progress
	if p < 0 {
		p = 0
	} else if p > 100 {
		p = 100
	}
	a.Progress = &p
}
