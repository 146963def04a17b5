// Package conversation holds the state of the conversation hub: the active
// transcript, the history list and the citation panel.
package conversation

import (
	"context"
	"strings"
	"sync"
	"time"

	"apex-client/api"
	"apex-client/utils"

	"github.com/google/uuid"
)

// ErrorMessage is appended as a system message when a query fails
const ErrorMessage = "Sorry, there was an error processing your message. Please try again."

// Suggestions are offered on an empty transcript
var Suggestions = []string{
	"Show me all CAT equipment",
	"What maintenance issues are trending?",
	"Find documents about hydraulic systems",
}

// Backend is the subset of the API the hub talks to
type Backend interface {
	History(ctx context.Context) ([]api.Conversation, error)
	Conversation(ctx context.Context, id string) (*api.ConversationDetail, error)
	Query(ctx context.Context, req api.QueryRequest) (*api.QueryResponse, error)
	Export(ctx context.Context, req api.ExportRequest) ([]byte, error)
}

// SaveFunc writes an export payload and returns where it went
type SaveFunc func(conversationID, format string, payload []byte) (string, error)

// State is an immutable snapshot of the hub
type State struct {
	Messages         []api.Message
	Input            string
	Loading          bool
	PendingID        string // provisional user message awaiting its answer
	Current          *api.Conversation
	Conversations    []api.Conversation
	SelectedCitation *api.Citation
	ShowSidebar      bool
	ShowCitations    bool
}

// Title returns the header text for the current conversation
func (s State) Title() string {
	if s.Current != nil && s.Current.Title != "" {
		return s.Current.Title
	}
	return "New Conversation"
}

// CanSend reports whether the send action is enabled
func (s State) CanSend() bool {
	return strings.TrimSpace(s.Input) != "" && !s.Loading
}

// Options configures a Hub
type Options struct {
	Save          SaveFunc
	ShowSidebar   bool
	ShowCitations bool
	NewID         func() string
	Now           func() time.Time
}

// Hub mediates between user input and the query endpoint
type Hub struct {
	backend Backend
	logger  *utils.Logger
	save    SaveFunc
	newID   func() string
	now     func() time.Time

	mu    sync.Mutex
	state State

	// OnChange is called after every state change, outside the lock
	OnChange func(State)
	// OnFocusInput is called when the input should take focus
	OnFocusInput func()
}

// NewHub creates a hub with an empty transcript
func NewHub(backend Backend, logger *utils.Logger, opts Options) *Hub {
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Hub{
		backend: backend,
		logger:  logger,
		save:    opts.Save,
		newID:   opts.NewID,
		now:     opts.Now,
		state: State{
			ShowSidebar:   opts.ShowSidebar,
			ShowCitations: opts.ShowCitations,
		},
	}
}

// Snapshot returns a copy of the current state
func (h *Hub) Snapshot() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.snapshotLocked()
}

func (h *Hub) snapshotLocked() State {
	s := h.state
	s.Messages = append([]api.Message(nil), h.state.Messages...)
	s.Conversations = append([]api.Conversation(nil), h.state.Conversations...)
	if h.state.Current != nil {
		c := *h.state.Current
		s.Current = &c
	}
	if h.state.SelectedCitation != nil {
		c := *h.state.SelectedCitation
		s.SelectedCitation = &c
	}
	return s
}

// update applies fn under the lock and then notifies listeners
func (h *Hub) update(fn func(s *State)) {
	h.mu.Lock()
	fn(&h.state)
	snap := h.snapshotLocked()
	h.mu.Unlock()

	if h.OnChange != nil {
		h.OnChange(snap)
	}
}

// SetInput records the text in the message input
func (h *Hub) SetInput(text string) {
	h.update(func(s *State) { s.Input = text })
}

// LoadHistory refreshes the conversation list. Failures leave the list as it was.
func (h *Hub) LoadHistory(ctx context.Context) {
	convs, err := h.backend.History(ctx)
	if err != nil {
		h.logger.Error("Failed to load conversations: %v", err)
		return
	}
	h.update(func(s *State) { s.Conversations = convs })
}

// LoadConversation replaces the transcript with a stored conversation.
// Failures leave the current state untouched.
func (h *Hub) LoadConversation(ctx context.Context, id string) {
	detail, err := h.backend.Conversation(ctx, id)
	if err != nil {
		h.logger.Error("Failed to load conversation %s: %v", id, err)
		return
	}
	h.update(func(s *State) {
		s.Messages = append([]api.Message(nil), detail.Messages...)
		conv := detail.Conversation
		s.Current = &conv
	})
}

// Send submits the input as a query. It returns false without doing anything
// when the input is blank or a previous query is still outstanding.
func (h *Hub) Send(ctx context.Context) bool {
	var text, convID string
	sent := false

	h.update(func(s *State) {
		text = strings.TrimSpace(s.Input)
		if text == "" || s.Loading {
			return
		}
		userMsg := api.Message{
			UUID:      h.newID(),
			Role:      api.RoleUser,
			Content:   text,
			CreatedAt: h.now(),
		}
		s.Messages = append(s.Messages, userMsg)
		s.Input = ""
		s.Loading = true
		s.PendingID = userMsg.UUID
		if s.Current != nil {
			convID = s.Current.UUID
		}
		sent = true
	})
	if !sent {
		return false
	}

	resp, err := h.backend.Query(ctx, api.QueryRequest{Query: text, ConversationUUID: convID})
	if err != nil {
		h.logger.Error("Failed to send message: %v", err)
		h.update(func(s *State) {
			s.Messages = append(s.Messages, api.Message{
				UUID:      h.newID(),
				Role:      api.RoleSystem,
				Content:   ErrorMessage,
				CreatedAt: h.now(),
			})
			s.Loading = false
			s.PendingID = ""
		})
		return true
	}

	h.update(func(s *State) {
		s.Messages = append(s.Messages, resp.AssistantMessage())
		if resp.Conversation != nil {
			conv := *resp.Conversation
			s.Current = &conv
		}
		s.Loading = false
		s.PendingID = ""
	})

	if resp.Conversation != nil {
		h.LoadHistory(ctx)
	}
	return true
}

// StartNew clears the transcript and focuses the input. No network call.
func (h *Hub) StartNew() {
	h.update(func(s *State) {
		s.Messages = nil
		s.Current = nil
		s.SelectedCitation = nil
	})
	if h.OnFocusInput != nil {
		h.OnFocusInput()
	}
}

// Export downloads the current conversation in the given format. It returns
// the written path; failures are logged and reported but change no state.
func (h *Hub) Export(ctx context.Context, format api.ExportFormat) (string, error) {
	current := h.Snapshot().Current
	if current == nil {
		return "", nil
	}

	payload, err := h.backend.Export(ctx, api.ExportRequest{ConversationUUID: current.UUID, Format: format})
	if err != nil {
		h.logger.Error("Failed to export conversation: %v", err)
		return "", err
	}

	if h.save == nil {
		return "", nil
	}
	path, err := h.save(current.UUID, string(format), payload)
	if err != nil {
		h.logger.Error("Failed to save export: %v", err)
		return "", err
	}

	h.logger.Info("Exported conversation %s to %s", current.UUID, path)
	return path, nil
}

// UseSuggestion fills the input with a suggested prompt
func (h *Hub) UseSuggestion(text string) {
	h.SetInput(text)
}

// SelectCitation shows a citation in the side panel
func (h *Hub) SelectCitation(c api.Citation) {
	h.update(func(s *State) {
		s.SelectedCitation = &c
		s.ShowCitations = true
	})
}

// ToggleSidebar shows or hides the history sidebar
func (h *Hub) ToggleSidebar() {
	h.update(func(s *State) { s.ShowSidebar = !s.ShowSidebar })
}

// CloseCitations hides the citation panel
func (h *Hub) CloseCitations() {
	h.update(func(s *State) { s.ShowCitations = false })
}
