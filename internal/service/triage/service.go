package triage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/emergency-ai/backend/internal/model/firstaid"
	"github.com/emergency-ai/backend/internal/model/triage"
	"github.com/emergency-ai/backend/internal/service/classify"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptyMessage    = errors.New("message text is required")
)

// Greeting opens every new session.
const Greeting = "Hi, I am Emergency AI. Describe what you are experiencing."

// safetyFallback replaces the assistant reply when the classification
// backend cannot be reached. The underlying cause is logged, never shown.
const safetyFallback = "Service is temporarily unavailable. If this feels urgent, contact emergency services now."

const defaultHistoryLimit = 8

// Result is what one accepted submission produces: the assistant reply, the
// first-aid guides matched against it, and the updated session state.
type Result struct {
	Reply    triage.Turn      `json:"reply"`
	FirstAid []firstaid.Guide `json:"firstAid"`
	Session  triage.Session   `json:"session"`
}

// Event is pushed to session subscribers as the conversation advances.
type Event struct {
	Type            string           `json:"type"` // "turn" or "escalation"
	SessionID       string           `json:"sessionId"`
	Turn            *triage.Turn     `json:"turn,omitempty"`
	FirstAid        []firstaid.Guide `json:"firstAid,omitempty"`
	EmergencyActive bool             `json:"emergencyActive"`
}

// sessionState bundles a session with its turn log and subscribers. The
// per-session mutex serializes submits: one must complete before the next
// is accepted.
type sessionState struct {
	mu      sync.Mutex
	session triage.Session
	turns   []triage.Turn
	subs    map[int]chan Event
	nextSub int
}

// Service owns every active triage session and drives the per-turn state
// machine. Sessions live in memory and vanish with the process.
type Service struct {
	mu           sync.RWMutex
	sessions     map[string]*sessionState
	classifier   classify.Client
	guides       *firstaid.Catalog
	historyLimit int
}

// NewService builds the session controller. classifier may be nil when no
// backend is configured; submissions then degrade to the safety fallback.
func NewService(classifier classify.Client, guides *firstaid.Catalog, historyLimit int) *Service {
	if historyLimit < 1 {
		historyLimit = defaultHistoryLimit
	}
	if guides == nil {
		guides = firstaid.NewCatalog(firstaid.Seed())
	}

	return &Service{
		sessions:     make(map[string]*sessionState),
		classifier:   classifier,
		guides:       guides,
		historyLimit: historyLimit,
	}
}

// CreateSession provisions a session seeded with the opening greeting.
func (s *Service) CreateSession(_ context.Context) (triage.Session, error) {
	state := &sessionState{
		session: triage.Session{
			ID:        uuid.NewString(),
			CreatedAt: time.Now().UTC(),
		},
		subs: make(map[int]chan Event),
	}
	state.turns = append(state.turns, newTurn(triage.RoleAssistant, Greeting))

	s.mu.Lock()
	s.sessions[state.session.ID] = state
	s.mu.Unlock()

	return state.session, nil
}

// GetSession returns the current session state.
func (s *Service) GetSession(_ context.Context, sessionID string) (triage.Session, error) {
	state, err := s.state(sessionID)
	if err != nil {
		return triage.Session{}, err
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	return state.session, nil
}

// Transcript returns the full ordered turn log.
func (s *Service) Transcript(_ context.Context, sessionID string) ([]triage.Turn, error) {
	state, err := s.state(sessionID)
	if err != nil {
		return nil, err
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	return append([]triage.Turn(nil), state.turns...), nil
}

// Submit drives one user turn through classification and interpretation.
// Empty input is rejected before any state change; backend failure degrades
// to the fixed safety reply without touching the risk score or the
// emergency flag.
func (s *Service) Submit(ctx context.Context, sessionID, userText string) (Result, error) {
	trimmed := strings.TrimSpace(userText)
	if trimmed == "" {
		return Result{}, ErrEmptyMessage
	}

	state, err := s.state(sessionID)
	if err != nil {
		return Result{}, err
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	userTurn := newTurn(triage.RoleUser, trimmed)
	state.turns = append(state.turns, userTurn)
	state.publish(Event{
		Type:            "turn",
		SessionID:       state.session.ID,
		Turn:            &userTurn,
		EmergencyActive: state.session.EmergencyActive,
	})

	raw, err := s.classify(ctx, state)
	if err != nil {
		log.Printf("[triage] classification failed for session=%s: %v", sessionID, err)
		return s.appendReply(state, safetyFallback), nil
	}

	outcome := Interpret(raw)
	if outcome.Kind == OutcomeVerdict {
		score := outcome.RiskScore
		state.session.RiskScore = &score

		// The emergency flag is monotonic: only an explicit reset
		// clears it.
		if triage.IsEmergency(outcome.Severity) && !state.session.EmergencyActive {
			state.session.EmergencyActive = true
			state.publish(Event{
				Type:            "escalation",
				SessionID:       state.session.ID,
				EmergencyActive: true,
			})
		}
	}

	return s.appendReply(state, outcome.DisplayText), nil
}

// ClearEmergency lowers the emergency flag. This is the explicit external
// reset (e.g. a user-initiated SOS cancel); nothing else clears the flag.
func (s *Service) ClearEmergency(_ context.Context, sessionID string) (triage.Session, error) {
	state, err := s.state(sessionID)
	if err != nil {
		return triage.Session{}, err
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	if state.session.EmergencyActive {
		state.session.EmergencyActive = false
		state.publish(Event{
			Type:            "escalation",
			SessionID:       state.session.ID,
			EmergencyActive: false,
		})
	}
	return state.session, nil
}

// EndSession drops the session and closes its event subscribers.
func (s *Service) EndSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	state, ok := s.sessions[sessionID]
	if ok {
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	for id, ch := range state.subs {
		close(ch)
		delete(state.subs, id)
	}
	return nil
}

// Subscribe registers an event listener for one session. The returned
// cancel func must be called when the listener goes away.
func (s *Service) Subscribe(sessionID string) (<-chan Event, func(), error) {
	state, err := s.state(sessionID)
	if err != nil {
		return nil, nil, err
	}

	state.mu.Lock()
	id := state.nextSub
	state.nextSub++
	ch := make(chan Event, 16)
	state.subs[id] = ch
	state.mu.Unlock()

	cancel := func() {
		state.mu.Lock()
		defer state.mu.Unlock()
		if existing, ok := state.subs[id]; ok {
			close(existing)
			delete(state.subs, id)
		}
	}
	return ch, cancel, nil
}

// Guides exposes the first-aid catalog backing per-reply matches.
func (s *Service) Guides() *firstaid.Catalog {
	return s.guides
}

func (s *Service) state(sessionID string) (*sessionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return state, nil
}

// classify builds the bounded request and runs the single attempt. Called
// with the session lock held.
func (s *Service) classify(ctx context.Context, state *sessionState) (string, error) {
	if s.classifier == nil {
		return "", fmt.Errorf("%w: no backend configured", classify.ErrUnavailable)
	}

	recent := state.recent(s.historyLimit)
	history := make([]classify.Message, 0, len(recent))
	for _, turn := range recent {
		history = append(history, classify.Message{Role: string(turn.Role), Content: turn.Text})
	}

	return s.classifier.Classify(ctx, classify.Request{
		Instructions: classify.Instructions,
		History:      history,
	})
}

// appendReply records the assistant turn, publishes it with its first-aid
// matches, and snapshots the session. Called with the session lock held.
func (s *Service) appendReply(state *sessionState, text string) Result {
	reply := newTurn(triage.RoleAssistant, text)
	state.turns = append(state.turns, reply)

	matches := s.guides.Match(reply.Text)
	state.publish(Event{
		Type:            "turn",
		SessionID:       state.session.ID,
		Turn:            &reply,
		FirstAid:        matches,
		EmergencyActive: state.session.EmergencyActive,
	})

	return Result{Reply: reply, FirstAid: matches, Session: state.session}
}

// recent returns the last n turns in original order without mutating the
// log. Called with the session lock held.
func (st *sessionState) recent(n int) []triage.Turn {
	start := 0
	if len(st.turns) > n {
		start = len(st.turns) - n
	}
	return append([]triage.Turn(nil), st.turns[start:]...)
}

// publish fans an event out to subscribers, dropping it for any listener
// whose buffer is full. Called with the session lock held.
func (st *sessionState) publish(ev Event) {
	for _, ch := range st.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func newTurn(role triage.Role, text string) triage.Turn {
	return triage.Turn{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
}
