package store

// Session holds the in-memory conversational state for one active
// conversation. It is advisory: losing it degrades prompt quality, never
// correctness, so a cache with TTL eviction is the right home for it.
type Session struct {
	ID     string `json:"id"` // ConversationID
	UserID string `json:"user_id"`

	// GuidedPhase is the name of the active guided-session phase. The
	// chat service advances it from the turn count on every turn.
	GuidedPhase string `json:"guided_phase"`

	// TurnCount counts user messages seen this session; the prompt
	// composer derives its conversation-depth hint from it.
	TurnCount int `json:"turn_count"`

	// ListRequested records that the user's last message explicitly asked
	// for a list, which relaxes the no-numbered-lists rule for one turn.
	ListRequested bool `json:"list_requested"`

	LastQuery string `json:"last_query"`
}

const (
	// Guided-session phases.
	PhaseCheckIn    = "CHECK_IN"
	PhaseExplore    = "EXPLORE"
	PhaseReflection = "REFLECTION"

	// Conversation-depth thresholds in user turns.
	DepthEstablishedTurns = 10
	DepthWarmTurns        = 4
)

// PhaseForTurn maps the running turn count onto the guided-session
// phase: open with a check-in, explore while the conversation warms up,
// then shift to reflection once it is established.
func PhaseForTurn(turnCount int) string {
	switch {
	case turnCount >= DepthEstablishedTurns:
		return PhaseReflection
	case turnCount >= DepthWarmTurns:
		return PhaseExplore
	default:
		return PhaseCheckIn
	}
}

// DepthHint maps the running turn count onto the depth directive the
// prompt composer embeds.
func (s *Session) DepthHint() string {
	switch {
	case s.TurnCount >= DepthEstablishedTurns:
		return "established"
	case s.TurnCount >= DepthWarmTurns:
		return "warming_up"
	default:
		return "opening"
	}
}
