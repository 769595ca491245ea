package models

// Conversation states for one call session. The machine is cyclic per booking:
// completed folds straight back into collecting after the context reset.
const (
	StateCollecting           = "collecting"
	StateReadyForConfirmation = "ready_for_confirmation"
	StateCompleted            = "completed"
)

// AvailabilityCheck records one availability lookup made during the call.
type AvailabilityCheck struct {
	Date      string `json:"date"`
	Time      string `json:"time,omitempty"`
	Timestamp string `json:"timestamp"`
}

// AgentSession holds full conversational context for one call: the booking
// draft, the state machine position, and tool bookkeeping. Owned exclusively
// by its call; tool calls within a session never overlap.
type AgentSession struct {
	SessionID              string              `json:"sessionId"`
	RoomName               string              `json:"roomName,omitempty"`
	State                  string              `json:"state"`
	WaitingForConfirmation bool                `json:"waitingForConfirmation"`
	Booking                BookingContext      `json:"booking"`
	AvailabilityChecks     []AvailabilityCheck `json:"availabilityChecks,omitempty"`
	LastToolCalled         string              `json:"lastToolCalled,omitempty"`
}

// NewAgentSession returns a fresh session in the collecting state.
func NewAgentSession(sessionID, roomName string) *AgentSession {
	return &AgentSession{
		SessionID: sessionID,
		RoomName:  roomName,
		State:     StateCollecting,
	}
}
