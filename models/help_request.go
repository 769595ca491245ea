package models

import "time"

// Help request statuses.
const (
	HelpStatusPending    = "pending"
	HelpStatusInProgress = "in_progress"
	HelpStatusResolved   = "resolved"
	HelpStatusEscalated  = "escalated"
)

// HelpRequestCreate is the payload for escalating a customer question.
type HelpRequestCreate struct {
	Question string `json:"question" binding:"required"`
	RoomName string `json:"roomName,omitempty"`
}

// SupervisorResponse is the supervisor's answer to a pending help request.
type SupervisorResponse struct {
	Answer             string `json:"answer" binding:"required"`
	ResolutionNotes    string `json:"resolutionNotes,omitempty"`
	AddToKnowledgeBase bool   `json:"addToKnowledgeBase"`
	KBCategory         string `json:"kbCategory,omitempty"`
}

// HelpRequest is a persisted escalation record.
type HelpRequest struct {
	ID                  string     `bson:"id" json:"id"`
	Question            string     `bson:"question" json:"question"`
	Answer              string     `bson:"answer,omitempty" json:"answer,omitempty"`
	Status              string     `bson:"status" json:"status"`
	RoomName            string     `bson:"roomName,omitempty" json:"roomName,omitempty"`
	CreatedAt           time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time  `bson:"updatedAt" json:"updatedAt"`
	ResolutionNotes     string     `bson:"resolutionNotes,omitempty" json:"resolutionNotes,omitempty"`
	ResponseTimeSeconds float64    `bson:"responseTimeSeconds,omitempty" json:"responseTimeSeconds,omitempty"`
	ResolvedBy          string     `bson:"resolvedBy,omitempty" json:"resolvedBy,omitempty"`
	ResolvedAt          *time.Time `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
}

// EscalationPayload is the body of the escalation task delivered to the
// supervisor webhook.
type EscalationPayload struct {
	RequestID string `json:"requestId"`
	Question  string `json:"question"`
	RoomName  string `json:"roomName,omitempty"`
	CreatedAt string `json:"createdAt"`
}
