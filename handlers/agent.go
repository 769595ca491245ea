package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CaptainRedCodes/Saloon-AI-Agent/models"
	agentSvc "github.com/CaptainRedCodes/Saloon-AI-Agent/services/agent"
	"github.com/CaptainRedCodes/Saloon-AI-Agent/services/booking"
	"github.com/CaptainRedCodes/Saloon-AI-Agent/utils"
)

// AgentHandler exposes the voice-agent tool endpoints.
type AgentHandler struct {
	Service agentSvc.AgentService
}

// NewAgentHandler constructs an AgentHandler.
func NewAgentHandler(svc agentSvc.AgentService) *AgentHandler {
	return &AgentHandler{Service: svc}
}

// ToolResponse is the uniform body for tool endpoints. Reply is the
// conversational string the voice model speaks; Status tells the caller
// whether it is an answer or a corrective prompt.
type ToolResponse struct {
	Status string `json:"status"`
	Reply  string `json:"reply"`
}

// respondToolError maps expected booking-core conditions onto conversational
// corrective prompts and everything else onto HTTP errors.
func respondToolError(c *gin.Context, err error) {
	if errors.Is(err, agentSvc.ErrSessionNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Session not found", err.Error())
		return
	}

	var be *booking.BookingError
	if errors.As(err, &be) {
		switch be.Kind {
		case booking.KindValidation, booking.KindStateViolation:
			c.JSON(http.StatusOK, ToolResponse{Status: string(be.Kind), Reply: be.Message})
		case booking.KindStorageUnavailable:
			c.JSON(http.StatusOK, ToolResponse{
				Status: string(be.Kind),
				Reply:  "I'm having trouble checking our calendar right now. Let me get help from my supervisor.",
			})
		case booking.KindPersistenceFailure:
			c.JSON(http.StatusOK, ToolResponse{
				Status: string(be.Kind),
				Reply:  "I couldn't save the booking just now, so it has not been made. Please try again in a moment or contact us directly.",
			})
		default:
			utils.JSONError(c, http.StatusInternalServerError, "Tool failed", be.Message)
		}
		return
	}

	utils.JSONError(c, http.StatusInternalServerError, "Tool failed", err.Error())
}

// StartSessionHandler creates a new call session.
func (h *AgentHandler) StartSessionHandler(c *gin.Context) {
	var input struct {
		RoomName string `json:"roomName"`
	}
	// Body is optional; a bare POST starts an anonymous session.
	_ = c.ShouldBindJSON(&input)

	session, err := h.Service.StartSession(c.Request.Context(), input.RoomName)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to start session", err.Error())
		return
	}
	c.JSON(http.StatusOK, session)
}

// EndSessionHandler discards a call session.
func (h *AgentHandler) EndSessionHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")
	if err := h.Service.EndSession(c.Request.Context(), sessionID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to end session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// CurrentDateTimeHandler returns the current date and time for the agent.
func (h *AgentHandler) CurrentDateTimeHandler(c *gin.Context) {
	c.JSON(http.StatusOK, ToolResponse{Status: "ok", Reply: h.Service.CurrentDateTime()})
}

// UpdateBookingContextHandler applies collected booking information.
func (h *AgentHandler) UpdateBookingContextHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var input models.BookingUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	reply, err := h.Service.UpdateBookingContext(c.Request.Context(), sessionID, input)
	if err != nil {
		respondToolError(c, err)
		return
	}
	c.JSON(http.StatusOK, ToolResponse{Status: "ok", Reply: reply})
}

// GetBookingSummaryHandler reads back the draft and arms confirmation.
func (h *AgentHandler) GetBookingSummaryHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")

	reply, err := h.Service.GetBookingSummary(c.Request.Context(), sessionID)
	if err != nil {
		respondToolError(c, err)
		return
	}
	c.JSON(http.StatusOK, ToolResponse{Status: "ok", Reply: reply})
}

// CheckAvailabilityHandler checks slot availability for a date and optional time.
func (h *AgentHandler) CheckAvailabilityHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var input struct {
		Date string `json:"date" binding:"required"`
		Time string `json:"time"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	result, err := h.Service.CheckAvailability(c.Request.Context(), sessionID, input.Date, input.Time)
	if err != nil {
		respondToolError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": result.Status,
		"reply":  result.Message,
		"result": result,
	})
}

// BookAppointmentHandler commits the confirmed booking.
func (h *AgentHandler) BookAppointmentHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")

	appt, reply, err := h.Service.BookAppointment(c.Request.Context(), sessionID)
	if err != nil {
		respondToolError(c, err)
		return
	}
	if appt == nil {
		// Slot filled up between summary and confirm.
		c.JSON(http.StatusOK, ToolResponse{Status: "slot_taken", Reply: reply})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":             "ok",
		"reply":              reply,
		"confirmationNumber": appt.ConfirmationNumber,
	})
}

// RequestHelpHandler answers from the knowledge base or escalates.
func (h *AgentHandler) RequestHelpHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var input struct {
		Question string `json:"question" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	reply, err := h.Service.RequestHelp(c.Request.Context(), sessionID, input.Question)
	if err != nil {
		respondToolError(c, err)
		return
	}
	c.JSON(http.StatusOK, ToolResponse{Status: "ok", Reply: reply})
}
