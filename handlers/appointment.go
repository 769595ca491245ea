package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appointmentRepo "github.com/CaptainRedCodes/Saloon-AI-Agent/database/repository/appointment"
	"github.com/CaptainRedCodes/Saloon-AI-Agent/utils"
)

// AppointmentHandler exposes admin lookups over confirmed appointments.
type AppointmentHandler struct {
	Repo appointmentRepo.AppointmentRepository
}

// NewAppointmentHandler constructs an AppointmentHandler.
func NewAppointmentHandler(repo appointmentRepo.AppointmentRepository) *AppointmentHandler {
	return &AppointmentHandler{Repo: repo}
}

// GetByConfirmationHandler fetches an appointment by confirmation number.
func (h *AppointmentHandler) GetByConfirmationHandler(c *gin.Context) {
	number := c.Param("confirmationNumber")
	appt, err := h.Repo.GetByConfirmation(c.Request.Context(), number)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Appointment not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, appt)
}

// CancelHandler marks an appointment cancelled.
func (h *AppointmentHandler) CancelHandler(c *gin.Context) {
	number := c.Param("confirmationNumber")
	var input struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&input)

	if err := h.Repo.CancelByConfirmation(c.Request.Context(), number, input.Reason); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Failed to cancel appointment", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled", "confirmationNumber": number})
}
