package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CaptainRedCodes/Saloon-AI-Agent/models"
	helpSvc "github.com/CaptainRedCodes/Saloon-AI-Agent/services/help"
	"github.com/CaptainRedCodes/Saloon-AI-Agent/utils"
)

// HelpRequestHandler exposes the supervisor dashboard endpoints.
type HelpRequestHandler struct {
	Service helpSvc.HelpRequestService
}

// NewHelpRequestHandler constructs a HelpRequestHandler.
func NewHelpRequestHandler(svc helpSvc.HelpRequestService) *HelpRequestHandler {
	return &HelpRequestHandler{Service: svc}
}

// ListPendingHandler returns all pending help requests.
func (h *HelpRequestHandler) ListPendingHandler(c *gin.Context) {
	requests, err := h.Service.ListPending(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list pending help requests", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(requests),
		"requests": requests,
	})
}

// GetHandler returns one help request by ID.
func (h *HelpRequestHandler) GetHandler(c *gin.Context) {
	id := c.Param("id")
	req, err := h.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Help request not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, req)
}

// ResolveHandler records the supervisor's answer for a pending request.
func (h *HelpRequestHandler) ResolveHandler(c *gin.Context) {
	id := c.Param("id")
	var input models.SupervisorResponse
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	req, err := h.Service.Resolve(c.Request.Context(), id, input)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to resolve help request", err.Error())
		return
	}
	c.JSON(http.StatusOK, req)
}
