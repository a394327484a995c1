package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/midnighthq/lottery-backend/internal/models"
	"github.com/midnighthq/lottery-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParticipantHandler handles participant-related HTTP requests.
type ParticipantHandler struct {
	participantService services.ParticipantService
}

// NewParticipantHandler creates a new ParticipantHandler.
func NewParticipantHandler(participantService services.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{
		participantService: participantService,
	}
}

// CreateParticipant handles POST /participants
func (h *ParticipantHandler) CreateParticipant(c *gin.Context) {
	var request struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	participant, err := h.participantService.Register(c.Request.Context(), request.Name, request.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, participant)
}

// GetParticipantByID handles GET /participants/:id
func (h *ParticipantHandler) GetParticipantByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	participant, err := h.participantService.GetParticipantByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, participant)
}

// GetAllParticipants handles GET /participants
func (h *ParticipantHandler) GetAllParticipants(c *gin.Context) {
	offset, limit := pagination(c)

	participants, err := h.participantService.GetAllParticipants(c.Request.Context(), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, participants)
}

// UpdateParticipant handles PUT /participants/:id
func (h *ParticipantHandler) UpdateParticipant(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var update models.ParticipantUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	participant, err := h.participantService.UpdateParticipant(c.Request.Context(), id, update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, participant)
}

// DeleteParticipant handles DELETE /participants/:id
func (h *ParticipantHandler) DeleteParticipant(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.participantService.DeleteParticipant(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Participant deleted successfully"})
}
