package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/midnighthq/lottery-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BallotHandler handles ballot-related HTTP requests.
type BallotHandler struct {
	ballotService services.BallotService
}

// NewBallotHandler creates a new BallotHandler.
func NewBallotHandler(ballotService services.BallotService) *BallotHandler {
	return &BallotHandler{
		ballotService: ballotService,
	}
}

// CastBallot handles POST /ballots
func (h *BallotHandler) CastBallot(c *gin.Context) {
	var request struct {
		ParticipantID string `json:"participant_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	participantID, err := primitive.ObjectIDFromHex(request.ParticipantID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid participant ID format"})
		return
	}

	ballot, err := h.ballotService.CastBallot(c.Request.Context(), participantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ballot)
}

// GetBallotByID handles GET /ballots/:id
func (h *BallotHandler) GetBallotByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	ballot, err := h.ballotService.GetBallotByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ballot)
}

// GetAllBallots handles GET /ballots
func (h *BallotHandler) GetAllBallots(c *gin.Context) {
	offset, limit := pagination(c)

	ballots, err := h.ballotService.GetAllBallots(c.Request.Context(), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ballots)
}

// DeleteBallot handles DELETE /ballots/:id
func (h *BallotHandler) DeleteBallot(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.ballotService.DeleteBallot(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ballot deleted successfully"})
}
