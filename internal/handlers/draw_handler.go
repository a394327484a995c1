package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/midnighthq/lottery-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DrawHandler handles draw-related HTTP requests, including the operator
// trigger for the resolution workflow.
type DrawHandler struct {
	drawService     services.DrawService
	ballotService   services.BallotService
	resolverService services.ResolverService
}

// NewDrawHandler creates a new DrawHandler.
func NewDrawHandler(
	drawService services.DrawService,
	ballotService services.BallotService,
	resolverService services.ResolverService,
) *DrawHandler {
	return &DrawHandler{
		drawService:     drawService,
		ballotService:   ballotService,
		resolverService: resolverService,
	}
}

// CreateDraw handles POST /draws. Creation is strict: today's draw must
// not exist yet.
func (h *DrawHandler) CreateDraw(c *gin.Context) {
	draw, err := h.drawService.CreateDraw(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, draw)
}

// GetOpenDraw handles GET /draws/open
func (h *DrawHandler) GetOpenDraw(c *gin.Context) {
	draw, err := h.drawService.GetOpenDraw(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draw": draw, "status": draw.Status()})
}

// GetDrawByID handles GET /draws/:id
func (h *DrawHandler) GetDrawByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	draw, err := h.drawService.GetDrawByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draw": draw, "status": draw.Status()})
}

// GetAllDraws handles GET /draws
func (h *DrawHandler) GetAllDraws(c *gin.Context) {
	offset, limit := pagination(c)

	draws, err := h.drawService.GetAllDraws(c.Request.Context(), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draws)
}

// GetDrawBallots handles GET /draws/:id/ballots
func (h *DrawHandler) GetDrawBallots(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	// 404 for an unknown draw rather than an empty list.
	if _, err := h.drawService.GetDrawByID(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	ballots, err := h.ballotService.GetBallotsByDrawID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ballots)
}

// DeleteDraw handles DELETE /draws/:id
func (h *DrawHandler) DeleteDraw(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.drawService.DeleteDraw(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Draw deleted successfully"})
}

// ResolveDraw handles POST /draws/resolve — the operator-facing trigger for
// the same workflow the midnight scheduler runs.
func (h *DrawHandler) ResolveDraw(c *gin.Context) {
	resolution, err := h.resolverService.ResolveAndAdvance(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resolution)
}
