package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/analos-labs/launchpad-engine/internal/api/middleware"
	"github.com/analos-labs/launchpad-engine/internal/domain"
	"github.com/analos-labs/launchpad-engine/internal/engine"
)

// Handler serves the mint HTTP surface on top of the engine
type Handler struct {
	engine engine.Engine
}

// NewHandler creates a REST handler backed by the given engine
func NewHandler(eng engine.Engine) *Handler {
	return &Handler{engine: eng}
}

// AttemptMint handles POST /api/v1/collections/:id/mints
func (h *Handler) AttemptMint(c *gin.Context) {
	var req MintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	outcome, err := h.engine.AttemptMint(c.Request.Context(), c.Param("id"), domain.WalletID(req.Wallet), req.Identity)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusCreated, outcome)
}

// GetRevealStatus handles GET /api/v1/collections/:id/reveal
func (h *Handler) GetRevealStatus(c *gin.Context) {
	status, err := h.engine.RevealStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// GetTierStatus handles GET /api/v1/collections/:id/tiers/:tier
func (h *Handler) GetTierStatus(c *gin.Context) {
	status, err := h.engine.TierStatus(c.Request.Context(), c.Param("id"), domain.TierID(c.Param("tier")))
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// ListCollections handles GET /api/v1/collections
func (h *Handler) ListCollections(c *gin.Context) {
	c.JSON(http.StatusOK, CollectionsResponse{Collections: h.engine.Collections()})
}

// ForceReveal handles POST /api/v1/collections/:id/reveal. The caller's
// wallet comes from the authenticated JWT subject and must match the
// collection authority.
func (h *Handler) ForceReveal(c *gin.Context) {
	authority := domain.WalletID(middleware.AuthSubject(c))
	if authority == "" {
		respondWithError(c, http.StatusForbidden, errCodeForbidden, "Not authorized")
		return
	}

	status, err := h.engine.ForceReveal(c.Request.Context(), c.Param("id"), authority)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// SetPaused handles POST /api/v1/collections/:id/pause
func (h *Handler) SetPaused(c *gin.Context) {
	var req PauseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	authority := domain.WalletID(middleware.AuthSubject(c))
	if authority == "" {
		respondWithError(c, http.StatusForbidden, errCodeForbidden, "Not authorized")
		return
	}

	if err := h.engine.SetPaused(c.Request.Context(), c.Param("id"), authority, *req.Paused); err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"collection_id": c.Param("id"), "paused": *req.Paused})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Service: "launchpad-api",
	})
}
