package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/productgoat/backend/internal/domain"
	"github.com/productgoat/backend/internal/usecase"
	"go.uber.org/zap"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	resolver   *usecase.ResolverService
	insights   *usecase.InsightService
	onboarding *usecase.OnboardingService
	capture    *usecase.CaptureService
	profiles   domain.ProfileRepository
	log        *zap.SugaredLogger
}

// NewHandler creates a new HTTP handler
func NewHandler(
	resolver *usecase.ResolverService,
	insights *usecase.InsightService,
	onboarding *usecase.OnboardingService,
	capture *usecase.CaptureService,
	profiles domain.ProfileRepository,
	log *zap.SugaredLogger,
) *Handler {
	return &Handler{
		resolver:   resolver,
		insights:   insights,
		onboarding: onboarding,
		capture:    capture,
		profiles:   profiles,
		log:        log,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "productgoat-backend",
		"version": "1.0.0",
	})
}

// GetProduct resolves a barcode into the normalized product record.
//
// A barcode missing from both sources is a neutral empty state, not an error;
// only when both sources are unreachable does the client get an error panel.
func (h *Handler) GetProduct(c *gin.Context) {
	barcode := c.Param("barcode")

	product, err := h.resolver.Resolve(c.Request.Context(), barcode)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, product)
	case errors.Is(err, domain.ErrInvalidBarcode):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid barcode"})
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"found": false, "barcode": barcode})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}

// GenerateInsights produces the markdown insight summary for an
// already-resolved product record carried in the request body. Failures here
// are scoped to the insights panel; the product view stays functional.
func (h *Handler) GenerateInsights(c *gin.Context) {
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product payload"})
		return
	}
	if product.Code == "" {
		product.Code = c.Param("barcode")
	}

	text, err := h.insights.Generate(c.Request.Context(), &product)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "insights unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"insights": text})
}

// GetProfile returns the persisted onboarding profile for the dashboard.
func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.profiles.Load(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "onboarding not completed"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// PutProfile overwrites the persisted profile directly (dashboard edits).
func (h *Handler) PutProfile(c *gin.Context) {
	var profile domain.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile payload"})
		return
	}
	if err := h.profiles.Save(c.Request.Context(), &profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save profile"})
		return
	}
	c.JSON(http.StatusOK, &profile)
}

// StartOnboarding opens a wizard session at step 1.
func (h *Handler) StartOnboarding(c *gin.Context) {
	sess, err := h.onboarding.Start(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start onboarding"})
		return
	}
	c.JSON(http.StatusCreated, sess)
}

// GetOnboarding returns the current wizard state.
func (h *Handler) GetOnboarding(c *gin.Context) {
	sess, err := h.onboarding.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, sess)
}

// OnboardingNext advances the wizard; on the last step it submits and
// persists the profile.
func (h *Handler) OnboardingNext(c *gin.Context) {
	sess, err := h.onboarding.Next(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to advance"})
		return
	}
	c.JSON(http.StatusOK, sess)
}

// OnboardingBack returns to the previous wizard step.
func (h *Handler) OnboardingBack(c *gin.Context) {
	sess, err := h.onboarding.Back(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, sess)
}

// onboardingUpdate is a single wizard answer.
type onboardingUpdate struct {
	Op    string `json:"op" binding:"required,oneof=toggle set"`
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// UpdateOnboarding applies one answer to the wizard's profile record:
// "toggle" flips membership in a multi-select field, "set" overwrites a
// single-value field.
func (h *Handler) UpdateOnboarding(c *gin.Context) {
	var update onboardingUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update payload"})
		return
	}

	var (
		sess *usecase.WizardSession
		err  error
	)
	if update.Op == "toggle" {
		sess, err = h.onboarding.Toggle(c.Param("id"), update.Field, update.Value)
	} else {
		sess, err = h.onboarding.Set(c.Param("id"), update.Field, update.Value)
	}
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sess)
}

// StartScanSession opens a live capture session.
func (h *Handler) StartScanSession(c *gin.Context) {
	sess := h.capture.Start(c.Request.Context())
	c.JSON(http.StatusCreated, gin.H{"sessionId": sess.ID})
}

// StopScanSession tears a capture session down, releasing the camera and the
// vision router.
func (h *Handler) StopScanSession(c *gin.Context) {
	if err := h.capture.Stop(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
