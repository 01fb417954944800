package assessments

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"assessment-backend/internal/shared/server/respond"
	"assessment-backend/internal/users"
)

// Handler exposes assessment read endpoints.
type Handler struct {
	Service *Service
}

// Get handles GET /assessments/:id. The maturity breakdown is recomputed
// from stored answers so strengths and improvements are always available,
// even for records processed before scoring existed.
func (h *Handler) Get(c *gin.Context) {
	assessmentID := c.Param("id")
	if assessmentID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "assessment id is required", nil)
		return
	}
	c.Set("assessmentId", assessmentID)

	a, err := h.Service.Get(c.Request.Context(), assessmentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "assessment not found", nil)
		} else {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch assessment", nil)
		}
		return
	}

	respond.OK(c, gin.H{
		"assessment": a,
		"maturity":   Maturity(a),
	})
}

// Find handles GET /assessments/find?email=. It returns the user's newest
// assessment regardless of age.
func (h *Handler) Find(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "email is required", nil)
		return
	}

	a, err := h.Service.FindLatestByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) || errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "assessment not found", nil)
		} else {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to find assessment", nil)
		}
		return
	}

	respond.OK(c, gin.H{
		"assessmentId": a.ID,
		"status":       a.Status,
		"createdAt":    a.CreatedAt,
	})
}

// FindLatest handles GET /assessment-latest?email=. The post-submit poller
// calls this before it knows the assessment ID, so the lookup is bounded to
// submissions from the last few minutes.
func (h *Handler) FindLatest(c *gin.Context) {
	email := c.Query("email")

	a, user, err := h.Service.FindRecent(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) || errors.Is(err, ErrNotFound) {
			message := "No assessment was created in the last 5 minutes"
			if email != "" {
				message = "No assessment found for " + email + " in the last 5 minutes"
			}
			respond.JSON(c, http.StatusNotFound, gin.H{
				"success": false,
				"error":   "No recent assessment found",
				"message": message,
			})
		} else {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to find assessment", nil)
		}
		return
	}

	respond.OK(c, gin.H{
		"success":      true,
		"assessmentId": a.ID,
		"email":        user.Email,
		"status":       a.Status,
	})
}

// Dashboard handles GET /dashboard?email=.
func (h *Handler) Dashboard(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "email is required", nil)
		return
	}

	user, list, err := h.Service.Dashboard(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
		} else {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load dashboard", nil)
		}
		return
	}
	if list == nil {
		list = []Assessment{}
	}

	respond.OK(c, gin.H{
		"user": gin.H{
			"email": user.Email,
			"name":  user.Name,
		},
		"assessments": list,
	})
}
