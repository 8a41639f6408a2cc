package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nodefoundry/depinmarket/internal/domain/model"
	"github.com/nodefoundry/depinmarket/internal/server/http/dto"
)

// ResourceHandler serves registry reads and reviews.
type ResourceHandler struct {
	facade ResourceFacade
}

// NewResourceHandler constructs ResourceHandler.
func NewResourceHandler(facade ResourceFacade) *ResourceHandler {
	return &ResourceHandler{facade: facade}
}

// List handles GET /api/resources.
func (h *ResourceHandler) List(c *gin.Context) {
	resources, err := h.facade.Resources(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(resources) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.ResourceResponse, 0, len(resources))
	for _, res := range resources {
		response = append(response, toResourceResponse(res))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/resources/:id.
func (h *ResourceHandler) Get(c *gin.Context) {
	res, err := h.facade.Resource(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResourceResponse(*res))
}

// Reviews handles GET /api/resources/:id/reviews.
func (h *ResourceHandler) Reviews(c *gin.Context) {
	reviews, err := h.facade.ResourceReviews(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(reviews) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.ReviewResponse, 0, len(reviews))
	for _, rev := range reviews {
		response = append(response, dto.ReviewResponse{
			UserID:    rev.UserID,
			Rating:    rev.Rating,
			Review:    rev.Review,
			CreatedAt: rev.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, response)
}

// Rate handles POST /api/resources/:id/reviews.
func (h *ResourceHandler) Rate(c *gin.Context) {
	userID := CurrentUserID(c)
	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	review, err := h.facade.RateResource(c.Request.Context(), userID, c.Param("id"), req.Rating, req.Review)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ReviewResponse{
		UserID:    review.UserID,
		Rating:    review.Rating,
		Review:    review.Review,
		CreatedAt: review.CreatedAt,
	})
}

// Rating handles GET /api/resources/:id/rating.
func (h *ResourceHandler) Rating(c *gin.Context) {
	stats, err := h.facade.ResourceRating(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.RatingResponse{
		Average: stats.Average,
		Count:   stats.Count,
		Min:     stats.Min,
		Max:     stats.Max,
	})
}

func toResourceResponse(res model.Resource) dto.ResourceResponse {
	return dto.ResourceResponse{
		ID:          res.ID,
		Name:        res.Name,
		Description: res.Description,
		Active:      res.Active,
		Uptime:      res.Uptime,
		Reliability: res.Reliability,
		Cost:        res.Cost,
		CreatedAt:   res.CreatedAt,
	}
}
