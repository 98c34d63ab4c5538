package handler

import (
	"net/http"

	"anoa.com/lesprivat/internal/dto"
	"anoa.com/lesprivat/internal/service"
	"anoa.com/lesprivat/pkg/response"
	"anoa.com/lesprivat/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdvertHandler struct {
	service service.AdvertService
}

func NewAdvertHandler(service service.AdvertService) *AdvertHandler {
	return &AdvertHandler{service: service}
}

func (h *AdvertHandler) CreateAdvert(c *gin.Context) {
	var req dto.CreateAdvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	advert, err := h.service.CreateAdvert(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, advert)
}

func (h *AdvertHandler) UpdateAdvert(c *gin.Context) {
	advertID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid advert id"})
		return
	}

	var req dto.UpdateAdvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	advert, err := h.service.UpdateAdvert(c.Request.Context(), userID, advertID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, advert)
}

func (h *AdvertHandler) GetAdvert(c *gin.Context) {
	advertID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid advert id"})
		return
	}

	advert, err := h.service.GetAdvert(c.Request.Context(), advertID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, advert)
}

func (h *AdvertHandler) GetActiveAdverts(c *gin.Context) {
	var filter dto.AdvertFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	adverts, err := h.service.GetActiveAdverts(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": adverts})
}
