package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"recruit_messaging/internal/service"
	"recruit_messaging/pkg/logger"
)

type KeywordHandler struct {
	keywordService service.KeywordService
	log            logger.Logger
}

func NewKeywordHandler(keywordService service.KeywordService, log logger.Logger) *KeywordHandler {
	return &KeywordHandler{
		keywordService: keywordService,
		log:            log,
	}
}

func (h *KeywordHandler) List(c *gin.Context) {
	keywords, err := h.keywordService.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"keywords": keywords})
}

type CreateKeywordRequest struct {
	Keyword  string `json:"keyword" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

func (h *KeywordHandler) Create(c *gin.Context) {
	var req CreateKeywordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	keyword, err := h.keywordService.Create(c.Request.Context(), req.Keyword, active)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, keyword)
}

type UpdateKeywordRequest struct {
	Keyword  *string `json:"keyword"`
	IsActive *bool   `json:"is_active"`
}

func (h *KeywordHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req UpdateKeywordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	keyword, err := h.keywordService.Update(c.Request.Context(), id, req.Keyword, req.IsActive)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, keyword)
}

func (h *KeywordHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.keywordService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
