package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"recruit_messaging/internal/domain"
	"recruit_messaging/internal/service"
	"recruit_messaging/pkg/logger"
)

type ModerationHandler struct {
	moderationService service.ModerationService
	log               logger.Logger
}

func NewModerationHandler(moderationService service.ModerationService, log logger.Logger) *ModerationHandler {
	return &ModerationHandler{
		moderationService: moderationService,
		log:               log,
	}
}

func (h *ModerationHandler) Scan(c *gin.Context) {
	flagged, err := h.moderationService.ScanForFlags(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"flagged": flagged, "count": len(flagged)})
}

func (h *ModerationHandler) Queue(c *gin.Context) {
	var filter domain.ModerationFilter
	if raw := c.Query("status"); raw != "" {
		status, err := domain.ParseApprovalStatus(raw)
		if err != nil {
			badRequest(c, err)
			return
		}
		filter.Status = status
	}
	filter.Limit, _ = strconv.Atoi(c.Query("limit"))

	items, err := h.moderationService.ListQueue(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

type ResolveRequest struct {
	Decision        domain.ApprovalStatus `json:"decision" binding:"required"`
	Reason          string                `json:"reason"`
	Comment         string                `json:"reviewer_comment"`
	ApplicationID   *uuid.UUID            `json:"application_id"`
	ExpectedVersion *int                  `json:"expected_version"`
}

func (h *ModerationHandler) Resolve(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	messageID, ok := uuidParam(c, "messageId")
	if !ok {
		return
	}

	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	record, err := h.moderationService.Resolve(c.Request.Context(), actor, domain.Resolution{
		MessageID:       messageID,
		Decision:        req.Decision,
		Reason:          req.Reason,
		Comment:         req.Comment,
		ApplicationID:   req.ApplicationID,
		ExpectedVersion: req.ExpectedVersion,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}
