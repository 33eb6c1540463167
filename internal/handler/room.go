package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"recruit_messaging/internal/service"
	"recruit_messaging/pkg/logger"
)

type RoomHandler struct {
	roomService service.RoomService
	log         logger.Logger
}

func NewRoomHandler(roomService service.RoomService, log logger.Logger) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
		log:         log,
	}
}

type CreateRoomRequest struct {
	CandidateID   uuid.UUID  `json:"candidate_id" binding:"required"`
	CompanyUserID uuid.UUID  `json:"company_user_id" binding:"required"`
	JobPostingID  *uuid.UUID `json:"job_posting_id"`
}

// Create resolves the room for the triple, creating it on first contact.
func (h *RoomHandler) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	room, created, err := h.roomService.GetOrCreateRoom(c.Request.Context(), actor, req.CandidateID, req.CompanyUserID, req.JobPostingID)
	if err != nil {
		fail(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"room_id": room.ID,
		"room":    room,
		"created": created,
	})
}

func (h *RoomHandler) List(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	rooms, err := h.roomService.ListRooms(c.Request.Context(), actor)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

func (h *RoomHandler) Participants(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	roomID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	participants, err := h.roomService.GetParticipants(c.Request.Context(), roomID, actor)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"participants": participants})
}
