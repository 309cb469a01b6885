package handlers

import (
	"fmt"
	"log"

	"mentorlink/internal/common"
	"mentorlink/internal/middleware"
	"mentorlink/internal/models"
	"mentorlink/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// MatchingHandler handles HTTP requests for the matching-request lifecycle.
type MatchingHandler struct {
	matchingService *services.MatchingService
	validate        *validator.Validate
}

// NewMatchingHandler creates a new MatchingHandler.
func NewMatchingHandler(matchingService *services.MatchingService) *MatchingHandler {
	return &MatchingHandler{
		matchingService: matchingService,
		validate:        validator.New(),
	}
}

// RegisterRoutes registers the matching routes. The router must already carry
// the authentication middleware.
func (h *MatchingHandler) RegisterRoutes(router fiber.Router) {
	requests := router.Group("/matching-requests")
	requests.Post("/", h.HandleCreate)
	requests.Get("/", h.HandleList)
	requests.Get("/incoming", h.HandleListIncoming)
	requests.Get("/outgoing", h.HandleListOutgoing)
	requests.Put("/:id", h.HandleUpdateStatus)
	requests.Post("/:id/accept", h.HandleAccept)
	requests.Post("/:id/reject", h.HandleReject)
	requests.Delete("/:id", h.HandleCancel)
}

// CreateMatchingRequest represents the request body for creating a request.
type CreateMatchingRequest struct {
	MentorID string `json:"mentorId" validate:"required"`
	Message  string `json:"message"`
}

// HandleCreate opens a new pending request to a mentor.
func (h *MatchingHandler) HandleCreate(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)

	var req CreateMatchingRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing matching request body: %v", err)
		return common.RespondError(c, fmt.Errorf("%w: invalid request body", common.ErrValidation))
	}
	if err := h.validate.Struct(req); err != nil {
		return common.RespondError(c, fmt.Errorf("%w: mentorId is required", common.ErrValidation))
	}

	request, err := h.matchingService.Create(caller, req.MentorID, req.Message)
	if err != nil {
		log.Printf("Error creating matching request: %v", err)
		return common.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(request)
}

// HandleList returns the caller's requests: sent for mentees, received for
// mentors.
func (h *MatchingHandler) HandleList(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)

	requests, err := h.matchingService.ListForUser(caller)
	if err != nil {
		log.Printf("Error listing matching requests: %v", err)
		return common.RespondError(c, err)
	}
	return c.JSON(requests)
}

// HandleListIncoming returns the calling mentor's received requests.
func (h *MatchingHandler) HandleListIncoming(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)

	requests, err := h.matchingService.ListIncoming(caller)
	if err != nil {
		log.Printf("Error listing incoming requests: %v", err)
		return common.RespondError(c, err)
	}
	return c.JSON(requests)
}

// HandleListOutgoing returns the calling mentee's sent requests.
func (h *MatchingHandler) HandleListOutgoing(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)

	requests, err := h.matchingService.ListOutgoing(caller)
	if err != nil {
		log.Printf("Error listing outgoing requests: %v", err)
		return common.RespondError(c, err)
	}
	return c.JSON(requests)
}

// UpdateStatusRequest represents the request body for a status transition.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// HandleUpdateStatus lets the mentor accept or reject a request.
func (h *MatchingHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing status update body: %v", err)
		return common.RespondError(c, fmt.Errorf("%w: invalid request body", common.ErrValidation))
	}
	if err := h.validate.Struct(req); err != nil {
		return common.RespondError(c, fmt.Errorf("%w: status is required", common.ErrValidation))
	}

	request, err := h.matchingService.Transition(caller, c.Params("id"), req.Status)
	if err != nil {
		log.Printf("Error updating matching request %s: %v", c.Params("id"), err)
		return common.RespondError(c, err)
	}
	return c.JSON(request)
}

// HandleAccept accepts a request.
func (h *MatchingHandler) HandleAccept(c *fiber.Ctx) error {
	return h.decide(c, models.StatusAccepted)
}

// HandleReject rejects a request.
func (h *MatchingHandler) HandleReject(c *fiber.Ctx) error {
	return h.decide(c, models.StatusRejected)
}

func (h *MatchingHandler) decide(c *fiber.Ctx, status string) error {
	caller := middleware.CurrentUser(c)

	request, err := h.matchingService.Transition(caller, c.Params("id"), status)
	if err != nil {
		log.Printf("Error deciding matching request %s: %v", c.Params("id"), err)
		return common.RespondError(c, err)
	}
	return c.JSON(request)
}

// HandleCancel deletes the calling mentee's request.
func (h *MatchingHandler) HandleCancel(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)

	request, err := h.matchingService.Cancel(caller, c.Params("id"))
	if err != nil {
		log.Printf("Error cancelling matching request %s: %v", c.Params("id"), err)
		return common.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Matching request deleted successfully",
		"request": request,
	})
}
