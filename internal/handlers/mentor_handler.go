package handlers

import (
	"log"

	"mentorlink/internal/common"
	"mentorlink/internal/middleware"
	"mentorlink/internal/services"

	"github.com/gofiber/fiber/v2"
)

// MentorHandler handles HTTP requests for browsing mentors.
type MentorHandler struct {
	mentorService *services.MentorService
}

// NewMentorHandler creates a new MentorHandler.
func NewMentorHandler(mentorService *services.MentorService) *MentorHandler {
	return &MentorHandler{
		mentorService: mentorService,
	}
}

// RegisterRoutes registers the mentor catalog routes. The router must already
// carry the authentication middleware.
func (h *MentorHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/mentors", h.HandleListMentors)
	router.Get("/mentors/:id", h.HandleGetMentor)
}

// HandleListMentors returns mentors filtered and sorted by query parameters.
// "tech_stack" is accepted as an alias for "skill".
func (h *MentorHandler) HandleListMentors(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)

	skill := c.Query("skill")
	if skill == "" {
		skill = c.Query("tech_stack")
	}
	filter := services.MentorFilter{
		Skill:  skill,
		Search: c.Query("search"),
		SortBy: c.Query("sort_by", services.SortByName),
	}

	mentors, err := h.mentorService.List(caller, filter)
	if err != nil {
		log.Printf("Error listing mentors: %v", err)
		return common.RespondError(c, err)
	}

	items := make([]MentorItemResponse, 0, len(mentors))
	for i := range mentors {
		items = append(items, newMentorItemResponse(&mentors[i]))
	}
	return c.JSON(items)
}

// HandleGetMentor returns a single mentor by ID.
func (h *MentorHandler) HandleGetMentor(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)

	mentor, err := h.mentorService.GetByID(caller, c.Params("id"))
	if err != nil {
		log.Printf("Error getting mentor %s: %v", c.Params("id"), err)
		return common.RespondError(c, err)
	}
	return c.JSON(newMentorItemResponse(mentor))
}
