package server

import (
	"murmur/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SendMessage handles POST /chat/messages
// @Summary Send a direct message
// @Tags chat
// @Accept json
// @Produce json
// @Param request body object{recipient_id=int,message=string} true "Message"
// @Success 201 {object} models.Message
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /chat/messages [post]
func (s *Server) SendMessage(c *fiber.Ctx) error {
	var req struct {
		RecipientID uint   `json:"recipient_id"`
		Message     string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	message, err := s.messageService.Send(c.UserContext(), currentUserID(c), req.RecipientID, req.Message)
	if err != nil {
		return models.RespondWithError(c, models.StatusOf(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}

// ListInbox handles GET /chat/messages/:recipientId
// @Summary List incoming messages
// @Description Lists the inbox; a user may only read their own
// @Tags chat
// @Produce json
// @Success 200 {array} models.InboxMessage
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /chat/messages/{recipientId} [get]
func (s *Server) ListInbox(c *fiber.Ctx) error {
	recipientID, err := c.ParamsInt("recipientId")
	if err != nil || recipientID <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid recipient ID"))
	}

	inbox, err := s.messageService.Inbox(c.UserContext(), currentUserID(c), uint(recipientID))
	if err != nil {
		return models.RespondWithError(c, models.StatusOf(err), err)
	}
	return c.JSON(inbox)
}

// EditMessage handles PUT /chat/messages/:messageId
// @Summary Edit an own message
// @Tags chat
// @Accept json
// @Produce json
// @Param request body object{message=string} true "New body"
// @Success 200 {object} object{detail=string}
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /chat/messages/{messageId} [put]
func (s *Server) EditMessage(c *fiber.Ctx) error {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.messageService.Edit(c.UserContext(), currentUserID(c), c.Params("messageId"), req.Message); err != nil {
		return models.RespondWithError(c, models.StatusOf(err), err)
	}
	return c.JSON(fiber.Map{"detail": "Message updated"})
}

// DeleteMessage handles DELETE /chat/messages/:messageId
// @Summary Soft-delete an own message
// @Tags chat
// @Produce json
// @Success 200 {object} object{detail=string}
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /chat/messages/{messageId} [delete]
func (s *Server) DeleteMessage(c *fiber.Ctx) error {
	if err := s.messageService.Delete(c.UserContext(), currentUserID(c), c.Params("messageId")); err != nil {
		return models.RespondWithError(c, models.StatusOf(err), err)
	}
	return c.JSON(fiber.Map{"detail": "Message deleted"})
}

// LikeMessage handles POST /chat/messages/:messageId/like
// @Summary Like a message
// @Tags chat
// @Produce json
// @Success 200 {object} object{detail=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /chat/messages/{messageId}/like [post]
func (s *Server) LikeMessage(c *fiber.Ctx) error {
	if err := s.feedback.Like(c.UserContext(), currentUserID(c), c.Params("messageId")); err != nil {
		return models.RespondWithError(c, models.StatusOf(err), err)
	}
	return c.JSON(fiber.Map{"detail": "Like set"})
}

// DislikeMessage handles POST /chat/messages/:messageId/dislike
// @Summary Dislike a message
// @Tags chat
// @Produce json
// @Success 200 {object} object{detail=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /chat/messages/{messageId}/dislike [post]
func (s *Server) DislikeMessage(c *fiber.Ctx) error {
	if err := s.feedback.Dislike(c.UserContext(), currentUserID(c), c.Params("messageId")); err != nil {
		return models.RespondWithError(c, models.StatusOf(err), err)
	}
	return c.JSON(fiber.Map{"detail": "Dislike set"})
}
