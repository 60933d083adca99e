package server

import (
	"murmur/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /blog/post
// @Summary Create a post
// @Tags blog
// @Accept json
// @Produce json
// @Param request body object{post=string} true "Post body"
// @Success 201 {object} object{detail=string,post_id=string}
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /blog/post [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Post string `json:"post"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.Create(c.UserContext(), currentUserID(c), req.Post)
	if err != nil {
		return models.RespondWithError(c, models.StatusOf(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"detail":  "Post created",
		"post_id": post.ID,
	})
}

// ListPosts handles GET /blog/posts
// @Summary List all posts
// @Tags blog
// @Produce json
// @Success 200 {array} models.Post
// @Security BearerAuth
// @Router /blog/posts [get]
func (s *Server) ListPosts(c *fiber.Ctx) error {
	posts, err := s.postService.List(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, models.StatusOf(err), err)
	}
	return c.JSON(posts)
}

// EditPost handles PUT /blog/post/:postId
// @Summary Edit an own post
// @Tags blog
// @Accept json
// @Produce json
// @Param request body object{post=string} true "New body"
// @Success 200 {object} object{detail=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /blog/post/{postId} [put]
func (s *Server) EditPost(c *fiber.Ctx) error {
	var req struct {
		Post string `json:"post"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.postService.Edit(c.UserContext(), currentUserID(c), c.Params("postId"), req.Post); err != nil {
		return models.RespondWithError(c, models.StatusOf(err), err)
	}
	return c.JSON(fiber.Map{"detail": "Post updated"})
}

// DeletePost handles DELETE /blog/post/:postId
// @Summary Delete an own post
// @Tags blog
// @Produce json
// @Success 200 {object} object{detail=string}
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /blog/post/{postId} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	if err := s.postService.Delete(c.UserContext(), currentUserID(c), c.Params("postId")); err != nil {
		return models.RespondWithError(c, models.StatusOf(err), err)
	}
	return c.JSON(fiber.Map{"detail": "Post deleted"})
}

// ReactToPost handles POST /blog/post/:postId/reaction
// @Summary React to a post
// @Description Sets a like or dislike; switching the reaction type replaces the previous one
// @Tags blog
// @Accept json
// @Produce json
// @Param request body object{type=string} true "Reaction: like or dislike"
// @Success 200 {object} object{detail=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /blog/post/{postId}/reaction [post]
func (s *Server) ReactToPost(c *fiber.Ctx) error {
	var req struct {
		Type string `json:"type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	postID := c.Params("postId")
	if err := s.postService.React(c.UserContext(), currentUserID(c), postID, req.Type); err != nil {
		return models.RespondWithError(c, models.StatusOf(err), err)
	}
	return c.JSON(fiber.Map{"detail": "You reacted with " + req.Type + " to post " + postID})
}
