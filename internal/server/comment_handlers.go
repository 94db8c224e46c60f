package server

import (
	"daybook/internal/models"
	"daybook/internal/repository"
	"daybook/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/diaries/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	diaryID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	currentUserID, _ := s.optionalUserID(c)

	// Unknown sort values fall back to newest.
	sort := repository.CommentSortNewest
	if c.Query("sort_by") == string(repository.CommentSortLikes) {
		sort = repository.CommentSortLikes
	}

	comments, svcErr := s.commentService.ListComments(c.Context(), diaryID, sort, currentUserID)
	if svcErr != nil {
		return models.RespondWithError(c, mapServiceError(svcErr), svcErr)
	}

	return c.JSON(comments)
}

// GetMyComments handles GET /api/comments/me
func (s *Server) GetMyComments(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	comments, err := s.commentService.ListUserComments(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(comments)
}

// CreateComment handles POST /api/diaries/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	diaryID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, svcErr := s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		UserID:  userID,
		DiaryID: diaryID,
		Content: req.Content,
	})
	if svcErr != nil {
		return models.RespondWithError(c, mapServiceError(svcErr), svcErr)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// UpdateComment handles PUT /api/comments/:id
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, svcErr := s.commentService.UpdateComment(c.Context(), service.UpdateCommentInput{
		UserID:    userID,
		CommentID: commentID,
		Content:   req.Content,
	})
	if svcErr != nil {
		return models.RespondWithError(c, mapServiceError(svcErr), svcErr)
	}

	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.commentService.DeleteComment(c.Context(), userID, commentID); svcErr != nil {
		return models.RespondWithError(c, mapServiceError(svcErr), svcErr)
	}

	return c.JSON(fiber.Map{
		"message": "Comment deleted",
	})
}
