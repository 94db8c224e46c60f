package server

import (
	"daybook/internal/models"

	"github.com/gofiber/fiber/v2"
)

// LikeDiary handles POST /api/diaries/:id/like
func (s *Server) LikeDiary(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	diaryID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, svcErr := s.likeService.ToggleDiaryLike(c.Context(), userID, diaryID)
	if svcErr != nil {
		return models.RespondWithError(c, mapServiceError(svcErr), svcErr)
	}

	return c.JSON(result)
}

// LikeComment handles POST /api/comments/:id/like
func (s *Server) LikeComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, svcErr := s.likeService.ToggleCommentLike(c.Context(), userID, commentID)
	if svcErr != nil {
		return models.RespondWithError(c, mapServiceError(svcErr), svcErr)
	}

	return c.JSON(result)
}
