package server

import (
	"daybook/internal/models"
	"daybook/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetDiaries handles GET /api/diaries
func (s *Server) GetDiaries(c *fiber.Ctx) error {
	pagination := parsePagination(c, 20)
	publicOnly := c.QueryBool("public_only", true)
	currentUserID, _ := s.optionalUserID(c)

	page, err := s.diaryService.ListDiaries(c.Context(), service.ListDiariesInput{
		Skip:          pagination.Skip,
		Limit:         pagination.Limit,
		PublicOnly:    publicOnly,
		CurrentUserID: currentUserID,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(page)
}

// GetMyDiaries handles GET /api/diaries/me
func (s *Server) GetMyDiaries(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	pagination := parsePagination(c, 20)

	page, err := s.diaryService.ListUserDiaries(c.Context(), userID, pagination.Skip, pagination.Limit)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(page)
}

// GetDiary handles GET /api/diaries/:id
func (s *Server) GetDiary(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	currentUserID, _ := s.optionalUserID(c)

	diary, svcErr := s.diaryService.GetDiary(c.Context(), id, currentUserID)
	if svcErr != nil {
		return models.RespondWithError(c, mapServiceError(svcErr), svcErr)
	}

	return c.JSON(diary)
}

// CreateDiary handles POST /api/diaries
func (s *Server) CreateDiary(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		IsPublic *bool  `json:"is_public"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	diary, err := s.diaryService.CreateDiary(c.Context(), service.CreateDiaryInput{
		UserID:   userID,
		Title:    req.Title,
		Content:  req.Content,
		IsPublic: req.IsPublic,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(diary)
}

// UpdateDiary handles PUT /api/diaries/:id
func (s *Server) UpdateDiary(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		IsPublic *bool  `json:"is_public"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	diary, svcErr := s.diaryService.UpdateDiary(c.Context(), service.UpdateDiaryInput{
		UserID:   userID,
		DiaryID:  id,
		Title:    req.Title,
		Content:  req.Content,
		IsPublic: req.IsPublic,
	})
	if svcErr != nil {
		return models.RespondWithError(c, mapServiceError(svcErr), svcErr)
	}

	return c.JSON(diary)
}

// DeleteDiary handles DELETE /api/diaries/:id
func (s *Server) DeleteDiary(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.diaryService.DeleteDiary(c.Context(), userID, id); svcErr != nil {
		return models.RespondWithError(c, mapServiceError(svcErr), svcErr)
	}

	return c.JSON(fiber.Map{
		"message": "Diary deleted",
	})
}
