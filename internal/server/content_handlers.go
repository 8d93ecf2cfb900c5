package server

import (
	"harnect/internal/media"
	"harnect/internal/models"
	"harnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateContent handles POST /api/content. The body is multipart: a "media"
// file plus "kind" and optional "caption" fields. The blob is stored before
// the record; if the record fails the blob is removed again.
func (s *Server) CreateContent(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("media")
	if err != nil {
		return models.RespondWithError(c, models.NewValidationError("Media file is required"))
	}

	kind := c.FormValue("kind", models.ContentKindPost)
	caption := c.FormValue("caption")

	contentType := fileHeader.Header.Get("Content-Type")
	if _, err := media.ValidateUpload(fileHeader.Filename, contentType); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	defer file.Close()

	ref, err := s.media.Save(fileHeader.Filename, contentType, file)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	item, err := s.contentService.Publish(c.UserContext(), service.PublishInput{
		AuthorID: currentUserID(c),
		MediaRef: ref,
		Caption:  caption,
		Kind:     kind,
	})
	if err != nil {
		_ = s.media.Remove(ref)
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// DeleteContent handles DELETE /api/content/:id
func (s *Server) DeleteContent(c *fiber.Ctx) error {
	itemID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.contentService.Remove(c.UserContext(), service.RemoveInput{
		RequesterID: currentUserID(c),
		ItemID:      itemID,
	}); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Content deleted"})
}

// GetContent handles GET /api/content/:id
func (s *Server) GetContent(c *fiber.Ctx) error {
	itemID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	item, err := s.contentService.GetItem(c.UserContext(), itemID, currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(item)
}

// GetFeed handles GET /api/feed — posts, newest first.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	return s.feed(c, models.ContentKindPost)
}

// GetStories handles GET /api/stories — stories, newest first.
func (s *Server) GetStories(c *fiber.Ctx) error {
	return s.feed(c, models.ContentKindStory)
}

func (s *Server) feed(c *fiber.Ctx, kind string) error {
	p := parsePagination(c, service.DefaultPageSize)
	items, err := s.contentService.ListFeed(c.UserContext(), kind, p.Limit, p.Offset, currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(items)
}

// GetUserContent handles GET /api/users/:handle/content
func (s *Server) GetUserContent(c *fiber.Ctx) error {
	handle := c.Params("handle")
	p := parsePagination(c, service.DefaultPageSize)

	items, err := s.contentService.ListByAuthor(c.UserContext(), handle, p.Limit, p.Offset, currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(items)
}
