package server

import (
	"context"

	"menuboard/internal/middleware"
	"menuboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Forum timestamps go out in milliseconds; the mobile page feeds them
// straight into Date().

type commentView struct {
	ID        uint    `json:"id"`
	Content   string  `json:"content"`
	DeviceID  *string `json:"device_id"`
	Timestamp int64   `json:"timestamp"`
}

type postView struct {
	ID        uint          `json:"id"`
	Content   string        `json:"content"`
	Likes     int           `json:"likes"`
	DeviceID  *string       `json:"device_id"`
	Timestamp int64         `json:"timestamp"`
	Comments  []commentView `json:"comments"`
}

type paginationView struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int64 `json:"totalPages"`
}

// setDeviceContext makes the caller's device ID visible to the context-aware
// logger for the rest of the request.
func setDeviceContext(c *fiber.Ctx, deviceID string) {
	if deviceID == "" {
		return
	}
	c.Locals("deviceID", deviceID)
	ctx := context.WithValue(c.UserContext(), middleware.DeviceIDKey, deviceID)
	c.SetUserContext(ctx)
}

// GetForumPosts handles GET /api/forum/posts with page/pageSize pagination.
// Posts come newest-first, each carrying its comments oldest-first.
func (s *Server) GetForumPosts(c *fiber.Ctx) error {
	params := parsePageParams(c)

	page, err := s.forumService.ListPosts(c.UserContext(), params.Page, params.PageSize)
	if err != nil {
		return respondServiceError(c, err)
	}

	posts := make([]postView, 0, len(page.Posts))
	for _, p := range page.Posts {
		comments := make([]commentView, 0, len(p.Comments))
		for _, cm := range p.Comments {
			comments = append(comments, commentView{
				ID:        cm.ID,
				Content:   cm.Content,
				DeviceID:  cm.DeviceID,
				Timestamp: cm.CreatedAt * 1000,
			})
		}
		posts = append(posts, postView{
			ID:        p.ID,
			Content:   p.Content,
			Likes:     p.Likes,
			DeviceID:  p.DeviceID,
			Timestamp: p.CreatedAt * 1000,
			Comments:  comments,
		})
	}

	totalPages := (page.TotalCount + int64(params.PageSize) - 1) / int64(params.PageSize)

	return c.JSON(fiber.Map{
		"posts": posts,
		"pagination": paginationView{
			Page:       params.Page,
			PageSize:   params.PageSize,
			TotalCount: page.TotalCount,
			TotalPages: totalPages,
		},
	})
}

type createPostRequest struct {
	Content  string `json:"content"`
	DeviceID string `json:"deviceId"`
}

// CreateForumPost handles POST /api/forum/post
func (s *Server) CreateForumPost(c *fiber.Ctx) error {
	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	setDeviceContext(c, req.DeviceID)

	post, err := s.forumService.CreatePost(c.UserContext(), req.Content, req.DeviceID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "id": post.ID})
}

type likePostRequest struct {
	PostID uint   `json:"postId"`
	Action string `json:"action"`
}

// LikeForumPost handles POST /api/forum/like
func (s *Server) LikeForumPost(c *fiber.Ctx) error {
	var req likePostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.PostID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Post ID is required"))
	}

	likes, err := s.forumService.LikePost(c.UserContext(), req.PostID, req.Action)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "likes": likes})
}

type createCommentRequest struct {
	PostID   uint   `json:"postId"`
	Content  string `json:"content"`
	DeviceID string `json:"deviceId"`
}

// CreateForumComment handles POST /api/forum/comment
func (s *Server) CreateForumComment(c *fiber.Ctx) error {
	var req createCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.PostID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Post ID is required"))
	}
	setDeviceContext(c, req.DeviceID)

	comment, err := s.forumService.CreateComment(c.UserContext(), req.PostID, req.Content, req.DeviceID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "id": comment.ID})
}

type deleteRequest struct {
	DeviceID string `json:"deviceId"`
}

// DeleteForumPost handles DELETE /api/forum/post/:id. The post's comments go
// with it.
func (s *Server) DeleteForumPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req deleteRequest
	if err := c.BodyParser(&req); err != nil || req.DeviceID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Device ID is required"))
	}
	setDeviceContext(c, req.DeviceID)

	if err := s.forumService.DeletePost(c.UserContext(), id, req.DeviceID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// DeleteForumComment handles DELETE /api/forum/comment/:id
func (s *Server) DeleteForumComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req deleteRequest
	if err := c.BodyParser(&req); err != nil || req.DeviceID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Device ID is required"))
	}
	setDeviceContext(c, req.DeviceID)

	if err := s.forumService.DeleteComment(c.UserContext(), id, req.DeviceID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}
