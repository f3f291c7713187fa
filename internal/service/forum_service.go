package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"menuboard/internal/models"
	"menuboard/internal/observability"
	"menuboard/internal/repository"

	"gorm.io/gorm"
)

const (
	postMinLen    = 5
	postMaxLen    = 500
	commentMinLen = 2
	commentMaxLen = 200
)

// ForumService implements the anonymous forum: posts, comments, likes and the
// device-scoped retraction rules.
type ForumService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	now         func() time.Time
}

// NewForumService creates a forum service. nowFn may be nil, in which case
// time.Now is used; tests inject a fixed clock.
func NewForumService(postRepo repository.PostRepository, commentRepo repository.CommentRepository, nowFn func() time.Time) *ForumService {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &ForumService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		now:         nowFn,
	}
}

// PostPage is one page of posts with nested comments plus the total count.
type PostPage struct {
	Posts      []*models.Post
	TotalCount int64
}

// CreatePost validates and stores a new post. Content bounds apply to the
// trimmed content; the device ID is required but never verified beyond
// presence (it is a retraction token, not an identity).
func (s *ForumService) CreatePost(ctx context.Context, content, deviceID string) (*models.Post, error) {
	content = strings.TrimSpace(content)
	if utf8.RuneCountInString(content) < postMinLen {
		return nil, models.NewValidationError("Content too short (minimum 5 characters)")
	}
	if utf8.RuneCountInString(content) > postMaxLen {
		return nil, models.NewValidationError("Content too long (maximum 500 characters)")
	}
	if deviceID == "" {
		return nil, models.NewValidationError("Device ID is required")
	}

	post := &models.Post{Content: content, DeviceID: &deviceID}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	observability.ForumWritesTotal.WithLabelValues("post").Inc()
	return post, nil
}

// ListPosts returns one newest-first page of posts, each carrying its
// comments oldest-first, plus the total post count for pagination.
func (s *ForumService) ListPosts(ctx context.Context, page, pageSize int) (*PostPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	posts, err := s.postRepo.List(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	for _, post := range posts {
		comments, err := s.commentRepo.ListByPost(ctx, post.ID)
		if err != nil {
			return nil, err
		}
		post.Comments = make([]models.Comment, 0, len(comments))
		for _, c := range comments {
			post.Comments = append(post.Comments, *c)
		}
	}

	total, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &PostPage{Posts: posts, TotalCount: total}, nil
}

// LikePost applies a like ("like") or unlike ("unlike") delta and returns the
// refreshed counter. Cancels are not linked to an original like; the zero
// floor makes a stray unlike a no-op.
func (s *ForumService) LikePost(ctx context.Context, postID uint, action string) (int, error) {
	var delta int
	switch action {
	case "like":
		delta = 1
	case "unlike":
		delta = -1
	default:
		return 0, models.NewValidationError("Action must be 'like' or 'unlike'")
	}

	likes, err := s.postRepo.AddLikes(ctx, postID, delta)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, models.NewNotFoundError("Post", postID)
		}
		return 0, err
	}

	observability.VotesTotal.WithLabelValues("post", action).Inc()
	return likes, nil
}

// DeletePost removes a post and all its comments if the requesting device
// owns it and the retraction window has not lapsed.
func (s *ForumService) DeletePost(ctx context.Context, postID uint, deviceID string) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RetractionDenialsTotal.WithLabelValues("post", "not_found").Inc()
			return models.NewNotFoundError("Post", postID)
		}
		return err
	}

	if err := AuthorizeRetraction(post.DeviceID, post.CreatedAt, deviceID, s.now()); err != nil {
		observability.RetractionDenialsTotal.WithLabelValues("post", denialReason(err)).Inc()
		return err
	}

	return s.postRepo.Delete(ctx, postID)
}

// CreateComment validates and stores a new comment on an existing post.
// Input validation runs before the post lookup so malformed requests report
// 400 even when the target post is missing.
func (s *ForumService) CreateComment(ctx context.Context, postID uint, content, deviceID string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if utf8.RuneCountInString(content) < commentMinLen {
		return nil, models.NewValidationError("Content too short (minimum 2 characters)")
	}
	if utf8.RuneCountInString(content) > commentMaxLen {
		return nil, models.NewValidationError("Content too long (maximum 200 characters)")
	}
	if deviceID == "" {
		return nil, models.NewValidationError("Device ID is required")
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", postID)
		}
		return nil, err
	}

	comment := &models.Comment{PostID: postID, Content: content, DeviceID: &deviceID}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	observability.ForumWritesTotal.WithLabelValues("comment").Inc()
	return comment, nil
}

// DeleteComment removes a comment under the same ownership and time-window
// rules as posts.
func (s *ForumService) DeleteComment(ctx context.Context, commentID uint, deviceID string) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RetractionDenialsTotal.WithLabelValues("comment", "not_found").Inc()
			return models.NewNotFoundError("Comment", commentID)
		}
		return err
	}

	if err := AuthorizeRetraction(comment.DeviceID, comment.CreatedAt, deviceID, s.now()); err != nil {
		observability.RetractionDenialsTotal.WithLabelValues("comment", denialReason(err)).Inc()
		return err
	}

	return s.commentRepo.Delete(ctx, commentID)
}

func denialReason(err error) string {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return strings.ToLower(appErr.Code)
	}
	return "error"
}
