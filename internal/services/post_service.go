package services

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"dailybuzz/internal/models"
	"dailybuzz/internal/repository"
	"dailybuzz/internal/utils"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ErrNotFound reports a lookup that matched no post. A miss is a normal
// outcome for slug lookups and repeat deletes, never a panic.
var ErrNotFound = errors.New("post not found")

// ValidationError lists the fields a submission is missing for its
// category. It is returned before any upload or store call is attempted.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing or invalid fields: " + strings.Join(e.Fields, ", ")
}

// PostInput carries one create/update submission. HasNewImage marks that the
// caller holds a fresh file to upload, so an empty ImageURL is acceptable at
// validation time.
type PostInput struct {
	Title       string
	Excerpt     string
	Category    string
	Content     string
	ImageURL    string
	Author      string
	Status      string
	HasNewImage bool
	CreatedAt   time.Time // zero means "now"; snapshots restore the original
}

type PostService struct {
	repo *repository.PostRepository
}

func NewPostService(repo *repository.PostRepository) *PostService {
	return &PostService{repo: repo}
}

// Validate checks a submission against the category capability table.
func (s *PostService) Validate(in PostInput) error {
	var missing []string
	cat, ok := models.CategoryByKey(in.Category)

	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	// Content-bearing categories can derive an excerpt from the body.
	if strings.TrimSpace(in.Excerpt) == "" && !(ok && cat.HasContent) {
		missing = append(missing, "excerpt")
	}
	if in.Status != models.StatusDraft && in.Status != models.StatusPublished {
		missing = append(missing, "status")
	}

	if !ok {
		missing = append(missing, "category")
	} else {
		if cat.HasContent && strings.TrimSpace(in.Content) == "" {
			missing = append(missing, "content")
		}
		if cat.HasImage && in.ImageURL == "" && !in.HasNewImage {
			missing = append(missing, "image")
		}
	}

	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

func (s *PostService) CreatePost(ctx context.Context, in PostInput) (*models.Post, error) {
	if err := s.Validate(in); err != nil {
		return nil, err
	}

	slugStr, err := s.uniqueSlug(ctx, in.Title, 0)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:    in.Title,
		Slug:     slugStr,
		Excerpt:  resolveExcerpt(in),
		Category: in.Category,
		Content:  in.Content,
		ImageURL: in.ImageURL,
		Author:   in.Author,
		Status:   in.Status,
	}
	if !in.CreatedAt.IsZero() {
		post.CreatedAt = in.CreatedAt
	}

	if err := s.applyContentHTML(post); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.indexPost(ctx, post)
	return post, nil
}

func (s *PostService) UpdatePost(ctx context.Context, id uint, in PostInput) (*models.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.Validate(in); err != nil {
		return nil, err
	}

	// If the title changed, the slug follows it.
	if post.Title != in.Title {
		newSlug, err := s.uniqueSlug(ctx, in.Title, id)
		if err != nil {
			return nil, err
		}
		post.Slug = newSlug
	}

	post.Title = in.Title
	post.Excerpt = resolveExcerpt(in)
	post.Category = in.Category
	post.Content = in.Content
	post.ImageURL = in.ImageURL
	post.Author = in.Author
	post.Status = in.Status

	if err := s.applyContentHTML(post); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	s.indexPost(ctx, post)
	return post, nil
}

// DeletePost removes a post for good. Deleting an id that is already gone
// returns ErrNotFound so the caller can surface a notice instead of
// pretending the delete did work.
func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	if err := s.repo.DeleteFtsIndex(ctx, id); err != nil {
		log.Warn().Err(err).Uint("post_id", id).Msg("failed to drop search index entry")
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostService) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return post, err
}

func (s *PostService) GetPostBySlug(ctx context.Context, slug string, includeDrafts bool) (*models.RenderedPost, error) {
	post, err := s.repo.FindBySlug(ctx, slug, includeDrafts)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.renderPost(post), nil
}

// HomeFeed returns the newest published posts across all categories.
func (s *PostService) HomeFeed(ctx context.Context) ([]models.RenderedPost, error) {
	posts, err := s.repo.FindHomeFeed(ctx)
	if err != nil {
		return nil, err
	}
	return s.renderPosts(posts), nil
}

// CategoryFeed returns the published posts of one category, newest first.
// The compound filter runs in the store; when the store rejects it (the
// missing-index condition), the feed degrades to filtering the published set
// in memory rather than failing the page.
func (s *PostService) CategoryFeed(ctx context.Context, category string) ([]models.RenderedPost, error) {
	posts, err := s.repo.FindPublishedByCategory(ctx, category)
	if err != nil {
		log.Warn().Err(err).Str("category", category).
			Msg("compound category query failed, filtering in memory")

		all, ferr := s.repo.FindPublished(ctx)
		if ferr != nil {
			return nil, ferr
		}
		posts = posts[:0]
		for _, p := range all {
			if p.Category == category {
				posts = append(posts, p)
			}
		}
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		})
	}
	return s.renderPosts(posts), nil
}

// AdminFeed lists drafts and published posts alike, newest first.
func (s *PostService) AdminFeed(ctx context.Context, page, pageSize int) ([]models.Post, int, error) {
	posts, err := s.repo.FindAllByAdmin(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	return posts, int(total), nil
}

// Stats holds the dashboard counters.
type Stats struct {
	Total     int64
	Published int64
	Drafts    int64
}

func (s *PostService) Stats(ctx context.Context) (Stats, error) {
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return Stats{}, err
	}
	published, err := s.repo.CountByStatus(ctx, models.StatusPublished)
	if err != nil {
		return Stats{}, err
	}
	return Stats{Total: total, Published: published, Drafts: total - published}, nil
}

func (s *PostService) SearchPublishedPage(ctx context.Context, query string, page, pageSize int) ([]models.RenderedPost, int, error) {
	posts, err := s.repo.SearchPublishedPage(ctx, query, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountSearchPublished(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return s.renderPosts(posts), int(total), nil
}

// resolveExcerpt falls back to a preview of the body when the editor left
// the excerpt field empty. Validate has already guaranteed there is a body
// to derive from in that case.
func resolveExcerpt(in PostInput) string {
	excerpt := strings.TrimSpace(in.Excerpt)
	if excerpt == "" {
		excerpt = utils.GenerateExcerpt(in.Content, 150)
	}
	return excerpt
}

// applyContentHTML renders the markdown body for categories that carry one.
func (s *PostService) applyContentHTML(post *models.Post) error {
	cat, ok := models.CategoryByKey(post.Category)
	if !ok || !cat.HasContent {
		post.ContentHTML = ""
		return nil
	}
	htmlContent, err := utils.RenderMarkdown(post.Content)
	if err != nil {
		return fmt.Errorf("render content: %w", err)
	}
	post.ContentHTML = string(htmlContent)
	return nil
}

// indexPost keeps the FTS table in step with a write. Index failures are
// logged, not fatal: search degrades, the post itself is saved.
func (s *PostService) indexPost(ctx context.Context, post *models.Post) {
	if err := s.repo.UpdateFtsIndex(ctx, post.ID, post.Title, post.Content); err != nil {
		log.Warn().Err(err).Uint("post_id", post.ID).Msg("failed to update search index")
	}
}

func (s *PostService) renderPost(post *models.Post) *models.RenderedPost {
	return &models.RenderedPost{
		ID:        post.ID,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
		Title:     post.Title,
		Slug:      post.Slug,
		Excerpt:   post.Excerpt,
		Category:  post.Category,
		Body:      template.HTML(post.ContentHTML),
		ImageURL:  post.ImageURL,
		Author:    post.Author,
		Status:    post.Status,
	}
}

func (s *PostService) renderPosts(posts []models.Post) []models.RenderedPost {
	rendered := make([]models.RenderedPost, len(posts))
	for i := range posts {
		rendered[i] = *s.renderPost(&posts[i])
	}
	return rendered
}

// uniqueSlug derives the slug for a title and resolves collisions by
// appending a counter until the store reports it free. excludeID skips the
// post being updated so it never collides with itself.
func (s *PostService) uniqueSlug(ctx context.Context, title string, excludeID uint) (string, error) {
	baseSlug := utils.DeriveSlug(title)
	if baseSlug == "" {
		baseSlug = "untitled"
	}
	finalSlug := baseSlug
	counter := 1
	for {
		var exists bool
		var err error
		if excludeID == 0 {
			exists, err = s.repo.CheckSlugExists(ctx, finalSlug)
		} else {
			exists, err = s.repo.CheckSlugExistsForOtherPost(ctx, finalSlug, excludeID)
		}
		if err != nil {
			return "", err
		}
		if !exists {
			break
		}
		finalSlug = fmt.Sprintf("%s-%d", baseSlug, counter)
		counter++
	}
	return finalSlug, nil
}
