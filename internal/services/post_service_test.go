package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"dailybuzz/internal/models"
	"dailybuzz/internal/repository"
	"dailybuzz/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPostService(t *testing.T) *PostService {
	t.Helper()
	db, err := utils.InitDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return NewPostService(repository.NewPostRepository(db))
}

func validInput(category string) PostInput {
	in := PostInput{
		Title:    "Test Post",
		Excerpt:  "A short excerpt",
		Category: category,
		Status:   models.StatusPublished,
	}
	cat, _ := models.CategoryByKey(category)
	if cat.HasContent {
		in.Content = "Some **markdown** body"
	}
	if cat.HasImage {
		in.ImageURL = "https://images.example.com/pic.jpg"
	}
	return in
}

func TestValidate(t *testing.T) {
	s := newTestPostService(t)

	tests := []struct {
		name    string
		mutate  func(*PostInput)
		missing []string
	}{
		{"valid news post", func(in *PostInput) {}, nil},
		{"missing title", func(in *PostInput) { in.Title = "  " }, []string{"title"}},
		{"missing excerpt without a body to derive from", func(in *PostInput) {
			in.Category = "caption"
			in.Excerpt = ""
		}, []string{"excerpt"}},
		{"bad status", func(in *PostInput) { in.Status = "pending" }, []string{"status"}},
		{"unknown category", func(in *PostInput) { in.Category = "podcast" }, []string{"category"}},
		{"news needs content", func(in *PostInput) { in.Content = "" }, []string{"content"}},
		{"news needs image", func(in *PostInput) { in.ImageURL = "" }, []string{"image"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput("news")
			tt.mutate(&in)
			err := s.Validate(in)
			if tt.missing == nil {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.missing, verr.Fields)
		})
	}
}

func TestValidateCategoryCapabilities(t *testing.T) {
	s := newTestPostService(t)

	// A caption has no body field, so an empty content must pass.
	caption := validInput("caption")
	caption.Content = ""
	assert.NoError(t, s.Validate(caption))

	// A quote has no image field, so an empty image URL must pass.
	quote := validInput("quote")
	quote.ImageURL = ""
	assert.NoError(t, s.Validate(quote))

	// A pending upload satisfies the image requirement.
	news := validInput("news")
	news.ImageURL = ""
	news.HasNewImage = true
	assert.NoError(t, s.Validate(news))
}

func TestCreatePost(t *testing.T) {
	s := newTestPostService(t)
	ctx := context.Background()

	in := validInput("news")
	in.Title = "Hello, World!"

	post, err := s.CreatePost(ctx, in)
	require.NoError(t, err)

	assert.NotZero(t, post.ID)
	assert.Equal(t, "hello-world", post.Slug)
	assert.False(t, post.CreatedAt.IsZero())
	assert.False(t, post.UpdatedAt.IsZero())
	assert.Contains(t, post.ContentHTML, "<strong>markdown</strong>")
}

func TestCreatePostRejectsInvalid(t *testing.T) {
	s := newTestPostService(t)
	ctx := context.Background()

	in := validInput("news")
	in.Title = ""

	_, err := s.CreatePost(ctx, in)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	// Nothing was written.
	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
}

func TestCreatePostDerivesExcerptFromBody(t *testing.T) {
	s := newTestPostService(t)
	ctx := context.Background()

	in := validInput("news")
	in.Excerpt = ""
	in.Content = "**Big** news from the newsroom today"

	post, err := s.CreatePost(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "Big news from the newsroom today", post.Excerpt)
}

func TestCreatePostNoContentHTMLForCaptions(t *testing.T) {
	s := newTestPostService(t)
	ctx := context.Background()

	post, err := s.CreatePost(ctx, validInput("caption"))
	require.NoError(t, err)
	assert.Empty(t, post.ContentHTML)
}

func TestSlugCollisions(t *testing.T) {
	s := newTestPostService(t)
	ctx := context.Background()

	var slugs []string
	for i := 0; i < 3; i++ {
		in := validInput("news")
		in.Title = "Same Title"
		post, err := s.CreatePost(ctx, in)
		require.NoError(t, err)
		slugs = append(slugs, post.Slug)
	}

	assert.Equal(t, []string{"same-title", "same-title-1", "same-title-2"}, slugs)
}

func TestUntitledSlugFallback(t *testing.T) {
	s := newTestPostService(t)
	ctx := context.Background()

	in := validInput("news")
	in.Title = "!!!"

	post, err := s.CreatePost(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "untitled", post.Slug)
}

func TestHomeFeed(t *testing.T) {
	s := newTestPostService(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 14; i++ {
		in := validInput("news")
		in.Title = fmt.Sprintf("Published %d", i)
		in.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		_, err := s.CreatePost(ctx, in)
		require.NoError(t, err)
	}
	draft := validInput("news")
	draft.Title = "Hidden Draft"
	draft.Status = models.StatusDraft
	draft.CreatedAt = base.Add(100 * time.Hour)
	_, err := s.CreatePost(ctx, draft)
	require.NoError(t, err)

	feed, err := s.HomeFeed(ctx)
	require.NoError(t, err)

	assert.Len(t, feed, 12)
	assert.Equal(t, "Published 13", feed[0].Title)
	for i := 1; i < len(feed); i++ {
		assert.False(t, feed[i].CreatedAt.After(feed[i-1].CreatedAt),
			"feed must be ordered newest first")
	}
	for _, p := range feed {
		assert.Equal(t, models.StatusPublished, p.Status)
	}
}

func TestCategoryFeed(t *testing.T) {
	s := newTestPostService(t)
	ctx := context.Background()

	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	for i, category := range []string{"news", "quote", "news", "quote", "quote"} {
		in := validInput(category)
		in.Title = fmt.Sprintf("%s post %d", category, i)
		in.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		_, err := s.CreatePost(ctx, in)
		require.NoError(t, err)
	}
	draftQuote := validInput("quote")
	draftQuote.Title = "Draft quote"
	draftQuote.Status = models.StatusDraft
	_, err := s.CreatePost(ctx, draftQuote)
	require.NoError(t, err)

	feed, err := s.CategoryFeed(ctx, "quote")
	require.NoError(t, err)

	require.Len(t, feed, 3)
	assert.Equal(t, "quote post 4", feed[0].Title)
	for _, p := range feed {
		assert.Equal(t, "quote", p.Category)
		assert.Equal(t, models.StatusPublished, p.Status)
	}
}

func TestGetPostBySlug(t *testing.T) {
	s := newTestPostService(t)
	ctx := context.Background()

	published := validInput("news")
	published.Title = "Public Story"
	_, err := s.CreatePost(ctx, published)
	require.NoError(t, err)

	draft := validInput("news")
	draft.Title = "Secret Draft"
	draft.Status = models.StatusDraft
	_, err = s.CreatePost(ctx, draft)
	require.NoError(t, err)

	got, err := s.GetPostBySlug(ctx, "public-story", false)
	require.NoError(t, err)
	assert.Equal(t, "Public Story", got.Title)

	// Drafts stay invisible to readers, even by direct URL.
	_, err = s.GetPostBySlug(ctx, "secret-draft", false)
	assert.ErrorIs(t, err, ErrNotFound)

	// Editors previewing see the draft.
	got, err = s.GetPostBySlug(ctx, "secret-draft", true)
	require.NoError(t, err)
	assert.Equal(t, "Secret Draft", got.Title)

	// A miss is a normal outcome, reported as ErrNotFound.
	_, err = s.GetPostBySlug(ctx, "never-existed", false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePost(t *testing.T) {
	s := newTestPostService(t)
	ctx := context.Background()

	in := validInput("news")
	in.Title = "Original Title"
	post, err := s.CreatePost(ctx, in)
	require.NoError(t, err)
	createdAt := post.CreatedAt

	in.Title = "Renamed Title"
	in.Excerpt = "Updated excerpt"
	updated, err := s.UpdatePost(ctx, post.ID, in)
	require.NoError(t, err)

	assert.Equal(t, "renamed-title", updated.Slug, "slug follows the title")
	assert.Equal(t, "Updated excerpt", updated.Excerpt)
	assert.True(t, updated.CreatedAt.Equal(createdAt), "creation time never changes")
}

func TestUpdatePostKeepsSlugWhenTitleUnchanged(t *testing.T) {
	s := newTestPostService(t)
	ctx := context.Background()

	in := validInput("news")
	post, err := s.CreatePost(ctx, in)
	require.NoError(t, err)

	in.Excerpt = "Only the excerpt changed"
	updated, err := s.UpdatePost(ctx, post.ID, in)
	require.NoError(t, err)
	assert.Equal(t, post.Slug, updated.Slug)
}

func TestUpdatePostMissing(t *testing.T) {
	s := newTestPostService(t)

	_, err := s.UpdatePost(context.Background(), 9999, validInput("news"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePostIdempotent(t *testing.T) {
	s := newTestPostService(t)
	ctx := context.Background()

	post, err := s.CreatePost(ctx, validInput("news"))
	require.NoError(t, err)

	require.NoError(t, s.DeletePost(ctx, post.ID))

	// The repeat delete reports a miss instead of crashing.
	err = s.DeletePost(ctx, post.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.GetPostByID(ctx, post.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdminFeedIncludesDrafts(t *testing.T) {
	s := newTestPostService(t)
	ctx := context.Background()

	pub := validInput("news")
	pub.Title = "Live Post"
	_, err := s.CreatePost(ctx, pub)
	require.NoError(t, err)

	draft := validInput("news")
	draft.Title = "Work In Progress"
	draft.Status = models.StatusDraft
	_, err = s.CreatePost(ctx, draft)
	require.NoError(t, err)

	posts, total, err := s.AdminFeed(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, posts, 2)
}

func TestStats(t *testing.T) {
	s := newTestPostService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		in := validInput("news")
		in.Title = fmt.Sprintf("Published %d", i)
		_, err := s.CreatePost(ctx, in)
		require.NoError(t, err)
	}
	draft := validInput("news")
	draft.Title = "Draft"
	draft.Status = models.StatusDraft
	_, err := s.CreatePost(ctx, draft)
	require.NoError(t, err)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(3), stats.Published)
	assert.Equal(t, int64(1), stats.Drafts)
}

func TestSearchPublishedPage(t *testing.T) {
	s := newTestPostService(t)
	ctx := context.Background()

	match := validInput("news")
	match.Title = "Quantum Computing Breakthrough"
	_, err := s.CreatePost(ctx, match)
	require.NoError(t, err)

	other := validInput("news")
	other.Title = "Local Weather Report"
	_, err = s.CreatePost(ctx, other)
	require.NoError(t, err)

	draftMatch := validInput("news")
	draftMatch.Title = "Quantum Draft"
	draftMatch.Status = models.StatusDraft
	_, err = s.CreatePost(ctx, draftMatch)
	require.NoError(t, err)

	results, total, err := s.SearchPublishedPage(ctx, "quantum", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, results, 1)
	assert.Equal(t, "Quantum Computing Breakthrough", results[0].Title)
}

func TestValidationErrorIsTyped(t *testing.T) {
	s := newTestPostService(t)

	err := s.Validate(PostInput{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Fields)
	assert.Contains(t, verr.Error(), "title")
	assert.False(t, errors.Is(err, ErrNotFound))
}
