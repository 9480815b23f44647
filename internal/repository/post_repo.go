package repository

import (
	"context"

	"dailybuzz/internal/models"

	"gorm.io/gorm"
)

// HomeFeedLimit caps the home feed query.
const HomeFeedLimit = 12

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// Delete removes a post row. Returns the number of rows affected so the
// caller can tell a repeat delete from a real one.
func (r *PostRepository) Delete(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	return result.RowsAffected, result.Error
}

func (r *PostRepository) FindByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).First(&post, id).Error
	return &post, err
}

// FindBySlug looks up a single post. Unless includeDrafts is set, drafts
// stay invisible: readers only ever see published posts, even by direct URL.
func (r *PostRepository) FindBySlug(ctx context.Context, slug string, includeDrafts bool) (*models.Post, error) {
	var post models.Post
	query := r.db.WithContext(ctx).Where("slug = ?", slug)
	if !includeDrafts {
		query = query.Where("status = ?", models.StatusPublished)
	}
	err := query.First(&post).Error
	return &post, err
}

// FindHomeFeed returns the latest published posts, newest first, capped at
// HomeFeedLimit.
func (r *PostRepository) FindHomeFeed(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("status = ?", models.StatusPublished).
		Order("created_at desc").
		Limit(HomeFeedLimit).
		Find(&posts).Error
	return posts, err
}

// FindPublishedByCategory applies the compound status+category filter in the
// store, ordered newest first.
func (r *PostRepository) FindPublishedByCategory(ctx context.Context, category string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("status = ? AND category = ?", models.StatusPublished, category).
		Order("created_at desc").
		Find(&posts).Error
	return posts, err
}

// FindPublished returns every published post, newest first. Degraded path
// for category feeds when the compound query fails.
func (r *PostRepository) FindPublished(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("status = ?", models.StatusPublished).
		Order("created_at desc").
		Find(&posts).Error
	return posts, err
}

// FindAllByAdmin lists every post regardless of status, newest first.
func (r *PostRepository) FindAllByAdmin(ctx context.Context, page, pageSize int) ([]models.Post, error) {
	var posts []models.Post
	offset := (page - 1) * pageSize
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Offset(offset).Limit(pageSize).
		Find(&posts).Error
	return posts, err
}

func (r *PostRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&count).Error
	return count, err
}

func (r *PostRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *PostRepository) CheckSlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("slug = ?", slug).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostRepository) CheckSlugExistsForOtherPost(ctx context.Context, slug string, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("slug = ? AND id != ?", slug, id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostRepository) UpdateFtsIndex(ctx context.Context, id uint, title, content string) error {
	query := `INSERT OR REPLACE INTO posts_fts (rowid, title, content) VALUES (?, ?, ?)`
	return r.db.WithContext(ctx).Exec(query, id, title, content).Error
}

func (r *PostRepository) DeleteFtsIndex(ctx context.Context, id uint) error {
	query := `DELETE FROM posts_fts WHERE rowid = ?`
	return r.db.WithContext(ctx).Exec(query, id).Error
}

// SearchPublishedPage runs an FTS match restricted to published posts.
func (r *PostRepository) SearchPublishedPage(ctx context.Context, ftsQuery string, page, pageSize int) ([]models.Post, error) {
	var posts []models.Post
	offset := (page - 1) * pageSize
	err := r.db.WithContext(ctx).Table("posts").
		Select("posts.*, posts_fts.rank").
		Joins("JOIN posts_fts ON posts.id = posts_fts.rowid").
		Where("posts_fts MATCH ?", ftsQuery).
		Where("posts.status = ?", models.StatusPublished).
		Order("posts_fts.rank").
		Offset(offset).Limit(pageSize).
		Find(&posts).Error
	return posts, err
}

func (r *PostRepository) CountSearchPublished(ctx context.Context, ftsQuery string) (int64, error) {
	var count int64
	subQuery := r.db.Table("posts_fts").Select("rowid").Where("posts_fts MATCH ?", ftsQuery)
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id IN (?)", subQuery).
		Where("status = ?", models.StatusPublished).
		Count(&count).Error
	return count, err
}

// FindAllForBackup returns every post in insertion order for snapshots.
func (r *PostRepository) FindAllForBackup(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).Order("id asc").Find(&posts).Error
	return posts, err
}

func (r *PostRepository) GetDB() *gorm.DB {
	return r.db
}
