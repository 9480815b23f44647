package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dailybuzz/internal/models"
	"dailybuzz/internal/repository"

	"gorm.io/gorm"
)

// BackupService exports the post table as JSON snapshots and restores them.
// Snapshots go through the service layer on restore so validation, slug
// derivation and search indexing re-apply.
type BackupService struct {
	repo        *repository.PostRepository
	snapshotDir string
}

func NewBackupService(repo *repository.PostRepository, snapshotDir string) *BackupService {
	return &BackupService{repo: repo, snapshotDir: snapshotDir}
}

// Export collects every post in snapshot form.
func (s *BackupService) Export(ctx context.Context) ([]models.PostBackup, error) {
	posts, err := s.repo.FindAllForBackup(ctx)
	if err != nil {
		return nil, err
	}

	backup := make([]models.PostBackup, len(posts))
	for i, p := range posts {
		backup[i] = models.PostBackup{
			Title:     p.Title,
			Excerpt:   p.Excerpt,
			Category:  p.Category,
			Content:   p.Content,
			ImageURL:  p.ImageURL,
			Author:    p.Author,
			Status:    p.Status,
			CreatedAt: p.CreatedAt,
		}
	}
	return backup, nil
}

// WriteSnapshot writes a timestamped snapshot file into the snapshot
// directory and returns its path. Used by the scheduler.
func (s *BackupService) WriteSnapshot(ctx context.Context) (string, error) {
	backup, err := s.Export(ctx)
	if err != nil {
		return "", fmt.Errorf("export posts: %w", err)
	}

	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	if err := os.MkdirAll(s.snapshotDir, 0o755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("dailybuzz_%s.json", time.Now().Format("20060102150405"))
	path := filepath.Join(s.snapshotDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// Restore inserts snapshot posts inside one transaction; any bad record
// rolls the whole import back.
func (s *BackupService) Restore(ctx context.Context, backup []models.PostBackup) error {
	return s.repo.GetDB().Transaction(func(tx *gorm.DB) error {
		txService := NewPostService(repository.NewPostRepository(tx))

		for _, b := range backup {
			in := PostInput{
				Title:     b.Title,
				Excerpt:   b.Excerpt,
				Category:  b.Category,
				Content:   b.Content,
				ImageURL:  b.ImageURL,
				Author:    b.Author,
				Status:    b.Status,
				CreatedAt: b.CreatedAt,
			}
			if _, err := txService.CreatePost(ctx, in); err != nil {
				return fmt.Errorf("restore post %q: %w", b.Title, err)
			}
		}
		return nil
	})
}
