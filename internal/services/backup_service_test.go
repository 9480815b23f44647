package services

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"dailybuzz/internal/models"
	"dailybuzz/internal/repository"
	"dailybuzz/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBackupService(t *testing.T) (*BackupService, *PostService) {
	t.Helper()
	dir := t.TempDir()
	db, err := utils.InitDatabase(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	repo := repository.NewPostRepository(db)
	return NewBackupService(repo, filepath.Join(dir, "snapshots")), NewPostService(repo)
}

func TestExportAndRestore(t *testing.T) {
	backupSvc, postSvc := newTestBackupService(t)
	ctx := context.Background()

	createdAt := time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)
	in := validInput("news")
	in.Title = "Original Story"
	in.CreatedAt = createdAt
	_, err := postSvc.CreatePost(ctx, in)
	require.NoError(t, err)

	backup, err := backupSvc.Export(ctx)
	require.NoError(t, err)
	require.Len(t, backup, 1)
	assert.Equal(t, "Original Story", backup[0].Title)
	assert.True(t, backup[0].CreatedAt.Equal(createdAt))

	// Restore into a fresh database.
	freshBackup, freshPosts := newTestBackupService(t)
	require.NoError(t, freshBackup.Restore(ctx, backup))

	restored, err := freshPosts.GetPostBySlug(ctx, "original-story", true)
	require.NoError(t, err)
	assert.Equal(t, "Original Story", restored.Title)
	assert.True(t, restored.CreatedAt.Equal(createdAt), "restore keeps the original creation time")
}

func TestRestoreRollsBackOnBadRecord(t *testing.T) {
	backupSvc, postSvc := newTestBackupService(t)
	ctx := context.Background()

	good := models.PostBackup{
		Title:    "Good Post",
		Excerpt:  "ok",
		Category: "news",
		Content:  "body",
		ImageURL: "https://images.example.com/a.jpg",
		Status:   models.StatusPublished,
	}
	bad := models.PostBackup{
		Title:    "Bad Post",
		Category: "podcast", // not in the vocabulary
		Status:   models.StatusPublished,
	}

	err := backupSvc.Restore(ctx, []models.PostBackup{good, bad})
	require.Error(t, err)

	// The whole import rolled back, including the good record.
	stats, err := postSvc.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
}

func TestWriteSnapshot(t *testing.T) {
	backupSvc, postSvc := newTestBackupService(t)
	ctx := context.Background()

	_, err := postSvc.CreatePost(ctx, validInput("quote"))
	require.NoError(t, err)

	path, err := backupSvc.WriteSnapshot(ctx)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var backup []models.PostBackup
	require.NoError(t, json.Unmarshal(data, &backup))
	require.Len(t, backup, 1)
	assert.Equal(t, "quote", backup[0].Category)
}
