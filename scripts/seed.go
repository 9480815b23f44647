//go:build ignore

// Seeds the database with sample posts across every category for local
// development and load testing. Run with `go run scripts/seed.go`.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"dailybuzz/internal/models"
	"dailybuzz/internal/repository"
	"dailybuzz/internal/services"
	"dailybuzz/internal/utils"
)

const totalPerCategory = 25

const newsContent = `
## Sample Story

This post was generated by the seed script for local development.

> "Fresh content updated every day."

Lorem ipsum dolor sit amet, consectetur adipiscing elit. Sed non risus.
Suspendisse lectus tortor, dignissim sit amet, adipiscing nec, ultricies
sed, dolor. Cras elementum ultrices diam.
`

func main() {
	db, err := utils.InitDatabase("dailybuzz.db")
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	postService := services.NewPostService(repository.NewPostRepository(db))
	ctx := context.Background()

	created := 0
	for _, cat := range models.Categories {
		for i := 1; i <= totalPerCategory; i++ {
			in := services.PostInput{
				Title:     fmt.Sprintf("Sample %s %d", cat.Label, i),
				Excerpt:   fmt.Sprintf("Seeded %s post number %d.", cat.Label, i),
				Category:  cat.Key,
				Status:    models.StatusPublished,
				CreatedAt: time.Now().Add(-time.Duration(i) * time.Hour),
			}
			if cat.HasContent {
				in.Content = newsContent
			}
			if cat.HasImage {
				in.ImageURL = fmt.Sprintf("https://placehold.co/1200x600?text=%s+%d", cat.Key, i)
			}
			if cat.Key == "quote" {
				in.Author = "Seed Script"
			}
			if i%5 == 0 {
				in.Status = models.StatusDraft
			}

			if _, err := postService.CreatePost(ctx, in); err != nil {
				log.Fatalf("failed to create post: %v", err)
			}
			created++
		}
	}

	fmt.Printf("seeded %d posts\n", created)
}
