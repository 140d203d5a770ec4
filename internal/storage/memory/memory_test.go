package memory

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/filmlane/movie-service/internal/domain/movie"
	"github.com/filmlane/movie-service/internal/storage"
)

func sample(title string) movie.Movie {
	return movie.Movie{
		Title:       title,
		Description: "test entry",
		ReleaseDate: time.Date(1994, time.September, 23, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateAssignsIDAndTimestamps(t *testing.T) {
	store := New()

	created, err := store.CreateMovie(context.Background(), sample("The Shawshank Redemption"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Error("ID not assigned")
	}
	if created.CreatedAt.IsZero() || !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Errorf("timestamps: created=%v updated=%v", created.CreatedAt, created.UpdatedAt)
	}
}

func TestCreateRejectsDuplicateID(t *testing.T) {
	store := New()
	ctx := context.Background()

	m := sample("x")
	m.ID = "fixed"
	if _, err := store.CreateMovie(ctx, m); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := store.CreateMovie(ctx, m); err == nil {
		t.Fatal("expected duplicate ID error")
	}
}

func TestGetMissing(t *testing.T) {
	store := New()

	_, err := store.GetMovie(context.Background(), "nope")
	if !stderrors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdatePreservesCreatedAt(t *testing.T) {
	store := New()
	ctx := context.Background()

	created, err := store.CreateMovie(ctx, sample("before"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	created.Title = "after"
	updated, err := store.UpdateMovie(ctx, created)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "after" {
		t.Errorf("title = %q", updated.Title)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("created_at changed on update")
	}

	missing := sample("ghost")
	missing.ID = "missing"
	if _, err := store.UpdateMovie(ctx, missing); !stderrors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteMissing(t *testing.T) {
	store := New()

	if err := store.DeleteMovie(context.Background(), "nope"); !stderrors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListOrderingAndPaging(t *testing.T) {
	store := New()
	ctx := context.Background()

	var ids []string
	for i := 0; i < 5; i++ {
		created, err := store.CreateMovie(ctx, sample(fmt.Sprintf("movie %d", i)))
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		ids = append(ids, created.ID)
	}

	all, err := store.ListMovies(ctx, 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("len = %d, want 5", len(all))
	}

	page, err := store.ListMovies(ctx, 2, 2)
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if len(page) != 2 {
		t.Errorf("page len = %d, want 2", len(page))
	}
	if page[0].ID != all[2].ID {
		t.Error("page did not start at offset 2")
	}

	empty, err := store.ListMovies(ctx, 10, 100)
	if err != nil {
		t.Fatalf("list past end: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty page, got %d items", len(empty))
	}

	count, err := store.CountMovies(ctx)
	if err != nil || count != len(ids) {
		t.Errorf("count = %d err = %v", count, err)
	}
}
