package cmd

import (
	"context"
	"course-studio/repository/testutil"
	"slices"
	"testing"
)

func TestSeedDefaultCategories(t *testing.T) {
	want := []string{"Frontend", "Backend", "Blockchain", "UI/UX", "DevOps"}
	if !slices.Equal(defaultCategories, want) {
		t.Fatalf("defaultCategories = %v, want %v", defaultCategories, want)
	}

	repo := testutil.NewRepo(t)
	ctx := context.Background()
	if err := repo.CreateCategories(ctx, defaultCategories); err != nil {
		t.Fatalf("seed: %v", err)
	}
	categories, err := repo.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	got := make([]string, 0, len(categories))
	for _, c := range categories {
		got = append(got, c.Name)
	}
	slices.Sort(got)
	sorted := slices.Clone(want)
	slices.Sort(sorted)
	if !slices.Equal(got, sorted) {
		t.Fatalf("seeded = %v, want %v", got, sorted)
	}
}
