// Package seeder loads a category catalog into the store. Categories are
// matched by slug, so running it again updates instead of duplicating.
package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/classifieds-backend/internal/domain"
)

// CategoryUpserter is implemented by the postgres category repository.
type CategoryUpserter interface {
	UpsertBySlug(ctx context.Context, c *domain.Category) (bool, error)
}

// Result summarizes a seeder run.
type Result struct {
	Inserted int
	Updated  int
	Skipped  int
	Duration time.Duration
}

// Seeder writes catalog entries through a CategoryUpserter.
type Seeder struct {
	log  *slog.Logger
	repo CategoryUpserter
	cfg  Config
}

// New creates a Seeder.
func New(log *slog.Logger, repo CategoryUpserter, cfg Config) *Seeder {
	return &Seeder{log: log.With("component", "seeder"), repo: repo, cfg: cfg}
}

// Run validates the whole catalog first and writes nothing if any entry is
// invalid. In dry-run mode every entry is counted as skipped.
func (s *Seeder) Run(ctx context.Context, catalog []CatalogEntry) (Result, error) {
	start := time.Now()

	categories, err := prepare(catalog)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for i := range categories {
		c := &categories[i]

		if s.cfg.DryRun {
			s.log.InfoContext(ctx, "dry run: would upsert category",
				slog.String("slug", c.Slug),
				slog.Int("fields", len(c.Fields)),
			)
			res.Skipped++
			continue
		}

		inserted, err := s.repo.UpsertBySlug(ctx, c)
		if err != nil {
			return res, fmt.Errorf("upsert category %s: %w", c.Slug, err)
		}
		if inserted {
			res.Inserted++
		} else {
			res.Updated++
		}
	}

	res.Duration = time.Since(start)
	s.log.InfoContext(ctx, "catalog seeded",
		slog.Int("inserted", res.Inserted),
		slog.Int("updated", res.Updated),
		slog.Int("skipped", res.Skipped),
		slog.Duration("duration", res.Duration),
	)
	return res, nil
}

// prepare converts and validates every entry, collecting all problems.
func prepare(catalog []CatalogEntry) ([]domain.Category, error) {
	var errs []domain.FieldError
	categories := make([]domain.Category, len(catalog))
	slugs := make(map[string]int, len(catalog))

	for i, entry := range catalog {
		c := entry.toCategory()
		path := fmt.Sprintf("categories[%d]", i)

		if c.Name == "" {
			errs = append(errs, domain.FieldError{Field: path + ".name", Message: "required"})
		}
		if c.Slug == "" {
			errs = append(errs, domain.FieldError{Field: path + ".slug", Message: "required"})
		} else if j, dup := slugs[c.Slug]; dup {
			errs = append(errs, domain.FieldError{
				Field:   path + ".slug",
				Message: fmt.Sprintf("duplicate slug %q (also categories[%d])", c.Slug, j),
			})
		} else {
			slugs[c.Slug] = i
		}
		for _, fe := range domain.ValidateFieldDefinitions(c.Fields) {
			fe.Field = path + "." + fe.Field
			errs = append(errs, fe)
		}

		categories[i] = c
	}

	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}
	return categories, nil
}
