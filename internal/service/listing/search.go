package listing

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/classifieds-backend/internal/domain"
	"github.com/heartmarshall/classifieds-backend/internal/schema"
)

// List runs a listing query with the browse page size.
func (s *Service) List(ctx context.Context, filter domain.ListingFilter) (domain.ListingPage, error) {
	return s.search(ctx, filter, s.opts.DefaultPageSize)
}

// Search runs a listing query with the search page size. Attribute
// predicates require filter.CategoryID.
func (s *Service) Search(ctx context.Context, filter domain.ListingFilter) (domain.ListingPage, error) {
	return s.search(ctx, filter, s.opts.SearchPageSize)
}

func (s *Service) search(ctx context.Context, filter domain.ListingFilter, defaultLimit int) (domain.ListingPage, error) {
	var category *domain.Category
	if filter.CategoryID != nil {
		c, err := s.getCategory(ctx, *filter.CategoryID)
		if err != nil {
			return domain.ListingPage{}, err
		}
		category = c
	}

	plan, err := schema.Translate(filter, category, schema.Paging{
		DefaultLimit: defaultLimit,
		MaxLimit:     s.opts.MaxPageSize,
	})
	if err != nil {
		return domain.ListingPage{}, err
	}

	var (
		total    int
		listings []domain.Listing
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.listings.Count(gctx, plan)
		if err != nil {
			return fmt.Errorf("count listings: %w", err)
		}
		total = n
		return nil
	})
	g.Go(func() error {
		found, err := s.listings.Find(gctx, plan)
		if err != nil {
			return fmt.Errorf("find listings: %w", err)
		}
		listings = found
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.ListingPage{}, err
	}

	if listings == nil {
		listings = []domain.Listing{}
	}
	return domain.NewListingPage(listings, total, plan.Page, plan.Limit), nil
}
