// internal/domain/catalog/query.go
package catalog

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// QueryRequest represents catalog query parameters as bound from the
// presentation layer.
type QueryRequest struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	Sort     string `form:"sort"`
}

// Query filters and sorts a catalog snapshot. The input slice is never
// mutated; the result is always a freshly allocated, non-nil slice so an
// empty result stays distinguishable from "not yet computed".
//
// A product is kept iff the category matches (wildcard matches everything)
// and, when the search string is non-empty, it is a case-insensitive
// substring of the product name or description. Any search string is legal.
//
// All orderings are stable with respect to the original catalog order.
func Query(products []Product, category Category, search string, key SortKey) []Product {
	result := make([]Product, 0, len(products))

	needle := strings.ToLower(search)
	for _, p := range products {
		if category != CategoryAll && p.Category != category {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			continue
		}
		result = append(result, p)
	}

	sortProducts(result, key)
	return result
}

func sortProducts(products []Product, key SortKey) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.LessThan(products[j].Price)
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[j].Price.LessThan(products[i].Price)
		})
	case SortNameAsc:
		cl := collate.New(language.English)
		sort.SliceStable(products, func(i, j int) bool {
			return cl.CompareString(products[i].Name, products[j].Name) < 0
		})
	case SortNameDesc:
		cl := collate.New(language.English)
		sort.SliceStable(products, func(i, j int) bool {
			return cl.CompareString(products[j].Name, products[i].Name) < 0
		})
	default:
		// Featured ordering is a stable three-band partition, not a full
		// comparator: featured items first, then new non-featured items,
		// then everything else, each band keeping catalog order.
		sort.SliceStable(products, func(i, j int) bool {
			return featuredRank(products[i]) < featuredRank(products[j])
		})
	}
}

func featuredRank(p Product) int {
	switch {
	case p.Featured:
		return 0
	case p.New:
		return 1
	default:
		return 2
	}
}

// Service wires the query engine to a catalog repository for the HTTP layer.
type Service struct {
	repo Repository
}

// NewService creates a new catalog service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Search loads the catalog and applies the requested filter and ordering.
// Unknown category and sort values fall back to the wildcard category and
// featured ordering; they are never an error.
func (s *Service) Search(ctx context.Context, req *QueryRequest) ([]Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return Query(products, ParseCategory(req.Category), req.Search, ParseSortKey(req.Sort)), nil
}

// Get returns a single product by id.
func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	return s.repo.Get(ctx, id)
}
