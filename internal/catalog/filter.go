package catalog

import (
	"github.com/aaravmahajanofficial/storefront/internal/models"
)

// Filter holds the selections of one browse view. Within a facet the
// selections are OR'd; facets are AND'd.
type Filter struct {
	Categories  []string `json:"categories"`
	Brands      []string `json:"brands"`
	PriceRanges []string `json:"priceRanges"`
}

// NewFilter builds a filter from stated selections. Repeated values are
// kept once; unlike the Toggle methods they never cancel out.
func NewFilter(categories, brands, priceRanges []string) Filter {
	var f Filter

	for _, c := range categories {
		f.Categories = addUnique(f.Categories, c)
	}
	for _, b := range brands {
		f.Brands = addUnique(f.Brands, b)
	}
	for _, p := range priceRanges {
		f.PriceRanges = addUnique(f.PriceRanges, p)
	}

	return f
}

func (f *Filter) ToggleCategory(category string) {
	f.Categories = toggle(f.Categories, category)
}

func (f *Filter) ToggleBrand(brand string) {
	f.Brands = toggle(f.Brands, brand)
}

func (f *Filter) TogglePriceRange(bucket string) {
	f.PriceRanges = toggle(f.PriceRanges, bucket)
}

func toggle(values []string, v string) []string {
	for i, existing := range values {
		if existing == v {
			return append(values[:i:i], values[i+1:]...)
		}
	}

	return append(values, v)
}

func addUnique(values []string, v string) []string {
	if contains(values, v) {
		return values
	}

	return append(values, v)
}

func contains(values []string, v string) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}

	return false
}

// Match applies the facet selections to a single product.
func (f Filter) Match(p models.Product) bool {

	if len(f.Categories) > 0 && !contains(f.Categories, p.Category) {
		return false
	}

	if len(f.Brands) > 0 && !contains(f.Brands, p.Brand) {
		return false
	}

	if len(f.PriceRanges) > 0 {
		price := p.Price.Float64()
		for _, bucket := range f.PriceRanges {
			if InBucket(bucket, price) {
				return true
			}
		}
		return false
	}

	return true
}

// Apply keeps the products of segment that pass f, in their original order.
func Apply(products []models.Product, segment Segment, f Filter) []models.Product {

	out := make([]models.Product, 0, len(products))

	for _, p := range products {
		if segment.Matches(p) && f.Match(p) {
			out = append(out, p)
		}
	}

	return out
}

type Facets struct {
	Categories  []string `json:"categories"`
	Brands      []string `json:"brands"`
	PriceRanges []string `json:"priceRanges"`
}

// FacetsFor lists the selectable values for segment: its known categories
// that occur in products, and the brands of its products in first-seen order.
func FacetsFor(products []models.Product, segment Segment) Facets {

	present := make(map[string]bool)
	brands := []string{}
	seenBrand := make(map[string]bool)

	for _, p := range products {
		if !segment.Matches(p) {
			continue
		}
		present[p.Category] = true
		if p.Brand != "" && !seenBrand[p.Brand] {
			seenBrand[p.Brand] = true
			brands = append(brands, p.Brand)
		}
	}

	categories := []string{}
	for _, c := range segmentCategories[segment] {
		if present[c] {
			categories = append(categories, c)
		}
	}

	return Facets{
		Categories:  categories,
		Brands:      brands,
		PriceRanges: append([]string(nil), PriceBuckets...),
	}
}

type Group struct {
	Category string           `json:"category"`
	Products []models.Product `json:"products"`
}

// GroupByCategory splits products by the segment's categories. Empty
// groups are omitted; products outside the known categories are not listed.
func GroupByCategory(products []models.Product, segment Segment) []Group {

	groups := []Group{}

	for _, c := range segmentCategories[segment] {
		var items []models.Product
		for _, p := range products {
			if p.Category == c {
				items = append(items, p)
			}
		}
		if len(items) > 0 {
			groups = append(groups, Group{Category: c, Products: items})
		}
	}

	return groups
}
