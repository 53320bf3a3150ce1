package catalog

import (
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/models"
)

// Segment is a fixed browse view over the catalog.
type Segment string

const (
	Mens   Segment = "Mens"
	Womens Segment = "Womens"
	Kids   Segment = "Kids"
	Home   Segment = "Home"
)

var Segments = []Segment{Mens, Womens, Kids, Home}

var segmentCategories = map[Segment][]string{
	Mens:   {"Topwear", "Bottomwear", "Sportswear"},
	Womens: {"EthnicWear", "WesternWear", "FootWear"},
	Kids:   {"Boy Clothing", "Girl Clothing", "Accessories"},
	Home:   {"Furniture", "Decor", "Kitchenware"},
}

func ParseSegment(s string) (Segment, bool) {
	for _, seg := range Segments {
		if strings.EqualFold(string(seg), s) {
			return seg, true
		}
	}

	return "", false
}

// Categories lists the categories shown for the segment, in display order.
func (s Segment) Categories() []string {
	return append([]string(nil), segmentCategories[s]...)
}

// Matches reports whether p belongs to the segment.
func (s Segment) Matches(p models.Product) bool {
	switch s {
	case Mens:
		// the mens view only lists products with every facet populated
		return p.Gender == string(Mens) && p.Category != "" && p.Brand != "" && p.Price != 0
	case Womens:
		switch strings.ToLower(p.Gender) {
		case "womens", "women", "female":
			return true
		}
		return false
	case Kids, Home:
		return p.Gender == string(s)
	default:
		return false
	}
}

// Price buckets selectable in the browse views.
const (
	BucketUnder5000 = "under-5000"
	Bucket5000To10k = "5000-10000"
	BucketOver10000 = "over-10000"
)

var PriceBuckets = []string{BucketUnder5000, Bucket5000To10k, BucketOver10000}

// InBucket reports whether price falls in the named bucket. Unknown
// bucket names never match.
func InBucket(bucket string, price float64) bool {
	switch bucket {
	case BucketUnder5000:
		return price < 5000
	case Bucket5000To10k:
		return price >= 5000 && price <= 10000
	case BucketOver10000:
		return price > 10000
	default:
		return false
	}
}
