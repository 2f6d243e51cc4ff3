package search

import (
	"regexp"
	"strings"

	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
)

// Params carries the heterogeneous search inputs from the request layer.
type Params struct {
	BusinessName    string
	Address         string
	Query           string
	City            string
	State           string
	Zip             string
	Category        domain.BusinessCategory
	ServiceCategory domain.EligibleCategory
	Lat             *float64
	Lng             *float64
	RadiusMiles     float64
}

var zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// IsZip classifies a 5-digit (optionally +4) numeric token as a postal code.
func IsZip(token string) bool {
	return zipPattern.MatchString(strings.TrimSpace(token))
}

// ZipBase strips the +4 extension.
func ZipBase(token string) string {
	token = strings.TrimSpace(token)
	if i := strings.IndexByte(token, '-'); i > 0 {
		return token[:i]
	}
	return token
}

// keywordCategories maps free-text keywords to exact category alternatives,
// so a single keyword search also becomes a category match.
var keywordCategories = map[string]domain.BusinessCategory{
	"restaurant":  domain.CategoryRestaurant,
	"restaurants": domain.CategoryRestaurant,
	"food":        domain.CategoryRestaurant,
	"dining":      domain.CategoryRestaurant,
	"grocery":     domain.CategoryGrocery,
	"groceries":   domain.CategoryGrocery,
	"supermarket": domain.CategoryGrocery,
	"retail":      domain.CategoryRetail,
	"store":       domain.CategoryRetail,
	"clothing":    domain.CategoryRetail,
	"auto":        domain.CategoryAutomotive,
	"automotive":  domain.CategoryAutomotive,
	"mechanic":    domain.CategoryAutomotive,
	"hardware":    domain.CategoryHardware,
	"salon":       domain.CategoryBeauty,
	"barber":      domain.CategoryBeauty,
	"beauty":      domain.CategoryBeauty,
	"gym":         domain.CategoryFitness,
	"fitness":     domain.CategoryFitness,
	"electronics": domain.CategoryTechnology,
	"computer":    domain.CategoryTechnology,
	"furniture":   domain.CategoryFurniture,
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// NamePatterns returns the regex alternatives for a business name: an exact
// case-insensitive substring pattern plus a fuzzy pattern with punctuation
// stripped and whitespace made elastic ("Joes BBQ" matches "Joe's B.B.Q.").
func NamePatterns(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	exact := regexp.QuoteMeta(name)

	tokens := nonAlphanumeric.Split(name, -1)
	parts := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token == "" {
			continue
		}
		parts = append(parts, regexp.QuoteMeta(token))
	}
	if len(parts) == 0 {
		return []string{exact}
	}
	fuzzy := strings.Join(parts, `[^a-zA-Z0-9]*`)
	if fuzzy == exact {
		return []string{exact}
	}
	return []string{exact, fuzzy}
}

// BuildFilter is the pure function from search inputs to a normalized
// business filter. geo is the already-resolved coordinate basis (nil when
// none); when present, exact zip/city/state clauses are dropped (radius
// supersedes administrative-area matching) and name filtering is deferred to
// ranking so nearby non-matching businesses still come back.
func BuildFilter(params Params, geo *domain.GeoFilter) *domain.BusinessFilter {
	filter := &domain.BusinessFilter{
		NamePatterns:    NamePatterns(params.BusinessName),
		Category:        params.Category,
		ServiceCategory: params.ServiceCategory,
		Geo:             geo,
	}

	if params.Address != "" && !IsZip(params.Address) {
		filter.AddressLike = params.Address
	}

	if q := strings.TrimSpace(params.Query); q != "" {
		filter.Text = q
		seen := map[domain.BusinessCategory]bool{}
		for _, word := range strings.Fields(strings.ToLower(q)) {
			if category, ok := keywordCategories[word]; ok && !seen[category] {
				filter.CategoryAlternatives = append(filter.CategoryAlternatives, category)
				seen[category] = true
			}
		}
	}

	if geo != nil {
		filter.DeferName = true
		return filter
	}

	filter.City = params.City
	filter.State = params.State
	if params.Zip != "" {
		filter.Zip = ZipBase(params.Zip)
	} else if params.Address != "" && IsZip(params.Address) {
		filter.Zip = ZipBase(params.Address)
	}
	return filter
}

// CompileNameMatcher compiles the filter's name patterns for ranking
// annotation. Returns nil when no name constraint exists.
func CompileNameMatcher(patterns []string) func(string) bool {
	matchers := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			continue
		}
		matchers = append(matchers, re)
	}
	if len(matchers) == 0 {
		return nil
	}
	return func(name string) bool {
		for _, re := range matchers {
			if re.MatchString(name) {
				return true
			}
		}
		return false
	}
}
