package service

import (
	"cmp"
	"slices"
	"strings"

	"drinkcatalog/drinks-service/internal/app/drinks/entity"
)

// QueryDrinks filters the in-memory catalog and applies at most one order key.
//
// Filters are ANDed and each is skipped when empty. Brand matches when the
// drink's brand is one of BrandNames; categories match only when the drink
// carries every name in CategoryNames. With zero or several order keys, or an
// unrecognized field, drinks keep their input order.
func QueryDrinks(all []entity.Drink, f entity.DrinkFilter) []entity.Drink {
	keyword := strings.ToLower(f.Keyword)
	brands := make(map[string]struct{}, len(f.BrandNames))
	for _, b := range f.BrandNames {
		brands[b] = struct{}{}
	}

	result := make([]entity.Drink, 0, len(all))
	for _, d := range all {
		if f.MinAlcohol != nil && d.AlcoholContent < *f.MinAlcohol {
			continue
		}
		if f.MaxAlcohol != nil && d.AlcoholContent > *f.MaxAlcohol {
			continue
		}
		if keyword != "" && !strings.Contains(strings.ToLower(d.Name), keyword) {
			continue
		}
		if len(brands) > 0 {
			if _, ok := brands[d.Brand.Name]; !ok {
				continue
			}
		}
		if !hasAllCategories(d, f.CategoryNames) {
			continue
		}
		result = append(result, d)
	}

	if len(f.OrderBy) == 1 {
		sortDrinks(result, f.OrderBy[0])
	}
	return result
}

func hasAllCategories(d entity.Drink, names []string) bool {
	for _, name := range names {
		if !d.HasCategory(name) {
			return false
		}
	}
	return true
}

func sortDrinks(drinks []entity.Drink, key entity.OrderKey) {
	var compare func(a, b entity.Drink) int
	switch {
	case strings.EqualFold(key.Field, entity.OrderByName):
		compare = func(a, b entity.Drink) int { return strings.Compare(a.Name, b.Name) }
	case strings.EqualFold(key.Field, entity.OrderByAlcoholContent):
		compare = func(a, b entity.Drink) int { return cmp.Compare(a.AlcoholContent, b.AlcoholContent) }
	default:
		return
	}

	if !key.Ascending {
		asc := compare
		compare = func(a, b entity.Drink) int { return asc(b, a) }
	}
	slices.SortStableFunc(drinks, compare)
}
