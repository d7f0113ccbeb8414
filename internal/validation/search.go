package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"techmarket/internal/apperrors"
	"techmarket/internal/models"
)

// ProductFilter checks the shape of the product search parameters and
// converts them into a filter. Empty values are treated as absent.
func ProductFilter(params map[string]string) (models.ProductFilter, error) {
	var f models.ProductFilter
	get := func(key string) string { return strings.TrimSpace(params[key]) }

	switch sort := models.ProductSort(get("sort")); sort {
	case models.SortByID, models.SortByPriceAsc, models.SortByPriceDesc:
		f.Sort = sort
	default:
		return f, apperrors.ValidationField("sort", fmt.Sprintf("Invalid sort option '%s'; allowed: %s, %s",
			sort, models.SortByPriceAsc, models.SortByPriceDesc))
	}

	switch available := get("available"); available {
	case "":
	case "true", "false":
		b := available == "true"
		f.Available = &b
	default:
		return f, apperrors.ValidationField("available", "available must be 'true' or 'false'")
	}

	var err error
	if f.MinPrice, err = parsePrice(get("minPrice"), "minPrice"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = parsePrice(get("maxPrice"), "maxPrice"); err != nil {
		return f, err
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return f, apperrors.ValidationField("minPrice", "minPrice cannot be greater than maxPrice")
	}

	if raw := get("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return f, apperrors.ValidationField("category_id", "category_id must be a positive integer")
		}
		categoryID := uint(id)
		f.CategoryID = &categoryID
	}

	f.Brand = get("brand")
	f.Category = get("category")
	f.NamePattern = get("name")
	return f, nil
}

func parsePrice(raw, name string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, apperrors.ValidationField(name, name+" must be a non-negative number")
	}
	return &v, nil
}

// ID parses a path identifier, which must be a positive integer.
func ID(raw, name string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.ValidationField(name, fmt.Sprintf("Invalid %s: must be a positive integer", name))
	}
	return uint(id), nil
}
