package repositories

import (
	"strings"

	"techmarket/internal/models"

	"gorm.io/gorm"
)

type scope = func(*gorm.DB) *gorm.DB

// ProductSearch turns a validated filter into gorm scopes: one per present
// predicate, AND-combined, followed by the ordering. It never fails.
func ProductSearch(f models.ProductFilter) []scope {
	var scopes []scope
	if f.NamePattern != "" {
		scopes = append(scopes, nameContains(f.NamePattern))
	}
	if f.Available != nil {
		scopes = append(scopes, where("is_available = ?", *f.Available))
	}
	if f.MinPrice != nil {
		scopes = append(scopes, where("price >= ?", *f.MinPrice))
	}
	if f.MaxPrice != nil {
		scopes = append(scopes, where("price <= ?", *f.MaxPrice))
	}
	if f.Brand != "" {
		scopes = append(scopes, where("LOWER(brand) = ?", strings.ToLower(f.Brand)))
	}
	if f.Category != "" {
		scopes = append(scopes, where("LOWER(category) = ?", strings.ToLower(f.Category)))
	}
	if f.CategoryID != nil {
		scopes = append(scopes, where("category_id = ?", *f.CategoryID))
	}
	return append(scopes, productOrder(f.Sort))
}

func where(query string, arg interface{}) scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(query, arg)
	}
}

func nameContains(pattern string) scope {
	like := "%" + escapeLike(strings.ToLower(pattern)) + "%"
	return where(`LOWER(name) LIKE ? ESCAPE '\'`, like)
}

// productOrder sorts by the requested key; product_id breaks ties.
func productOrder(sort models.ProductSort) scope {
	return func(db *gorm.DB) *gorm.DB {
		switch sort {
		case models.SortByPriceAsc:
			db = db.Order("price ASC")
		case models.SortByPriceDesc:
			db = db.Order("price DESC")
		}
		return db.Order("product_id ASC")
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
