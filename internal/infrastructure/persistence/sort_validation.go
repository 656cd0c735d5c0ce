package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// ValidateOrderBy validates a "field dir" order expression against a whitelist
// and returns a safe ORDER BY fragment. Both parts fall back to defaults when
// the input cannot be trusted, so the result can be passed to GORM's Order.
func ValidateOrderBy(orderBy string, allowedFields map[string]bool, defaultField string) string {
	field := defaultField
	dir := "DESC"

	parts := strings.Fields(orderBy)
	if len(parts) > 0 {
		field = ValidateSortField(parts[0], allowedFields, defaultField)
	}
	if len(parts) > 1 {
		dir = ValidateSortOrder(parts[1])
	}

	return field + " " + dir
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"stock":      true,
	"cost":       true,
}

// PriceSortFields contains allowed sort fields for price lists
var PriceSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
}

// SaleSortFields contains allowed sort fields for sales
var SaleSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"sale_date":   true,
	"total":       true,
	"bill_number": true,
	"state":       true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"email":      true,
	"company":    true,
}
