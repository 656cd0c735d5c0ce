package shared

// Filter represents query filter options for owner-scoped listings
type Filter struct {
	Limit   int
	OrderBy string
	Filters map[string]interface{}
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Limit:   20,
		OrderBy: "created_at DESC",
		Filters: make(map[string]interface{}),
	}
}

// WithFilter sets a single column filter and returns the filter
func (f Filter) WithFilter(key string, value interface{}) Filter {
	if f.Filters == nil {
		f.Filters = make(map[string]interface{})
	}
	f.Filters[key] = value
	return f
}
