package repositories

// allowList is the fixed set of columns a partial update may touch.
type allowList map[string]struct{}

func newAllowList(columns ...string) allowList {
	a := make(allowList, len(columns))
	for _, c := range columns {
		a[c] = struct{}{}
	}
	return a
}

// filter keeps only the allowed columns. Unknown keys are dropped silently.
func (a allowList) filter(changes map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(changes))
	for column, value := range changes {
		if _, ok := a[column]; ok {
			out[column] = value
		}
	}
	return out
}

var (
	productUpdatable = newAllowList(
		"name", "category", "category_id", "description", "price",
		"stock_count", "brand", "image_url", "is_available",
	)
	categoryUpdatable = newAllowList("name", "description")
	userUpdatable     = newAllowList("username", "email", "password_hash", "first_name", "last_name")
	reviewUpdatable   = newAllowList("rating", "comment")
)
