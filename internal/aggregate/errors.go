package aggregate

import "fmt"

// UnknownCategoryError reports a drilldown request for a category that is not
// in the current ranking.
type UnknownCategoryError struct {
	Category string
}

func (e UnknownCategoryError) Error() string {
	return fmt.Sprintf("category %q is not in the current ranking", e.Category)
}

// NoMatchFound signals that a merchant search matched nothing. It is a
// condition to show the user, not a failure of the run.
type NoMatchFound struct {
	Query string
}

func (e NoMatchFound) Error() string {
	return fmt.Sprintf("no merchant matches %q", e.Query)
}

// Message is the user-facing notice for an empty search.
func (e NoMatchFound) Message() string {
	return fmt.Sprintf("No results found for '%s'.", e.Query)
}
