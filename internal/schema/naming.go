package schema

import "github.com/go-openapi/inflect"

// DefaultPrimaryKey is used when a node mapping omits its primary key.
const DefaultPrimaryKey = "id"

var rules = inflect.NewDefaultRuleset()

// DefaultTable derives a table name from a label: snake case, pluralized.
// Person becomes people and FilmStar becomes film_stars.
func DefaultTable(label string) string {
	return rules.Pluralize(rules.Underscore(label))
}
