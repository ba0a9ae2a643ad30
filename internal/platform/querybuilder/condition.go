package querybuilder

import "strings"

// Condition is one predicate of a WHERE clause. Conditions passed together
// are joined with AND.
type Condition interface {
	writeSQL(w *sqlWriter)
}

type conditionFunc func(w *sqlWriter)

func (f conditionFunc) writeSQL(w *sqlWriter) { f(w) }

func Eq(column string, value any) Condition {
	return conditionFunc(func(w *sqlWriter) {
		w.raw(column, " = ")
		w.bind(value)
	})
}

func IsNull(column string) Condition {
	return conditionFunc(func(w *sqlWriter) {
		w.raw(column, " IS NULL")
	})
}

// Any renders "column = ANY($n)"; value is expected to be a driver array.
func Any(column string, value any) Condition {
	return conditionFunc(func(w *sqlWriter) {
		w.raw(column, " = ANY(")
		w.bind(value)
		w.raw(")")
	})
}

// Expr embeds raw SQL, binding args to its '?' markers in order.
func Expr(expr string, args ...any) Condition {
	return conditionFunc(func(w *sqlWriter) {
		w.expr(expr, args)
	})
}

// ContainsFold matches rows whose column contains term, ignoring case. LIKE
// wildcards in term match literally.
func ContainsFold(column, term string) Condition {
	return conditionFunc(func(w *sqlWriter) {
		w.raw("LOWER(", column, ") LIKE ")
		w.bind(ContainsPattern(strings.ToLower(term)))
	})
}

// Or groups conditions into a parenthesized disjunction. An empty Or matches
// nothing.
func Or(conditions ...Condition) Condition {
	return conditionFunc(func(w *sqlWriter) {
		if len(conditions) == 0 {
			w.raw("1=0")
			return
		}
		w.raw("(")
		for i, c := range conditions {
			if i > 0 {
				w.raw(" OR ")
			}
			c.writeSQL(w)
		}
		w.raw(")")
	})
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds a LIKE pattern matching term anywhere, with wildcard
// characters in term taken literally.
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
