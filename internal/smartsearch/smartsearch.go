package smartsearch

import "strings"

// FieldSet is the ordered allow-list of field names a filter expression may
// constrain. Call sites declare their own set explicitly rather than
// sharing a global one.
type FieldSet []string

// Contains reports whether name is in the set.
func (fs FieldSet) Contains(name string) bool {
	for _, f := range fs {
		if f == name {
			return true
		}
	}
	return false
}

// Clause is one compiled token: a containment constraint on a single field,
// or on any field in the set when Field is empty (free text).
type Clause struct {
	Field  string
	Term   string
	Negate bool
}

// Filter is a compiled expression: an ordered list of clauses combined with
// implicit AND, plus the field set it was compiled against.
type Filter struct {
	Clauses []Clause
	Fields  FieldSet
}

// IsEmpty reports whether the filter constrains nothing (matches all rows).
func (f Filter) IsEmpty() bool {
	return len(f.Clauses) == 0
}

// Compile parses a filter expression against the given field set.
// Compilation never fails: a token naming an unknown field is treated as a
// literal free-text term, and an empty expression yields an empty filter.
func Compile(expr string, fields FieldSet) Filter {
	filter := Filter{Fields: fields}

	for _, token := range strings.Fields(expr) {
		negate := false
		if strings.HasPrefix(token, "-") && len(token) > 1 {
			negate = true
			token = token[1:]
		}

		field := ""
		term := token
		if i := strings.IndexByte(token, ':'); i > 0 {
			name := token[:i]
			if fields.Contains(name) {
				field = name
				term = token[i+1:]
			}
			// Unknown field name: fall through with the whole token as
			// a free-text term.
		}

		if term == "" {
			continue
		}

		filter.Clauses = append(filter.Clauses, Clause{Field: field, Term: term, Negate: negate})
	}

	return filter
}

// Pattern translates a term into a LIKE containment pattern. The "*"
// wildcard becomes "%", and the whole term is wrapped for substring
// matching, so "music/v2/*" and "music/v2/" produce equivalent prefixes.
func Pattern(term string) string {
	return "%" + strings.ReplaceAll(term, "*", "%") + "%"
}

// SQL renders the filter as an ANDed SQL predicate with placeholder args.
// columnOf maps a field name to its storage column. An empty filter
// renders as ("", nil) so callers can skip the WHERE fragment entirely.
func (f Filter) SQL(columnOf func(string) string) (string, []interface{}) {
	if f.IsEmpty() {
		return "", nil
	}

	var conds []string
	var args []interface{}

	for _, c := range f.Clauses {
		pattern := Pattern(c.Term)

		if c.Field != "" {
			op := "LIKE"
			if c.Negate {
				op = "NOT LIKE"
			}
			conds = append(conds, columnOf(c.Field)+" "+op+" ?")
			args = append(args, pattern)
			continue
		}

		// Free text: OR across every allowed field.
		ors := make([]string, 0, len(f.Fields))
		for _, name := range f.Fields {
			ors = append(ors, columnOf(name)+" LIKE ?")
			args = append(args, pattern)
		}
		group := "(" + strings.Join(ors, " OR ") + ")"
		if c.Negate {
			group = "NOT " + group
		}
		conds = append(conds, group)
	}

	return strings.Join(conds, " AND "), args
}
