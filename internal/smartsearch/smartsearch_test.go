package smartsearch

import (
	"reflect"
	"testing"
)

var contentFields = FieldSet{"file", "series", "content", "guests", "tags"}

func TestCompileTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		expr     string
		expected []Clause
	}{
		{
			name:     "Empty expression",
			expr:     "",
			expected: nil,
		},
		{
			name:     "Whitespace only",
			expr:     "   \t ",
			expected: nil,
		},
		{
			name: "Field constraint",
			expr: "file:music/v2/*",
			expected: []Clause{
				{Field: "file", Term: "music/v2/*"},
			},
		},
		{
			name: "Negated field constraint",
			expr: "-tags:pending",
			expected: []Clause{
				{Field: "tags", Term: "pending", Negate: true},
			},
		},
		{
			name: "Bare free-text term",
			expr: "2020-",
			expected: []Clause{
				{Term: "2020-"},
			},
		},
		{
			name: "Negated free-text term",
			expr: "-demo",
			expected: []Clause{
				{Term: "demo", Negate: true},
			},
		},
		{
			name: "Full rotation expression",
			expr: "file:music/v2/* -tags:pending -tags:rejected 2020-",
			expected: []Clause{
				{Field: "file", Term: "music/v2/*"},
				{Field: "tags", Term: "pending", Negate: true},
				{Field: "tags", Term: "rejected", Negate: true},
				{Term: "2020-"},
			},
		},
		{
			name: "Unknown field degrades to free text",
			expr: "bogus:thing",
			expected: []Clause{
				{Term: "bogus:thing"},
			},
		},
		{
			name: "Negated unknown field degrades to negated free text",
			expr: "-bogus:thing",
			expected: []Clause{
				{Term: "bogus:thing", Negate: true},
			},
		},
		{
			name:     "Lone dash is dropped",
			expr:     "-",
			expected: nil,
		},
		{
			name:     "Field with empty term is dropped",
			expr:     "tags:",
			expected: nil,
		},
		{
			name: "Colon at position zero is free text",
			expr: ":weird",
			expected: []Clause{
				{Term: ":weird"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compile(tt.expr, contentFields)
			if !reflect.DeepEqual(got.Clauses, tt.expected) {
				t.Errorf("Compile(%q) clauses = %+v, want %+v", tt.expr, got.Clauses, tt.expected)
			}
		})
	}
}

func TestPattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		term     string
		expected string
	}{
		{name: "Plain term", term: "pending", expected: "%pending%"},
		{name: "Trailing wildcard", term: "music/v2/*", expected: "%music/v2/%%"},
		{name: "Leading wildcard", term: "*.mp3", expected: "%%.mp3%"},
		{name: "Multiple wildcards", term: "a*b*c", expected: "%a%b%c%"},
		{name: "Only wildcard", term: "*", expected: "%%%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Pattern(tt.term); got != tt.expected {
				t.Errorf("Pattern(%q) = %q, want %q", tt.term, got, tt.expected)
			}
		})
	}
}

func TestSQLRendering(t *testing.T) {
	t.Parallel()

	identity := func(name string) string { return name }

	t.Run("Empty filter renders nothing", func(t *testing.T) {
		sql, args := Compile("", contentFields).SQL(identity)
		if sql != "" || args != nil {
			t.Errorf("expected empty predicate, got %q with %v", sql, args)
		}
	})

	t.Run("Field include and exclude", func(t *testing.T) {
		sql, args := Compile("tags:pending -tags:rejected", contentFields).SQL(identity)

		expectedSQL := "tags LIKE ? AND tags NOT LIKE ?"
		if sql != expectedSQL {
			t.Errorf("sql = %q, want %q", sql, expectedSQL)
		}

		expectedArgs := []interface{}{"%pending%", "%rejected%"}
		if !reflect.DeepEqual(args, expectedArgs) {
			t.Errorf("args = %v, want %v", args, expectedArgs)
		}
	})

	t.Run("Free text fans out across fields", func(t *testing.T) {
		sql, args := Compile("2020-", contentFields).SQL(identity)

		expectedSQL := "(file LIKE ? OR series LIKE ? OR content LIKE ? OR guests LIKE ? OR tags LIKE ?)"
		if sql != expectedSQL {
			t.Errorf("sql = %q, want %q", sql, expectedSQL)
		}
		if len(args) != len(contentFields) {
			t.Errorf("expected %d args, got %d", len(contentFields), len(args))
		}
		for _, a := range args {
			if a != "%2020-%" {
				t.Errorf("arg = %v, want %%2020-%%", a)
			}
		}
	})

	t.Run("Negated free text wraps the OR group", func(t *testing.T) {
		sql, _ := Compile("-demo", contentFields).SQL(identity)

		expectedSQL := "NOT (file LIKE ? OR series LIKE ? OR content LIKE ? OR guests LIKE ? OR tags LIKE ?)"
		if sql != expectedSQL {
			t.Errorf("sql = %q, want %q", sql, expectedSQL)
		}
	})

	t.Run("Column mapping is applied", func(t *testing.T) {
		columnOf := func(name string) string {
			if name == "file" {
				return "c.file"
			}
			return "c." + name
		}

		sql, _ := Compile("file:sa/drive/", contentFields).SQL(columnOf)
		if sql != "c.file LIKE ?" {
			t.Errorf("sql = %q, want c.file LIKE ?", sql)
		}
	})
}

func TestCompileNeverPanics(t *testing.T) {
	t.Parallel()

	// Malformed input of every shape must degrade, not fail.
	inputs := []string{
		"::", ":::a", "a:", "-:", "--double", "-a:b:c", "field:*:*",
		"tags:pending extra:junk -", "   -   ", "*",
	}

	for _, expr := range inputs {
		f := Compile(expr, contentFields)
		_, _ = f.SQL(func(n string) string { return n })
	}
}
