package permissions

import (
	"context"
	"testing"
)

func TestAllowsField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		restriction *Restriction
		field       string
		expected    bool
	}{
		{name: "Nil restriction permits everything", restriction: nil, field: "tags", expected: true},
		{name: "Restriction without fields permits everything", restriction: &Restriction{Filter: "tags:x"}, field: "tags", expected: true},
		{name: "Field in list", restriction: &Restriction{Fields: []string{"tags", "series"}}, field: "tags", expected: true},
		{name: "Field not in list", restriction: &Restriction{Fields: []string{"tags"}}, field: "series", expected: false},
		{name: "Empty fields list permits nothing", restriction: &Restriction{Fields: []string{}}, field: "tags", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.restriction.AllowsField(tt.field); got != tt.expected {
				t.Errorf("AllowsField(%q) = %v, want %v", tt.field, got, tt.expected)
			}
		})
	}
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	t.Run("Unrestricted is none", func(t *testing.T) {
		var r *Restriction
		if got := r.Fingerprint(); got != "none" {
			t.Errorf("Fingerprint() = %q, want none", got)
		}
	})

	t.Run("Stable for identical restrictions", func(t *testing.T) {
		a := &Restriction{Fields: []string{"tags"}, Filter: "file:sa/*"}
		b := &Restriction{Fields: []string{"tags"}, Filter: "file:sa/*"}
		if a.Fingerprint() != b.Fingerprint() {
			t.Error("identical restrictions should share a fingerprint")
		}
	})

	t.Run("Distinct profiles never collide", func(t *testing.T) {
		seen := map[string]string{}
		cases := []*Restriction{
			{},
			{Fields: []string{}},
			{Fields: []string{"tags"}},
			{Fields: []string{"tags", "series"}},
			{Filter: "file:sa/*"},
			{Fields: []string{"tags"}, Filter: "file:sa/*"},
		}
		for _, r := range cases {
			fp := r.Fingerprint()
			if prev, dup := seen[fp]; dup {
				t.Errorf("fingerprint collision between %+v and %s", r, prev)
			}
			seen[fp] = fp
		}
	})

	t.Run("Empty fields differs from no fields", func(t *testing.T) {
		none := &Restriction{}
		empty := &Restriction{Fields: []string{}}
		if none.Fingerprint() == empty.Fingerprint() {
			t.Error("empty field list must fingerprint differently from unrestricted fields")
		}
	})
}

func TestStaticProvider(t *testing.T) {
	t.Parallel()

	p := Static{
		CapUseApp: {Filter: "file:sa/*"},
	}

	r, ok := p.Restrictions(context.Background(), CapUseApp)
	if !ok || r == nil || r.Filter != "file:sa/*" {
		t.Errorf("expected use-app restriction, got %+v held=%v", r, ok)
	}

	if _, ok := p.Restrictions(context.Background(), CapEditContent); ok {
		t.Error("edit-content should not be held")
	}
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	if _, ok := FromContext(ctx, CapUseApp); ok {
		t.Error("empty context should not carry a restriction")
	}

	ctx = NewContext(ctx, CapUseApp, nil)
	r, ok := FromContext(ctx, CapUseApp)
	if !ok {
		t.Fatal("restriction should be resolved")
	}
	if r != nil {
		t.Errorf("expected unrestricted (nil), got %+v", r)
	}

	ctx = NewContext(ctx, CapEditContent, &Restriction{Fields: []string{"tags"}})
	r, ok = FromContext(ctx, CapEditContent)
	if !ok || r == nil || len(r.Fields) != 1 {
		t.Errorf("edit-content restriction lost in context: %+v held=%v", r, ok)
	}
}
