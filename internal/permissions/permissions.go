package permissions

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Capability names recognised by this service.
const (
	CapUseApp      = "use-app"
	CapEditContent = "edit-content"
)

// Restriction narrows what a caller may do under one capability.
// A nil *Restriction means the capability is fully permitted. A non-nil
// restriction with empty Filter adds no query constraint; one with an
// empty (non-nil) Fields list permits no field edits at all.
type Restriction struct {
	Fields []string `json:"fields,omitempty"`
	Filter string   `json:"filter,omitempty"`
}

// FieldsRestricted reports whether the restriction limits editable fields.
func (r *Restriction) FieldsRestricted() bool {
	return r != nil && r.Fields != nil
}

// AllowsField reports whether the caller may edit the named field.
func (r *Restriction) AllowsField(name string) bool {
	if !r.FieldsRestricted() {
		return true
	}
	for _, f := range r.Fields {
		if f == name {
			return true
		}
	}
	return false
}

// FilterExpression returns the query restriction, or "" when none applies.
func (r *Restriction) FilterExpression() string {
	if r == nil {
		return ""
	}
	return r.Filter
}

// Fingerprint returns a stable hash of the restriction, used to key cached
// results so distinct permission profiles never share cache entries.
// The unrestricted case fingerprints as "none".
func (r *Restriction) Fingerprint() string {
	if r == nil {
		return "none"
	}
	var b strings.Builder
	b.WriteString("fields=")
	if r.Fields != nil {
		b.WriteString(strings.Join(r.Fields, ","))
	} else {
		b.WriteString("*")
	}
	b.WriteString(";filter=")
	b.WriteString(r.Filter)

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:16])
}

// Provider resolves the authenticated caller's restriction for a named
// capability. The second return is false when the caller does not hold the
// capability at all.
type Provider interface {
	Restrictions(ctx context.Context, capability string) (*Restriction, bool)
}

// AllowAll is a Provider that grants every capability without restriction.
// Used when the service runs behind an external gate that has already
// authorized the request.
type AllowAll struct{}

// Restrictions implements Provider.
func (AllowAll) Restrictions(context.Context, string) (*Restriction, bool) {
	return nil, true
}

// Static is a fixed capability-to-restriction table, used in wiring and
// tests. Capabilities absent from the map are not held.
type Static map[string]*Restriction

// Restrictions implements Provider.
func (s Static) Restrictions(_ context.Context, capability string) (*Restriction, bool) {
	r, ok := s[capability]
	if !ok {
		return nil, false
	}
	return r, true
}

type restrictionKey struct{ capability string }

// NewContext stores a resolved restriction for a capability in ctx.
func NewContext(ctx context.Context, capability string, r *Restriction) context.Context {
	return context.WithValue(ctx, restrictionKey{capability}, resolved{r})
}

// FromContext returns the restriction stored for a capability. The second
// return is false when no restriction was resolved for this request, which
// callers must treat as "capability not held".
func FromContext(ctx context.Context, capability string) (*Restriction, bool) {
	v, ok := ctx.Value(restrictionKey{capability}).(resolved)
	if !ok {
		return nil, false
	}
	return v.r, true
}

// resolved wraps a possibly-nil restriction so that "resolved as
// unrestricted" is distinguishable from "never resolved".
type resolved struct{ r *Restriction }
