package authz

import (
	"sort"

	"github.com/faithfm/faithmedia-v1/internal/permissions"
)

// Decision is the outcome of authorizing one metadata update request.
type Decision struct {
	// Allowed holds the changes that may be applied.
	Allowed map[string]string
	// DeniedByPermission lists changed fields outside the caller's grant.
	DeniedByPermission []string
	// DeniedByRule lists changed fields locked by a matching field rule.
	DeniedByRule []string
	// NoChanges is set when nothing in the request differs from the record.
	NoChanges bool
}

// AllDenied reports whether every attempted change was blocked.
func (d Decision) AllDenied() bool {
	return !d.NoChanges && len(d.Allowed) == 0
}

// Authorize computes the permitted subset of a metadata update.
//
// existing holds the record's current field values, requested the incoming
// ones. Fields whose requested value equals the current value are no-op
// changes and are never counted as attempted. restriction limits the
// caller's editable fields (nil = all editable); forced is the union of
// locked fields from every field rule matching the record's path.
func Authorize(existing, requested map[string]string, restriction *permissions.Restriction, forced map[string]bool) Decision {
	decision := Decision{Allowed: map[string]string{}}

	for field, value := range requested {
		if current, ok := existing[field]; ok && current == value {
			continue
		}

		// The two denial layers are independent: a field can be blocked by
		// permission and by rule at the same time, and is reported in both.
		denied := false
		if !restriction.AllowsField(field) {
			decision.DeniedByPermission = append(decision.DeniedByPermission, field)
			denied = true
		}
		if forced[field] {
			decision.DeniedByRule = append(decision.DeniedByRule, field)
			denied = true
		}
		if !denied {
			decision.Allowed[field] = value
		}
	}

	sort.Strings(decision.DeniedByPermission)
	sort.Strings(decision.DeniedByRule)

	if len(decision.Allowed) == 0 && len(decision.DeniedByPermission) == 0 && len(decision.DeniedByRule) == 0 {
		decision.NoChanges = true
	}

	return decision
}
