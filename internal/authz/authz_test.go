package authz

import (
	"reflect"
	"testing"

	"github.com/faithfm/faithmedia-v1/internal/permissions"
)

func TestAuthorize(t *testing.T) {
	t.Parallel()

	existing := map[string]string{
		"content": "Morning Show",
		"series":  "Breakfast",
		"guests":  "",
		"tags":    "pending",
	}

	tests := []struct {
		name              string
		requested         map[string]string
		restriction       *permissions.Restriction
		forced            map[string]bool
		expectedAllowed   map[string]string
		expectedByPerm    []string
		expectedByRule    []string
		expectedNoChanges bool
		expectedAllDenied bool
	}{
		{
			name:            "Unrestricted caller, no rules",
			requested:       map[string]string{"tags": "approved", "guests": "Jane"},
			expectedAllowed: map[string]string{"tags": "approved", "guests": "Jane"},
		},
		{
			name:              "No-op changes are not attempted",
			requested:         map[string]string{"tags": "pending", "series": "Breakfast"},
			expectedAllowed:   map[string]string{},
			expectedNoChanges: true,
		},
		{
			name:            "Permission restriction blocks a field",
			requested:       map[string]string{"tags": "approved", "series": "Drive"},
			restriction:     &permissions.Restriction{Fields: []string{"tags"}},
			expectedAllowed: map[string]string{"tags": "approved"},
			expectedByPerm:  []string{"series"},
		},
		{
			name:            "Forced rule blocks a field for unrestricted caller",
			requested:       map[string]string{"tags": "approved", "guests": "Jane"},
			forced:          map[string]bool{"tags": true},
			expectedAllowed: map[string]string{"guests": "Jane"},
			expectedByRule:  []string{"tags"},
		},
		{
			name:              "Everything denied across both layers",
			requested:         map[string]string{"tags": "x", "series": "y"},
			restriction:       &permissions.Restriction{Fields: []string{"tags"}},
			forced:            map[string]bool{"tags": true},
			expectedAllowed:   map[string]string{},
			expectedByPerm:    []string{"series"},
			expectedByRule:    []string{"tags"},
			expectedAllDenied: true,
		},
		{
			name:              "Field denied by both layers appears in both lists",
			requested:         map[string]string{"series": "Drive"},
			restriction:       &permissions.Restriction{Fields: []string{"tags"}},
			forced:            map[string]bool{"series": true},
			expectedAllowed:   map[string]string{},
			expectedByPerm:    []string{"series"},
			expectedByRule:    []string{"series"},
			expectedAllDenied: true,
		},
		{
			name:              "Empty fields list permits nothing",
			requested:         map[string]string{"tags": "approved"},
			restriction:       &permissions.Restriction{Fields: []string{}},
			expectedAllowed:   map[string]string{},
			expectedByPerm:    []string{"tags"},
			expectedAllDenied: true,
		},
		{
			name:            "Clearing a field counts as a change",
			requested:       map[string]string{"tags": ""},
			expectedAllowed: map[string]string{"tags": ""},
		},
		{
			name:              "Empty request reports no changes",
			requested:         map[string]string{},
			expectedAllowed:   map[string]string{},
			expectedNoChanges: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Authorize(existing, tt.requested, tt.restriction, tt.forced)

			if !reflect.DeepEqual(d.Allowed, tt.expectedAllowed) {
				t.Errorf("Allowed = %v, want %v", d.Allowed, tt.expectedAllowed)
			}
			if !reflect.DeepEqual(d.DeniedByPermission, tt.expectedByPerm) {
				t.Errorf("DeniedByPermission = %v, want %v", d.DeniedByPermission, tt.expectedByPerm)
			}
			if !reflect.DeepEqual(d.DeniedByRule, tt.expectedByRule) {
				t.Errorf("DeniedByRule = %v, want %v", d.DeniedByRule, tt.expectedByRule)
			}
			if d.NoChanges != tt.expectedNoChanges {
				t.Errorf("NoChanges = %v, want %v", d.NoChanges, tt.expectedNoChanges)
			}
			if d.AllDenied() != tt.expectedAllDenied {
				t.Errorf("AllDenied() = %v, want %v", d.AllDenied(), tt.expectedAllDenied)
			}
		})
	}
}

// Authorization is pure: identical inputs always produce identical output.
func TestAuthorizeIdempotent(t *testing.T) {
	t.Parallel()

	existing := map[string]string{"tags": "pending", "series": "Drive"}
	requested := map[string]string{"tags": "approved", "series": "Breakfast", "guests": "Jane"}
	restriction := &permissions.Restriction{Fields: []string{"tags", "guests"}}
	forced := map[string]bool{"guests": true}

	first := Authorize(existing, requested, restriction, forced)
	second := Authorize(existing, requested, restriction, forced)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated authorization differed: %+v vs %+v", first, second)
	}
}
