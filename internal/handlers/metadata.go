package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/faithfm/faithmedia-v1/internal/authz"
	"github.com/faithfm/faithmedia-v1/internal/catalog"
	"github.com/faithfm/faithmedia-v1/internal/logging"
	"github.com/faithfm/faithmedia-v1/internal/metrics"
	"github.com/faithfm/faithmedia-v1/internal/permissions"
)

// Length caps per editable field.
const (
	maxContentLen = 500
	maxSeriesLen  = 255
	maxGuestsLen  = 500
	maxTagsLen    = 500
)

// MetadataRequest is the PATCH body. Pointer fields distinguish "not
// sent" from "clear this field".
type MetadataRequest struct {
	File    string  `json:"file"`
	Content *string `json:"content,omitempty"`
	Series  *string `json:"series,omitempty"`
	Guests  *string `json:"guests,omitempty"`
	Tags    *string `json:"tags,omitempty"`
}

// MetadataResponse reports what an update did. Partial application is a
// success: denied fields are named in Messages while the rest apply.
type MetadataResponse struct {
	Messages      []string         `json:"messages"`
	AppliedFields []string         `json:"appliedFields"`
	Record        *catalog.Content `json:"record,omitempty"`
}

// UpdateMetadata applies an authorized partial update to one record's
// editable metadata fields.
func (h *Handlers) UpdateMetadata(w http.ResponseWriter, r *http.Request) {
	restriction, ok := permissions.FromContext(r.Context(), permissions.CapEditContent)
	if !ok {
		metrics.MetadataUpdatesTotal.WithLabelValues("denied").Inc()
		writeJSONError(w, "This application has not been authorized for your account", http.StatusForbidden)
		return
	}

	var req MetadataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.MetadataUpdatesTotal.WithLabelValues("error").Inc()
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if errs := validateMetadata(&req); len(errs) > 0 {
		metrics.MetadataUpdatesTotal.WithLabelValues("error").Inc()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		writeJSON(w, map[string]interface{}{"errors": errs})
		return
	}

	ctx := r.Context()

	existing, err := h.catalog.GetContent(ctx, req.File)
	if errors.Is(err, catalog.ErrNotFound) {
		metrics.MetadataUpdatesTotal.WithLabelValues("error").Inc()
		writeJSONError(w, fmt.Sprintf("no record for %q", req.File), http.StatusNotFound)
		return
	}
	if err != nil {
		metrics.MetadataUpdatesTotal.WithLabelValues("error").Inc()
		logging.Error("metadata update lookup failed: %v (file=%q)", err, req.File)
		writeJSONError(w, "storage error", http.StatusInternalServerError)
		return
	}

	forced, err := h.catalog.ForcedFieldsFor(ctx, req.File)
	if err != nil {
		metrics.MetadataUpdatesTotal.WithLabelValues("error").Inc()
		logging.Error("metadata update rules lookup failed: %v (file=%q)", err, req.File)
		writeJSONError(w, "storage error", http.StatusInternalServerError)
		return
	}

	decision := authz.Authorize(existing.EditableValues(), requestedFields(&req), restriction, forced.Map())

	if decision.NoChanges {
		metrics.MetadataUpdatesTotal.WithLabelValues("no_changes").Inc()
		writeJSONError(w, "no changes requested", http.StatusBadRequest)
		return
	}

	messages := denialMessages(decision)

	if decision.AllDenied() {
		metrics.MetadataUpdatesTotal.WithLabelValues("denied").Inc()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		// The current record still goes back so the caller can reconcile
		// optimistic UI state.
		writeJSON(w, MetadataResponse{Messages: messages, AppliedFields: []string{}, Record: existing})
		return
	}

	if err := h.catalog.UpdateContentFields(ctx, req.File, decision.Allowed); err != nil {
		metrics.MetadataUpdatesTotal.WithLabelValues("error").Inc()
		logging.Error("metadata update write failed: %v (file=%q)", err, req.File)
		writeJSONError(w, fmt.Sprintf("storage error: %v", err), http.StatusInternalServerError)
		return
	}

	applied := make([]string, 0, len(decision.Allowed))
	for name := range decision.Allowed {
		applied = append(applied, name)
	}
	sort.Strings(applied)

	messages = append(messages, fmt.Sprintf("Updated: %s", strings.Join(applied, ", ")))

	outcome := "applied"
	if len(decision.DeniedByPermission) > 0 || len(decision.DeniedByRule) > 0 {
		outcome = "partial"
	}
	metrics.MetadataUpdatesTotal.WithLabelValues(outcome).Inc()

	record, err := h.catalog.GetContent(ctx, req.File)
	if err != nil {
		// The write landed; losing the re-read only costs the echo.
		logging.Warn("metadata update re-read failed: %v (file=%q)", err, req.File)
		record = nil
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, MetadataResponse{
		Messages:      messages,
		AppliedFields: applied,
		Record:        record,
	})
}

func validateMetadata(req *MetadataRequest) map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(req.File) == "" {
		errs["file"] = "file is required"
	}

	caps := []struct {
		name  string
		value *string
		max   int
	}{
		{"content", req.Content, maxContentLen},
		{"series", req.Series, maxSeriesLen},
		{"guests", req.Guests, maxGuestsLen},
		{"tags", req.Tags, maxTagsLen},
	}
	for _, c := range caps {
		if c.value != nil && len(*c.value) > c.max {
			errs[c.name] = fmt.Sprintf("%s must be at most %d characters", c.name, c.max)
		}
	}

	return errs
}

func requestedFields(req *MetadataRequest) map[string]string {
	requested := map[string]string{}
	if req.Content != nil {
		requested["content"] = *req.Content
	}
	if req.Series != nil {
		requested["series"] = *req.Series
	}
	if req.Guests != nil {
		requested["guests"] = *req.Guests
	}
	if req.Tags != nil {
		requested["tags"] = *req.Tags
	}
	return requested
}

func denialMessages(decision authz.Decision) []string {
	messages := []string{}
	if len(decision.DeniedByPermission) > 0 {
		messages = append(messages, fmt.Sprintf(
			"Not permitted for your account: %s", strings.Join(decision.DeniedByPermission, ", ")))
	}
	if len(decision.DeniedByRule) > 0 {
		messages = append(messages, fmt.Sprintf(
			"Locked for this path: %s", strings.Join(decision.DeniedByRule, ", ")))
	}
	return messages
}
