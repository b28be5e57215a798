package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/balkashynov/horas/internal/models"
)

// shortIDLength is how many characters of an id the CLI prints
const shortIDLength = 8

func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[:shortIDLength]
}

// resolveWorkItemID expands an id prefix to the full id of one of the
// owner's work items
func resolveWorkItemID(ctx context.Context, a *app, prefix string) (string, error) {
	items, err := a.tracker.ListWorkItems(ctx, a.owner)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return matchPrefix("work item", prefix, ids)
}

// resolveSessionID expands an id prefix to the full id of one of the
// owner's sessions
func resolveSessionID(ctx context.Context, a *app, prefix string) (string, error) {
	items, err := a.tracker.ListWorkItems(ctx, a.owner)
	if err != nil {
		return "", err
	}
	var ids []string
	for _, item := range items {
		for _, s := range item.Sessions {
			ids = append(ids, s.ID)
		}
	}
	return matchPrefix("session", prefix, ids)
}

func matchPrefix(what, prefix string, ids []string) (string, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return "", models.NewValidationError("id", "%s id is required", what)
	}

	var matches []string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s %q: %w", what, prefix, models.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", models.NewValidationError("id", "%s id %q is ambiguous (%d matches), type more characters", what, prefix, len(matches))
	}
}
