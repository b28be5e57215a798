package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/balkashynov/horas/internal/models"
)

var (
	billedRegex = regexp.MustCompile(`(^|\s)\+(billed|faturado)\b`)
	statusRegex = regexp.MustCompile(`(^|\s)status:([^\s]+)`)
	dateRegex   = regexp.MustCompile(`(^|\s)date:([^\s]+)`)
)

// ParsedWorkItem represents a work item parsed from a one-line title
type ParsedWorkItem struct {
	Name        string
	Billed      bool
	Status      models.WorkItemStatus
	ReferenceAt time.Time
	Errors      []string
}

// ParseTitle extracts metadata from a work item title using inline syntax
// Syntax: "Landing page +billed status:done date:yesterday"
// Without date: the reference date is now; without status: OPEN.
func ParseTitle(input string, now time.Time) ParsedWorkItem {
	result := ParsedWorkItem{
		Status:      models.WorkItemOpen,
		ReferenceAt: now,
		Errors:      []string{},
	}

	if billedRegex.MatchString(input) {
		result.Billed = true
		input = billedRegex.ReplaceAllString(input, " ")
	}

	if m := statusRegex.FindStringSubmatch(input); m != nil {
		status, err := ParseStatus(m[2])
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
		} else {
			result.Status = status
		}
		input = statusRegex.ReplaceAllString(input, " ")
	}

	if m := dateRegex.FindStringSubmatch(input); m != nil {
		ref, err := ParseReferenceDate(m[2], now)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
		} else {
			result.ReferenceAt = ref
		}
		input = dateRegex.ReplaceAllString(input, " ")
	}

	// Clean up the name (remove extra spaces)
	result.Name = strings.Join(strings.Fields(input), " ")
	return result
}

// ParseStatus accepts a work item status in any case, with a few aliases
func ParseStatus(input string) (models.WorkItemStatus, error) {
	s := strings.ToUpper(strings.TrimSpace(input))
	s = strings.ReplaceAll(s, "-", "_")
	switch s {
	case "TODO", "ABERTO":
		s = string(models.WorkItemOpen)
	case "WIP", "DOING", "PROGRESS", "EM_ANDAMENTO":
		s = string(models.WorkItemInProgress)
	case "TEST", "TESTE", "TESTANDO":
		s = string(models.WorkItemTesting)
	case "FINISHED", "CONCLUIDO":
		s = string(models.WorkItemDone)
	}

	status := models.WorkItemStatus(s)
	if !status.Valid() {
		return "", models.NewValidationError("status", "invalid status %q. Use: open, in_progress, testing or done", input)
	}
	return status, nil
}
