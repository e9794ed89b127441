package domain

import (
	"fmt"
	"strings"
)

var DefaultStatuses = []string{"Todo", "Confirm", "Done"}

// StatusWorkflow is the ordered list of booking statuses. Transitions only move
// forward one step; operators may still set any listed value directly.
type StatusWorkflow struct {
	statuses []string
}

func NewStatusWorkflow(statuses []string) StatusWorkflow {
	clean := make([]string, 0, len(statuses))
	seen := map[string]bool{}
	for _, s := range statuses {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		clean = append(clean, s)
	}
	if len(clean) == 0 {
		clean = append(clean, DefaultStatuses...)
	}
	return StatusWorkflow{statuses: clean}
}

func (w StatusWorkflow) list() []string {
	if len(w.statuses) == 0 {
		return DefaultStatuses
	}
	return w.statuses
}

// Statuses returns a copy of the configured values in workflow order.
func (w StatusWorkflow) Statuses() []string {
	return append([]string(nil), w.list()...)
}

func (w StatusWorkflow) Initial() string {
	return w.list()[0]
}

// Canonical returns the configured spelling of status (case-insensitive match).
func (w StatusWorkflow) Canonical(status string) (string, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return "", Required("status")
	}
	for _, s := range w.list() {
		if strings.EqualFold(s, status) {
			return s, nil
		}
	}
	return "", ValidationError{
		Field: "status",
		Msg:   fmt.Sprintf("status must be one of %s", strings.Join(w.list(), ", ")),
	}
}

// Next returns the status following current.
func (w StatusWorkflow) Next(current string) (string, error) {
	canonical, err := w.Canonical(current)
	if err != nil {
		return "", err
	}
	list := w.list()
	for i, s := range list {
		if s != canonical {
			continue
		}
		if i == len(list)-1 {
			return "", ConflictError{Resource: "booking", Msg: fmt.Sprintf("status %s is the last step", s)}
		}
		return list[i+1], nil
	}
	return "", ValidationError{Field: "status", Msg: "status is unknown"}
}
