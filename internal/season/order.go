// Package season ranks season labels by recency.
//
// The ranking is configuration, not something derived from the labels: each
// data source writes its seasons in its own format ("2024-2025" on fbref,
// "24/25" on Transfermarkt) and the two orders must never be mixed.
package season

import (
	"fmt"
	"strings"
)

// Policy decides what Rank does with a label that is not in the order.
type Policy string

const (
	// PolicyFail makes Rank return an UnknownSeasonError.
	PolicyFail Policy = "fail"
	// PolicyLast ranks unknown labels after every known label.
	PolicyLast Policy = "last"
)

// ParsePolicy converts a config value into a Policy. Empty means PolicyFail.
func ParsePolicy(value string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(value))) {
	case "", PolicyFail:
		return PolicyFail, nil
	case PolicyLast:
		return PolicyLast, nil
	default:
		return "", fmt.Errorf("unknown season policy %q (valid: fail, last)", value)
	}
}

// UnknownSeasonError is returned when a label is missing from an Order
// using PolicyFail.
type UnknownSeasonError struct {
	Order string
	Label string
}

func (e *UnknownSeasonError) Error() string {
	return fmt.Sprintf("season %q is not listed in the %s season order", e.Label, e.Order)
}

// Order maps season labels to recency ranks. Labels are listed newest
// first; the first label has rank 1.
type Order struct {
	Name    string
	Version int
	Labels  []string
	Unknown Policy

	ranks map[string]int
}

// NewOrder builds an Order and validates that labels are unique and non-empty.
func NewOrder(name string, version int, labels []string, unknown Policy) (Order, error) {
	if len(labels) == 0 {
		return Order{}, fmt.Errorf("%s season order is empty", name)
	}

	ranks := make(map[string]int, len(labels))
	for i, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			return Order{}, fmt.Errorf("%s season order has an empty label at position %d", name, i+1)
		}
		if _, dup := ranks[label]; dup {
			return Order{}, fmt.Errorf("%s season order lists %q twice", name, label)
		}
		ranks[label] = i + 1
	}

	if unknown == "" {
		unknown = PolicyFail
	}

	return Order{
		Name:    name,
		Version: version,
		Labels:  append([]string(nil), labels...),
		Unknown: unknown,
		ranks:   ranks,
	}, nil
}

// MustOrder is NewOrder for package-level defaults and tests.
func MustOrder(name string, labels ...string) Order {
	o, err := NewOrder(name, 1, labels, PolicyFail)
	if err != nil {
		panic(err)
	}
	return o
}

// Rank returns the recency rank of label: smaller is more recent.
func (o Order) Rank(label string) (int, error) {
	if rank, ok := o.ranks[strings.TrimSpace(label)]; ok {
		return rank, nil
	}
	if o.Unknown == PolicyLast {
		return len(o.ranks) + 1, nil
	}
	return 0, &UnknownSeasonError{Order: o.Name, Label: label}
}
