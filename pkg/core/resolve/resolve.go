// Package resolve answers semantic questions ("which row is the current
// assets total?") against a ledger's row labels. Matching is driven by
// declarative specs - ordered keyword groups with an optional last-resort
// partial fallback - consumed by one generic resolver, so each financial
// line can be unit-tested on its own.
package resolve

import (
	"strings"

	"smv_analyzer/pkg/core/ledger"
)

// Group is one matcher attempt: a label matches when it contains every
// keyword in AllOf and none in NoneOf (case-insensitive substring match).
type Group struct {
	AllOf  []string
	NoneOf []string
}

// FindAccount scans groups in priority order and, within each group, row
// labels in their stored order, returning the first label the group
// accepts. More specific phrasings therefore win over looser ones.
func FindAccount(l *ledger.Ledger, groups []Group) (string, bool) {
	if l.Empty() {
		return "", false
	}
	for _, g := range groups {
		for _, account := range l.Accounts() {
			if g.matches(account) {
				return account, true
			}
		}
	}
	return "", false
}

// FindAccountPartial returns the first label containing any one of the
// keywords. Last-resort fallback for lines whose labels vary wildly in
// pre-cutoff filings.
func FindAccountPartial(l *ledger.Ledger, keywords []string) (string, bool) {
	if l.Empty() {
		return "", false
	}
	for _, account := range l.Accounts() {
		upper := strings.ToUpper(account)
		for _, kw := range keywords {
			if strings.Contains(upper, strings.ToUpper(kw)) {
				return account, true
			}
		}
	}
	return "", false
}

func (g Group) matches(account string) bool {
	upper := strings.ToUpper(account)
	for _, kw := range g.AllOf {
		if !strings.Contains(upper, strings.ToUpper(kw)) {
			return false
		}
	}
	for _, kw := range g.NoneOf {
		if strings.Contains(upper, strings.ToUpper(kw)) {
			return false
		}
	}
	return true
}

// MetricSpec is the resolution recipe for one financial line: exact-group
// attempts first, then each partial keyword list in order.
type MetricSpec struct {
	Name     string
	Groups   []Group
	Partials [][]string
}

// Resolve runs the spec against a ledger.
func (s MetricSpec) Resolve(l *ledger.Ledger) (string, bool) {
	if account, ok := FindAccount(l, s.Groups); ok {
		return account, true
	}
	for _, keywords := range s.Partials {
		if account, ok := FindAccountPartial(l, keywords); ok {
			return account, true
		}
	}
	return "", false
}
