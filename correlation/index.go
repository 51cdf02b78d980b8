// Package correlation answers questions about a log of lifecycle events:
// which hook an entry belongs to, which entries belong to a hook, and which
// hooks of a capability set a class implements.
package correlation

import (
	"github.com/sarchlab/hookscope/eventlog"
	"github.com/sarchlab/hookscope/lifecycle"
)

// A SnapshotReader returns the visible entries of a log in sequence order.
type SnapshotReader interface {
	Snapshot() []eventlog.Entry
}

// Index correlates log entries with hook descriptors. It holds no state of
// its own; every query reads the current snapshot.
type Index struct {
	reader SnapshotReader
}

// NewIndex creates an index over the reader.
func NewIndex(reader SnapshotReader) *Index {
	return &Index{reader: reader}
}

// A Row is one line of the hook checklist.
type Row struct {
	Hook        lifecycle.HookName
	Implemented bool
	Highlighted bool
}

// MethodForEntry returns the hook row an entry belongs to. State update
// resolvers and callbacks belong to the setState row.
func MethodForEntry(e eventlog.Entry) lifecycle.HookName {
	return e.HookName.Row()
}

// MethodForEntry returns the hook row an entry belongs to.
func (x *Index) MethodForEntry(e eventlog.Entry) lifecycle.HookName {
	return MethodForEntry(e)
}

// EntriesForMethod returns the entries of an instance that belong to the hook
// row, including sub-events and custom traces emitted while the hook ran. A
// sub-event name selects the row it belongs to.
func (x *Index) EntriesForMethod(
	label string,
	hook lifecycle.HookName,
) []eventlog.Entry {
	var entries []eventlog.Entry

	row := hook.Row()
	for _, e := range x.reader.Snapshot() {
		if e.InstanceLabel == label && MethodForEntry(e) == row {
			entries = append(entries, e)
		}
	}

	return entries
}

// FireCount returns how many times the hook itself was called on the
// instance. Sub-events and custom traces are not counted.
func (x *Index) FireCount(label string, hook lifecycle.HookName) int {
	n := 0

	for _, e := range x.reader.Snapshot() {
		if e.InstanceLabel == label && !e.IsCustomTrace && e.HookName == hook {
			n++
		}
	}

	return n
}

// IsImplemented tells if the class itself defines the hook. Defaults the
// instrumentation supplies do not count.
func IsImplemented(class lifecycle.Definer, hook lifecycle.HookName) bool {
	return class.Defines(hook.Row())
}

// IsImplemented tells if the class itself defines the hook.
func (x *Index) IsImplemented(class lifecycle.Definer, hook lifecycle.HookName) bool {
	return IsImplemented(class, hook)
}

// Rows returns the checklist of the set for the class, in set order.
func (x *Index) Rows(
	class lifecycle.Definer,
	set *lifecycle.CapabilitySet,
	selected *eventlog.Entry,
) []Row {
	return Rows(class, set, selected)
}

// Rows returns the checklist of the set for the class, in set order. When
// selected is not nil, the row of the selected entry is highlighted.
func Rows(
	class lifecycle.Definer,
	set *lifecycle.CapabilitySet,
	selected *eventlog.Entry,
) []Row {
	var highlight lifecycle.HookName
	if selected != nil {
		highlight = MethodForEntry(*selected)
	}

	hooks := set.Hooks()
	rows := make([]Row, len(hooks))

	for i, h := range hooks {
		rows[i] = Row{
			Hook:        h,
			Implemented: IsImplemented(class, h),
			Highlighted: highlight != "" && h == highlight,
		}
	}

	return rows
}

// Instances returns the labels that appear in the log, in the order they
// first appear.
func (x *Index) Instances() []string {
	seen := make(map[string]bool)

	var labels []string

	for _, e := range x.reader.Snapshot() {
		if seen[e.InstanceLabel] {
			continue
		}

		seen[e.InstanceLabel] = true
		labels = append(labels, e.InstanceLabel)
	}

	return labels
}

// ImplementedCount returns the number of rows marked implemented.
func ImplementedCount(rows []Row) int {
	n := 0

	for _, r := range rows {
		if r.Implemented {
			n++
		}
	}

	return n
}
