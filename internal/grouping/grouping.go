// Package grouping reorders collected test IDs so that tests sharing a file
// (or a directory) are contiguous before the thread engine schedules them.
//
// Test IDs are opaque "path::qualifier" strings. Only the part before the
// first "::" is inspected. Grouping is a stable partition: buckets are emitted
// in first-seen order and items keep their relative order inside a bucket.
package grouping

import (
	"strings"

	"github.com/bityantriki/autoconc/internal/concurrency"
	"github.com/bityantriki/autoconc/internal/output"
)

// IDSeparator separates the file path from the test qualifier.
const IDSeparator = "::"

// RootKey is the package key of tests whose path has no directory.
const RootKey = "."

// Path returns the file path part of a test ID.
func Path(id string) string {
	path, _, _ := strings.Cut(id, IDSeparator)
	return path
}

// Dir returns the directory part of a test ID's path, or RootKey.
func Dir(id string) string {
	path := Path(id)
	idx := strings.LastIndex(path, "/")
	if idx <= 0 {
		return RootKey
	}
	return path[:idx]
}

// Key derives the group key of a test ID for the given mode. Modes other than
// package grouping use the file path.
func Key(id string, mode concurrency.Grouping) string {
	if mode == concurrency.GroupingPackage {
		return Dir(id)
	}
	return Path(id)
}

// Partition splits items into buckets by key. Buckets appear in the order
// their key was first seen and preserve the input order of their items.
func Partition[T any](items []T, key func(T) string) [][]T {
	index := make(map[string]int)
	var buckets [][]T
	for _, item := range items {
		k := key(item)
		i, ok := index[k]
		if !ok {
			i = len(buckets)
			index[k] = i
			buckets = append(buckets, nil)
		}
		buckets[i] = append(buckets[i], item)
	}
	return buckets
}

// Result is a grouped item list.
type Result struct {
	Items  []string
	Groups int
	Mode   concurrency.Grouping
}

// Group stably reorders ids by their group key.
func Group(ids []string, mode concurrency.Grouping) Result {
	if mode != concurrency.GroupingPackage {
		mode = concurrency.GroupingFile
	}
	buckets := Partition(ids, func(id string) string { return Key(id, mode) })

	out := make([]string, 0, len(ids))
	for _, bucket := range buckets {
		out = append(out, bucket...)
	}
	return Result{Items: out, Groups: len(buckets), Mode: mode}
}

// Active reports whether a collection of n items should be grouped for the
// given decision: threading strategy, a grouping mode, a worker count and
// more than one item.
func Active(d *concurrency.Decision, n int) bool {
	return d != nil &&
		d.Strategy == concurrency.Threading &&
		d.Grouping != concurrency.GroupingNone &&
		d.Workers > 0 &&
		n > 1
}

// Apply groups ids when Active holds and returns them unchanged otherwise.
func Apply(d *concurrency.Decision, ids []string, notifier output.Notifier) []string {
	if !Active(d, len(ids)) {
		return ids
	}
	res := Group(ids, d.Grouping)

	notifier = output.OrDiscard(notifier)
	notifier.Infof("Reordered %d tests into %d %s groups for threading strategy", len(res.Items), res.Groups, res.Mode)
	notifier.Infof("Grouped tests will be scheduled across %d threads", d.Workers)
	return res.Items
}
