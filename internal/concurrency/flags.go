package concurrency

import "strings"

// Flag names recognised by the rewriter.
const (
	FlagConcurrency     = "--concurrency"
	FlagTaskGrouping    = "--task-grouping"
	FlagMultithreading  = "--multithreading"
	FlagMultiprocessing = "--multiprocessing"
)

// Flags holds the custom flag values found in an argument list.
type Flags struct {
	// Concurrency is the raw --concurrency value. It is only meaningful when
	// HasConcurrency is set; an empty value means the flag had no value.
	Concurrency    string
	HasConcurrency bool

	// Grouping is the normalised --task-grouping mode and RawGrouping the
	// value as given. Unsupported values normalise to GroupingFile with
	// GroupingSupported unset.
	Grouping          Grouping
	RawGrouping       string
	GroupingSupported bool

	ForceThreading bool
	ForceProcesses bool
}

// token describes one occurrence of a custom flag.
type token struct {
	name  string
	value string
	span  int
}

// matchFlag reports whether args[i] starts a custom flag and how many tokens
// it occupies. span is zero when args[i] is not one of ours.
func matchFlag(args []string, i int) token {
	arg := args[i]
	switch arg {
	case FlagConcurrency:
		if i+1 < len(args) {
			return token{name: FlagConcurrency, value: args[i+1], span: 2}
		}
		return token{name: FlagConcurrency, span: 1}
	case FlagTaskGrouping:
		if i+1 < len(args) && isGroupingValue(args[i+1]) {
			return token{name: FlagTaskGrouping, value: args[i+1], span: 2}
		}
		return token{name: FlagTaskGrouping, span: 1}
	case FlagMultithreading, FlagMultiprocessing:
		return token{name: arg, span: 1}
	}

	for _, name := range []string{FlagConcurrency, FlagTaskGrouping} {
		if value, ok := strings.CutPrefix(arg, name+"="); ok {
			return token{name: name, value: value, span: 1}
		}
	}
	return token{}
}

// isGroupingValue limits the space-separated form to known modes so that a
// following positional argument is never swallowed.
func isGroupingValue(s string) bool {
	return s == string(GroupingFile) || s == string(GroupingPackage)
}

// ScanFlags extracts the custom flags from args in a single pass. The first
// occurrence of a value flag wins.
func ScanFlags(args []string) Flags {
	var f Flags
	for i := 0; i < len(args); {
		tok := matchFlag(args, i)
		if tok.span == 0 {
			i++
			continue
		}
		switch tok.name {
		case FlagConcurrency:
			if !f.HasConcurrency {
				f.HasConcurrency = true
				f.Concurrency = tok.value
			}
		case FlagTaskGrouping:
			if f.Grouping == GroupingNone {
				f.RawGrouping = tok.value
				f.Grouping, f.GroupingSupported = ParseGrouping(tok.value)
			}
		case FlagMultithreading:
			f.ForceThreading = true
		case FlagMultiprocessing:
			f.ForceProcesses = true
		}
		i += tok.span
	}
	return f
}

// StripFlags returns args without any custom flag or its value. The relative
// order of the remaining tokens is unchanged.
func StripFlags(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); {
		tok := matchFlag(args, i)
		if tok.span == 0 {
			out = append(out, args[i])
			i++
			continue
		}
		i += tok.span
	}
	return out
}
