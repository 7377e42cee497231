package runner

import (
	"path"
	"strings"
)

// valueOptions are runner options whose value is passed as the next token.
// Their values are never treated as test targets.
var valueOptions = map[string]bool{
	"-k": true, "-m": true, "-p": true, "-c": true, "-o": true, "-r": true, "-W": true,
	"-n":        true,
	"--rootdir": true, "--confcutdir": true, "--basetemp": true, "--junitxml": true,
	"--junit-xml": true, "--ignore": true, "--ignore-glob": true, "--deselect": true,
	"--override-ini": true, "--maxfail": true, "--tb": true, "--durations": true,
	"--import-mode": true, "--log-file": true, "--log-level": true, "--cov": true,
	"--cov-report": true, "--cov-config": true, "--workers": true,
	"--tests-per-worker": true, "--dist": true, "--html": true, "--verbosity": true,
}

// SplitTargets separates the positional test targets in args from everything
// else. A token is a target only when it selects at least one of the
// collected ids: it names an id's file, a directory above it, or a node-id
// prefix. Any other token stays in opts, so the values of options unknown to
// valueOptions (a report path, say) are never dropped.
func SplitTargets(args, ids []string) (opts, targets []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if valueOptions[arg] && i+1 < len(args) {
			opts = append(opts, arg, args[i+1])
			i++
			continue
		}
		if !strings.HasPrefix(arg, "-") && selectsAny(arg, ids) {
			targets = append(targets, arg)
			continue
		}
		opts = append(opts, arg)
	}
	return opts, targets
}

func selectsAny(target string, ids []string) bool {
	for _, id := range ids {
		if selects(target, id) {
			return true
		}
	}
	return false
}

// selects reports whether the command-line target would collect id.
func selects(target, id string) bool {
	if strings.Contains(target, "::") {
		return id == target || strings.HasPrefix(id, target+"::") || strings.HasPrefix(id, target+"[")
	}
	dir := path.Clean(target)
	if dir == "." {
		return true
	}
	file := targetPath(id)
	return file == dir || strings.HasPrefix(file, dir+"/")
}

func targetPath(arg string) string {
	path, _, _ := strings.Cut(arg, "::")
	return path
}
