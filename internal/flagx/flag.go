// Package flagx lets several independent flag sets share one command line.
//
// Each component (JSON config lookup, env-file lookup, the main config flag
// set) filters os.Args down to the flags it owns before parsing, so none of
// them fails on flags that belong to another component.
package flagx

import (
	"flag"
	"strings"
)

// Allowed lists the flags a flag set owns, by name without leading dashes.
// Valued flags may take their value from the next argument; Bool flags never
// do, so "-auto-logout -a host" keeps "-a host" intact.
type Allowed struct {
	Valued []string
	Bool   []string
}

func flagName(arg string) string {
	name := strings.TrimLeft(arg, "-")
	if i := strings.IndexByte(name, '='); i >= 0 {
		name = name[:i]
	}
	return name
}

// FilterArgs returns the subset of args (usually os.Args[1:]) that belongs to
// the allowed flags, keeping their values and original order. Both "-name"
// and "--name" spellings are recognised, as are "-name=value" forms.
//
// The result is never nil.
func FilterArgs(args []string, allowed Allowed) []string {
	valued := make(map[string]struct{}, len(allowed.Valued))
	for _, f := range allowed.Valued {
		valued[f] = struct{}{}
	}
	bools := make(map[string]struct{}, len(allowed.Bool))
	for _, f := range allowed.Bool {
		bools[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		name := flagName(arg)

		if _, ok := bools[name]; ok {
			filtered = append(filtered, arg)
			continue
		}
		if _, ok := valued[name]; !ok {
			continue
		}

		filtered = append(filtered, arg)
		if strings.Contains(arg, "=") {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// stringFlag parses a single string flag with a short and a long name out of
// args, ignoring everything else. The last occurrence wins.
func stringFlag(args []string, short, long, usage string) string {
	var value string

	fs := flag.NewFlagSet(long, flag.ContinueOnError)
	fs.SetOutput(discard{})
	fs.StringVar(&value, long, "", usage)
	fs.StringVar(&value, short, "", usage+" (short)")
	_ = fs.Parse(FilterArgs(args, Allowed{Valued: []string{short, long}}))

	return value
}

// ConfigFileFlag returns the JSON config path given via -c or -config, or ""
// when neither is present.
func ConfigFileFlag(args []string) string {
	return stringFlag(args, "c", "config", "path to JSON config file")
}

// EnvFileFlag returns the dotenv path given via -e or -env, or "".
func EnvFileFlag(args []string) string {
	return stringFlag(args, "e", "env", "path to .env file")
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
