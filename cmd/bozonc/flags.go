package main

import "strings"

// rewriteCompactFlags translates the GCC-style compact flags spec.md §6
// names (-O2, -Wfoo, -Wno-foo, -Werror=foo, -Ffoo[=value], -Fno-foo, -Idir)
// into the long-form, repeatable flags cobra/pflag parse natively. pflag
// has no notion of a shorthand whose suffix is itself the flag's value, so
// this pass runs over os.Args before cobra ever sees them.
func rewriteCompactFlags(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		switch {
		case a == "-O" || strings.HasPrefix(a, "--"):
			out = append(out, a)
		case strings.HasPrefix(a, "-O"):
			out = append(out, "--opt="+a[2:])
		case strings.HasPrefix(a, "-Wno-"):
			out = append(out, "--warn-disable="+a[len("-Wno-"):])
		case strings.HasPrefix(a, "-Werror="):
			out = append(out, "--warn-error="+a[len("-Werror="):])
		case strings.HasPrefix(a, "-W") && len(a) > 2:
			out = append(out, "--warn="+a[2:])
		case strings.HasPrefix(a, "-Fno-"):
			out = append(out, "--option-clear="+a[len("-Fno-"):])
		case strings.HasPrefix(a, "-F") && len(a) > 2:
			out = append(out, "--option="+a[2:])
		case strings.HasPrefix(a, "-I") && len(a) > 2:
			out = append(out, "--include="+a[2:])
		default:
			out = append(out, a)
		}
	}

	return out
}
