package pathsubst

import (
	"os"
	"regexp"
)

var braceRe = regexp.MustCompile(`\{([^{}]*)\}`)

// Resolve replaces every `{VARNAME}` occurrence in path with the value
// of the matching environment variable. A placeholder whose name has
// no value in the environment is left exactly as written, braces
// included, rather than resolved to an empty string.
func Resolve(path string) string {
	return braceRe.ReplaceAllStringFunc(path, func(match string) string {
		name := match[1 : len(match)-1]
		value, ok := os.LookupEnv(name)
		if !ok {
			return match
		}
		return value
	})
}
