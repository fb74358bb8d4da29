package transcript

import "strings"

// Normalize replaces every literal backslash-n sequence with a real newline.
//
// Models occasionally emit escaped newlines inside otherwise plain text. No
// other escape sequence is touched, and the result never contains a new
// backslash-n pair, so Normalize is idempotent.
func Normalize(text string) string {
	return strings.ReplaceAll(text, `\n`, "\n")
}
