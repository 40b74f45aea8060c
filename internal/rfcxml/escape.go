package rfcxml

import "strings"

// The replacer scans once, left to right, so an entity it inserts is never
// rescanned. This gives the same result as replacing & first and the other
// four characters afterwards.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// Escape makes a raw line safe for XML character data and attribute values.
// Input that is already entity-encoded is escaped a second time.
func Escape(s string) string {
	return escaper.Replace(s)
}
