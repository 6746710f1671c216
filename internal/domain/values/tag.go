package values

// Tag is the suffix appended to a rendered report item to mark how a
// violation was neutralized.
type Tag string

const (
	// TagNone marks an untagged item
	TagNone Tag = ""
	// TagWaiver marks a violation suppressed by a matching waiver entry
	TagWaiver Tag = "[WAIVER]"
	// TagWaivedAsInfo marks a violation demoted to informational by
	// forced-pass mode. Distinct from TagWaiver so readers can tell an
	// approved exception from a blanket override.
	TagWaivedAsInfo Tag = "[WAIVED_AS_INFO]"
)

// String returns the tag text, empty for untagged items.
func (t Tag) String() string {
	return string(t)
}
