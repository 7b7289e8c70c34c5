package formats

import "fmt"

// WarningKind classifies a non-fatal problem found while loading a mesh.
type WarningKind uint8

// Warning kinds.
const (
	WarnIndexMismatch   WarningKind = iota + 1 // texcoord/normal index differs from position index
	WarnMissingPosition                        // face vertex without a usable position index, dropped
	WarnDegenerateFace                         // face with fewer than 3 usable vertices
	WarnMalformedRecord                        // v/vn/vt record with missing or bad numbers
	WarnIndexOutOfRange                        // triangle referencing an undefined position
	WarnAttributeCount                         // normal/texcoord count differs from position count
	WarnDegenerateUV                           // triangles skipped during tangent generation
)

// String returns a short name for the kind.
func (k WarningKind) String() string {
	switch k {
	case WarnIndexMismatch:
		return "IndexMismatch"
	case WarnMissingPosition:
		return "MissingPosition"
	case WarnDegenerateFace:
		return "DegenerateFace"
	case WarnMalformedRecord:
		return "MalformedRecord"
	case WarnIndexOutOfRange:
		return "IndexOutOfRange"
	case WarnAttributeCount:
		return "AttributeCount"
	case WarnDegenerateUV:
		return "DegenerateUV"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Warning is a recoverable problem. Line is 1-based, or 0 when the warning
// comes from a pass over the whole mesh.
type Warning struct {
	Line    int
	Kind    WarningKind
	Message string
}

// String formats the warning for logs.
func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", w.Line, w.Kind, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}

// CountWarnings returns how many warnings of each kind are in ws.
func CountWarnings(ws []Warning) map[WarningKind]int {
	counts := make(map[WarningKind]int)
	for _, w := range ws {
		counts[w.Kind]++
	}
	return counts
}
