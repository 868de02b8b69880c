package filter

import "strings"

// NormalizeCategory folds case and treats underscores, hyphens and spaces as
// the same separator. Category values arrive from several producers with
// inconsistent styling ("Pick_Up", "pick-up", "Pick up") and must compare
// equal.
func NormalizeCategory(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	replacer := strings.NewReplacer("_", " ", "-", " ")
	return strings.Join(strings.Fields(replacer.Replace(value)), " ")
}

// Fold is the comparison form for plain string dimensions (make, model, fuel
// type, color, state, features).
func Fold(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func FoldEqual(a, b string) bool {
	return Fold(a) == Fold(b)
}
