// Package completeness decides which resume sections still need user input.
// A section counts as present when it has a non-empty value, when the raw
// text mentions it even loosely, or when the user already answered for it.
package completeness

import (
	"reflect"
	"strings"
)

// Fields is the committed required-section order. Missing fields are always
// reported in this order, never in discovery order.
var Fields = []string{
	"profile",
	"summary",
	"experience",
	"education",
	"skills",
	"projects",
	"certificates",
	"publications",
	"interests",
	"volunteering",
	"references",
}

// keywordRescue lists, per field, raw-text keywords that reclassify an
// unextracted field as present. The information is in the text, extraction
// just has not structured it yet, so the user is not asked again.
var keywordRescue = map[string][]string{
	"profile":      {"my name is", "email", "phone", "@"},
	"summary":      {"summary", "about me", "i am", "i'm"},
	"experience":   {"worked", "experience", "job"},
	"education":    {"studied", "degree", "university", "college", "graduated", "education"},
	"skills":       {"skills", "proficient", "know"},
	"projects":     {"project", "built", "created"},
	"certificates": {"certified", "certification", "certificate"},
	"publications": {"published", "paper", "article"},
	"interests":    {"interest", "hobby", "hobbies", "enjoy"},
	"volunteering": {"volunteer", "community"},
	"references":   {"reference", "referee"},
}

// Missing returns the required fields that have no usable value. values maps
// field name to its current state value; rawText is scanned with the rescue
// keywords; known fields (answered by the user earlier) are never re-flagged
// even if their value has since become empty.
func Missing(values map[string]any, rawText string, known map[string]bool) []string {
	lower := strings.ToLower(rawText)

	var missing []string
	for _, field := range Fields {
		if known[field] {
			continue
		}
		if !isEmpty(values[field]) {
			continue
		}
		if mentioned(lower, keywordRescue[field]) {
			continue
		}
		missing = append(missing, field)
	}
	return missing
}

func mentioned(lowerText string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lowerText, kw) {
			return true
		}
	}
	return false
}

// isEmpty reports whether a state value carries no content: nil, a blank
// string, an empty slice or map, or a nil/zero pointer.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	case reflect.Pointer:
		return rv.IsNil() || rv.Elem().IsZero()
	case reflect.Struct:
		return rv.IsZero()
	default:
		return false
	}
}
