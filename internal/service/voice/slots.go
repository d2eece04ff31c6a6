package voice

import "strings"

// SlotPath is a sequence of object keys leading to a string inside a slot.
type SlotPath []string

// QuestionSlotPaths lists where a question may sit inside the "question"
// slot, in the order they are tried.
var QuestionSlotPaths = []SlotPath{
	{"value"},
	{"slotValue", "value"},
}

// ExtractSlotText returns the first non-blank string found by following
// paths through slot, trimmed.
func ExtractSlotText(slot interface{}, paths ...SlotPath) (string, bool) {
	for _, path := range paths {
		if text, ok := lookupString(slot, path); ok {
			if trimmed := strings.TrimSpace(text); trimmed != "" {
				return trimmed, true
			}
		}
	}
	return "", false
}

func lookupString(node interface{}, path SlotPath) (string, bool) {
	for _, key := range path {
		obj, ok := node.(map[string]interface{})
		if !ok {
			return "", false
		}
		node = obj[key]
	}
	s, ok := node.(string)
	return s, ok
}
