package domain

// serverManagedFields are assigned by the server and can never be overwritten
// through update attributes.
var serverManagedFields = map[string]struct{}{
	"id":         {},
	"created_at": {},
	"updated_at": {},
}

// MergeAttributes overlays incoming attributes onto an entity's existing
// attributes. Incoming values win, except for server-managed fields, which
// are dropped from the incoming set. Neither input map is mutated.
func MergeAttributes(existing, incoming map[string]any) map[string]any {
	merged := make(map[string]any, len(existing)+len(incoming))
	for key, value := range existing {
		merged[key] = value
	}
	for key, value := range incoming {
		if _, managed := serverManagedFields[key]; managed {
			continue
		}
		merged[key] = value
	}
	return merged
}

// stringAttribute extracts a string attribute, recording a field error for
// values of the wrong type. Missing and nil values yield the empty string.
func stringAttribute(attrs map[string]any, key string, fieldErrs *FieldErrors) string {
	value, ok := attrs[key]
	if !ok || value == nil {
		return ""
	}

	s, ok := value.(string)
	if !ok {
		fieldErrs.Add(key, "must be a string")
		return ""
	}
	return s
}
