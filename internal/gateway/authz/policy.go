// Package authz holds the gateway's authorization policy as pure functions,
// evaluated before any outbound call to the identity service.
package authz

// HasAnyRole reports whether the caller carries at least one of the
// required roles. An empty required set denies by default.
func HasAnyRole(callerRoles []string, required ...string) bool {
	if len(required) == 0 {
		return false
	}
	allowed := make(map[string]struct{}, len(required))
	for _, r := range required {
		allowed[r] = struct{}{}
	}
	for _, r := range callerRoles {
		if _, ok := allowed[r]; ok {
			return true
		}
	}
	return false
}

// CanAccessRecord decides whether a caller may act on the record identified
// by targetID. The caller's own record is always accessible; any of the
// elevated roles bypasses the self check entirely.
func CanAccessRecord(callerID int64, callerRoles []string, targetID int64, elevated ...string) bool {
	if callerID == targetID {
		return true
	}
	return HasAnyRole(callerRoles, elevated...)
}
