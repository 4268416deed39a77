package cache

import "strings"

// GlobalKeyPrefix namespaces every key this service writes.
const GlobalKeyPrefix = "medquiz"

// GenerateCacheKey builds "medquiz:<service>:<object>:<id>". Extra params are
// joined with "_" and appended as a final segment.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	parts := []string{GlobalKeyPrefix, serviceName, objectType, identifier}
	if len(paramsKey) > 0 {
		parts = append(parts, strings.Join(paramsKey, "_"))
	}
	return strings.Join(parts, ":")
}
