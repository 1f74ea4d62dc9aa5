package util

import (
	"fmt"
	"strings"
	"time"
)

// Characters that are unsafe in object keys and file systems.
const pathUnsafeChars = `/\:*?"<>|`

// SanitizeRecipientName turns a recipient's name into a storage-safe file
// name segment. Unsafe characters become "-"; a name that sanitizes down to
// nothing falls back to "recipient".
func SanitizeRecipientName(name string) string {
	sanitized := strings.Map(func(r rune) rune {
		if strings.ContainsRune(pathUnsafeChars, r) {
			return '-'
		}
		return r
	}, strings.TrimSpace(name))

	sanitized = strings.Trim(sanitized, "-. ")
	if sanitized == "" {
		return "recipient"
	}

	return sanitized
}

// Example output for "ex.txt": "21313123123_ex.txt"
func AddUniquePrefixToFileName(fileName string) string {
	uniquePrefix := fmt.Sprintf("%d", time.Now().UnixNano())
	return fmt.Sprintf("%s_%s", uniquePrefix, fileName)
}
