package natsblob

import "strings"

// kvKey maps a gateway key to a JetStream-legal KV key: colons become dots.
func kvKey(key string) string {
	return strings.ReplaceAll(key, ":", ".")
}
