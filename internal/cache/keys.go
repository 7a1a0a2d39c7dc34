package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// PrefixResponse namespaces generated-response keys
const PrefixResponse = "resp"

// ResponseKey generates a cache key for a generated response. Two runs
// with the same provider, model, task and corpus resolve to the same
// key, so identical inputs never trigger a second model call within the
// TTL window.
func ResponseKey(provider, model, task, corpus string) string {
	return generateKeyWithPrefix(PrefixResponse, provider, model, task, corpus)
}

func generateKeyWithPrefix(prefix string, parts ...string) string {
	h := sha256.New()
	for i, part := range parts {
		if i > 0 {
			// Separator keeps ("ab","c") distinct from ("a","bc")
			h.Write([]byte{0})
		}
		h.Write([]byte(strings.TrimSpace(part)))
	}
	return prefix + ":" + hex.EncodeToString(h.Sum(nil))
}
