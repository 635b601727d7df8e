package knowledge

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Node is the atomic unit of stored content. Its ID is a pure function of
// (Domain, Topic, Content): inserting an identical triple twice is
// idempotent and yields the same ID.
type Node struct {
	ID              string
	Domain          Domain
	Topic           string
	Content         string
	RelatedConcepts []string
	Confidence      float64
	UsageCount      uint64
	LastAccessed    time.Time
}

// NodeID computes the content-derived fingerprint for (domain, topic,
// content): a SHA-256 digest over the three fields joined with "|", the
// same shape as the Rust source's generate_id/hash_string.
func NodeID(domain Domain, topic, content string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s", domain, topic, content)))
	return hex.EncodeToString(sum[:])
}

// ContentDigest hashes content alone, used by the content-hash index to
// detect duplicate content under different topics/domains.
func ContentDigest(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
