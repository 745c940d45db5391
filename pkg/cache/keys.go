package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// QueryKey builds a cache key for a query result. The tree hash pins the
// key to the exact input file, so a re-exported GEDCOM invalidates every
// cached result; the remaining parts identify the query and its
// parameters.
func QueryKey(treeHash, kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("pedigraph:%s:%s:%s", treeHash, kind, hex.EncodeToString(sum[:]))
}

// TreeHash computes the SHA-256 hash of raw input data, used to scope cache
// keys to one specific source file.
func TreeHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
