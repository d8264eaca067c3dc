package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/AutumnsGrove/Pixelsorting/pkg/engine"
)

// Hash computes the SHA-256 hex digest of data.
func Hash(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// hashKey builds a namespaced key from the hash of its parts.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	h := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(h[:]))
}

// ResultKey identifies a finished run: the source image digest, the full
// parameter set and the seed. Two runs with equal keys produce identical
// output, so cached entries never go stale.
func ResultKey(sourceHash string, p engine.Params, seed int64) string {
	return hashKey("result", sourceHash,
		p.Strategy.String(), p.Key.String(),
		p.BottomThreshold, p.UpperThreshold,
		p.CharLength, p.Randomness, p.Angle, p.Rule,
		seed)
}
