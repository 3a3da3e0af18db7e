package fees

import (
	"slices"

	"github.com/antzucaro/matchr"
)

// DefaultNearMissThreshold is the Jaro-Winkler similarity above which two
// different names are reported as probably the same player.
const DefaultNearMissThreshold = 0.92

// NearMiss pairs a transfer name with the most similar stats name.
type NearMiss struct {
	Transfer   string  `yaml:"transfer"`
	Stats      string  `yaml:"stats"`
	Similarity float64 `yaml:"similarity"`
}

// NearMisses compares each unmatched transfer name against the stats names
// and returns the best candidate for those scoring at least threshold.
// Nothing is merged; the result is diagnostic only.
func NearMisses(unmatched, statsNames []string, threshold float64) []NearMiss {
	candidates := slices.Clone(statsNames)
	slices.Sort(candidates)
	candidates = slices.Compact(candidates)

	var misses []NearMiss
	for _, name := range unmatched {
		best := NearMiss{Transfer: name}
		for _, c := range candidates {
			if c == name {
				continue
			}
			if score := matchr.JaroWinkler(name, c, false); score > best.Similarity {
				best.Stats, best.Similarity = c, score
			}
		}
		if best.Stats != "" && best.Similarity >= threshold {
			misses = append(misses, best)
		}
	}
	return misses
}
