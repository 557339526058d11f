package capsule

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"
)

// Fingerprint hashes the parts of a build input that should invalidate a stored
// capsule when they change. Item and activity order do not matter.
func Fingerprint(in BuildInput) string {
	items := make([]string, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, it.ID+"/"+it.MainCategory+"/"+it.LocationID)
	}
	slices.Sort(items)

	acts := make([]string, 0, len(in.Activities))
	for _, a := range in.Activities {
		acts = append(acts, string(a))
	}
	slices.Sort(acts)

	h := sha256.New()
	fmt.Fprintf(h, "items:%s\n", strings.Join(items, ","))
	for _, d := range in.Weather {
		fmt.Fprintf(h, "day:%s:%g:%g:%g\n", d.Date, d.HighF, d.LowF, d.RainChance)
	}
	fmt.Fprintf(h, "activities:%s\n", strings.Join(acts, ","))
	fmt.Fprintf(h, "presentation:%s\n", in.Presentation)
	return hex.EncodeToString(h.Sum(nil))[:32]
}
