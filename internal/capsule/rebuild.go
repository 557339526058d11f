package capsule

import (
	"github.com/hpungsan/satchel/internal/style"
	"github.com/hpungsan/satchel/internal/wardrobe"
)

// Mode selects how the rebuild gate behaves.
type Mode string

const (
	ModeAuto  Mode = "AUTO"
	ModeForce Mode = "FORCE"
)

// Reason explains a rebuild decision.
type Reason string

const (
	ReasonForceRebuild        Reason = "FORCE_REBUILD"
	ReasonNoCapsule           Reason = "NO_CAPSULE"
	ReasonVersionMismatch     Reason = "VERSION_MISMATCH"
	ReasonDressLeak           Reason = "DRESS_LEAK"
	ReasonFingerprintMismatch Reason = "FINGERPRINT_MISMATCH"
	ReasonUpToDate            Reason = "UP_TO_DATE"
)

// Decision is the outcome of ShouldRebuild.
type Decision struct {
	Rebuild bool   `json:"rebuild"`
	Reason  Reason `json:"reason"`
	Mode    Mode   `json:"mode"`
}

// ParseMode maps a user-supplied mode; anything but FORCE (case-insensitive) is AUTO.
func ParseMode(s string) Mode {
	if Normalize(s) == "force" {
		return ModeForce
	}
	return ModeAuto
}

// ShouldRebuild decides whether a stored capsule is stale. Checks run in order
// and the first match wins:
//
//	FORCE mode                          -> rebuild (FORCE_REBUILD)
//	no capsule                          -> no rebuild (NO_CAPSULE); the caller builds fresh
//	version differs or is missing       -> rebuild (VERSION_MISMATCH)
//	masculine profile, capsule has dress -> rebuild (DRESS_LEAK)
//	fingerprint differs                 -> rebuild (FINGERPRINT_MISMATCH)
//	otherwise                           -> no rebuild (UP_TO_DATE)
//
// An empty currentFingerprint and a nil stored fingerprint both mean "none".
func ShouldRebuild(c *TripCapsule, currentVersion int, p style.Presentation, currentFingerprint string, mode Mode) Decision {
	if mode == ModeForce {
		return Decision{Rebuild: true, Reason: ReasonForceRebuild, Mode: ModeForce}
	}
	if c == nil {
		return Decision{Rebuild: false, Reason: ReasonNoCapsule, Mode: ModeAuto}
	}
	if c.Version == nil || *c.Version != currentVersion {
		return Decision{Rebuild: true, Reason: ReasonVersionMismatch, Mode: ModeAuto}
	}
	if p == style.Masculine && containsDress(c) {
		return Decision{Rebuild: true, Reason: ReasonDressLeak, Mode: ModeAuto}
	}
	stored := ""
	if c.Fingerprint != nil {
		stored = *c.Fingerprint
	}
	if stored != currentFingerprint {
		return Decision{Rebuild: true, Reason: ReasonFingerprintMismatch, Mode: ModeAuto}
	}
	return Decision{Rebuild: false, Reason: ReasonUpToDate, Mode: ModeAuto}
}

func containsDress(c *TripCapsule) bool {
	for _, o := range c.Outfits {
		for _, p := range o.Items {
			if b, ok := p.Bucket(); ok && b == wardrobe.BucketDresses {
				return true
			}
		}
	}
	return false
}
