package system

import "github.com/milk9111/slingshot/prefabs"

// ContactOutcome is what a single contact does to the bodies involved.
type ContactOutcome int

const (
	ContactIgnored ContactOutcome = iota
	ContactObserved
	ContactDestructive
)

func (o ContactOutcome) String() string {
	switch o {
	case ContactObserved:
		return "observed"
	case ContactDestructive:
		return "destructive"
	default:
		return "ignored"
	}
}

// CollisionPolicy classifies contacts by the magnitude of their total impulse.
type CollisionPolicy struct {
	IgnoreBelow  float64
	DestroyAbove float64
}

func NewCollisionPolicy(spec prefabs.CollisionSpec) CollisionPolicy {
	return CollisionPolicy{IgnoreBelow: spec.IgnoreBelow, DestroyAbove: spec.DestroyAbove}
}

// Classify maps an impulse magnitude to an outcome. Both thresholds are
// exclusive: a contact of exactly IgnoreBelow or DestroyAbove is observed.
func (p CollisionPolicy) Classify(magnitude float64) ContactOutcome {
	switch {
	case magnitude < p.IgnoreBelow:
		return ContactIgnored
	case magnitude > p.DestroyAbove:
		return ContactDestructive
	default:
		return ContactObserved
	}
}
