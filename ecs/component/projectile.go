package component

// PowerKind selects the one-shot ability of a projectile.
type PowerKind int

const (
	PowerNone PowerKind = iota
	PowerBoost
	PowerSplit
)

func (k PowerKind) String() string {
	switch k {
	case PowerBoost:
		return "boost"
	case PowerSplit:
		return "split"
	default:
		return "none"
	}
}

// ParsePowerKind maps a prefab name to a PowerKind.
func ParsePowerKind(s string) (PowerKind, bool) {
	switch s {
	case "", "none":
		return PowerNone, true
	case "boost":
		return PowerBoost, true
	case "split":
		return PowerSplit, true
	}
	return PowerNone, false
}

// Projectile marks a player-launched bird.
type Projectile struct {
	Prefab string
	Power  PowerKind

	// Triggered is set once the power has fired; later requests are ignored.
	Triggered bool

	MaxImpulse      float64
	PowerMultiplier float64
	BoostMultiplier float64
	SplitAngle      float64
}

var ProjectileComponent = NewComponent[Projectile]()

// PowerRequest asks the power system to fire the projectile's ability on the
// next update.
type PowerRequest struct{}

var PowerRequestComponent = NewComponent[PowerRequest]()
