package component

type DestructibleKind int

const (
	DestructibleObstacle DestructibleKind = iota
	DestructibleTarget
)

// Destructible entities are removed by hard contacts and count toward the
// level's obstacle total.
type Destructible struct {
	Kind DestructibleKind
}

var DestructibleComponent = NewComponent[Destructible]()

// LevelObject tags everything spawned by a level layout so a level change can
// tear it down.
type LevelObject struct{}

var LevelObjectComponent = NewComponent[LevelObject]()
