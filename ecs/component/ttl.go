package component

// TTL destroys an entity after the given number of update ticks. Projectiles
// that leave the playfield get one.
type TTL struct {
	Frames int
}

var TTLComponent = NewComponent[TTL]()
