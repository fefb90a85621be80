package component

// PlayerTag marks the player-controlled character.
type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()
