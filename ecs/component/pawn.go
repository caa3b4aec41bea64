package component

type Pawn struct {
	Name   string
	Prefab string
}

var PawnComponent = NewComponent[Pawn]()
