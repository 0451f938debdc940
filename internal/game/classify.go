package game

import (
	"github.com/lox/acquire/internal/deck"
)

// PlacementKind enumerates what placing a hotel at a position would do.
type PlacementKind int

const (
	// PlaceSingle places an isolated hotel, nothing else happens.
	PlaceSingle PlacementKind = iota
	// PlaceNewChain founds a new chain from the origin and its unassigned
	// neighbours.
	PlaceNewChain
	// PlaceExtendsChain grows an existing chain.
	PlaceExtendsChain
	// PlaceFusion merges two or more chains.
	PlaceFusion
	// PlaceIllegal is a placement the rules forbid.
	PlaceIllegal
)

func (k PlacementKind) String() string {
	switch k {
	case PlaceSingle:
		return "SingleHotel"
	case PlaceNewChain:
		return "NewChain"
	case PlaceExtendsChain:
		return "ExtendsChain"
	case PlaceFusion:
		return "Fusion"
	case PlaceIllegal:
		return "Illegal"
	default:
		return "Unknown"
	}
}

// IllegalReason says why a placement is forbidden. Illegal classifications
// are valid outcomes the turn flow filters before acting, not errors.
type IllegalReason int

const (
	// ChainStartIllegal: the placement would found a chain but all seven
	// are already active.
	ChainStartIllegal IllegalReason = iota
	// FusionIllegal: the placement would fuse two chains that are both safe.
	FusionIllegal
)

func (r IllegalReason) String() string {
	switch r {
	case ChainStartIllegal:
		return "chain start illegal"
	case FusionIllegal:
		return "fusion illegal"
	default:
		return "unknown"
	}
}

// Description returns the long-form explanation shown to players.
func (r IllegalReason) Description() string {
	switch r {
	case ChainStartIllegal:
		return "The piece would start a new chain but all 7 chains are already active."
	case FusionIllegal:
		return "The piece would start a fusion between chains that can no longer be fused."
	default:
		return "Unknown reason."
	}
}

// Placement is the classification of one candidate position. It is computed
// per turn and never persisted. Which fields are meaningful depends on Kind:
//
//   - PlaceNewChain: Members holds the founding set (origin included)
//   - PlaceExtendsChain: Chain is extended by Members (origin included)
//   - PlaceFusion: Chains holds the distinct chains meeting at Origin
//   - PlaceIllegal: Reason says why
type Placement struct {
	Kind    PlacementKind
	Origin  deck.Position
	Members []deck.Position
	Chain   Chain
	Chains  []Chain
	Reason  IllegalReason
}

// AnalyzePosition classifies what placing a hotel at origin would do. It is
// pure: applying the result (placing the piece, founding, extending, fusing,
// resolving stock) is the turn flow's responsibility.
func AnalyzePosition(origin deck.Position, board *Board, chains *ChainManager) Placement {
	var (
		neighbourChains []Chain
		looseNeighbours []deck.Position
	)
	for _, pos := range origin.Neighbours() {
		occ := board.Occupancy(pos)
		switch occ.State {
		case Empty:
			// No neighbour there.
		case PlacedUnassigned:
			looseNeighbours = append(looseNeighbours, pos)
		case PlacedAssigned:
			if !containsChain(neighbourChains, occ.Chain) {
				neighbourChains = append(neighbourChains, occ.Chain)
			}
		}
	}

	// Case 1: no hotel nearby.
	if len(neighbourChains) == 0 && len(looseNeighbours) == 0 {
		return Placement{Kind: PlaceSingle, Origin: origin}
	}

	// Case 2: only chainless neighbours, founds a new chain.
	if len(neighbourChains) == 0 {
		if chains.AvailableChains() == nil {
			return Placement{Kind: PlaceIllegal, Origin: origin, Reason: ChainStartIllegal}
		}
		members := append(looseNeighbours, origin)
		return Placement{Kind: PlaceNewChain, Origin: origin, Members: members}
	}

	// Case 3: exactly one neighbouring chain, extends it. Any loose
	// neighbours join along with the origin.
	if len(neighbourChains) == 1 {
		members := append(looseNeighbours, origin)
		return Placement{Kind: PlaceExtendsChain, Origin: origin, Chain: neighbourChains[0], Members: members}
	}

	// Case 4: fusion. Two safe chains can never merge.
	safe := 0
	for _, chain := range neighbourChains {
		if chains.IsSafe(chain) {
			safe++
		}
	}
	if safe >= 2 {
		return Placement{Kind: PlaceIllegal, Origin: origin, Reason: FusionIllegal}
	}
	return Placement{Kind: PlaceFusion, Origin: origin, Chains: neighbourChains}
}

func containsChain(chains []Chain, chain Chain) bool {
	for _, c := range chains {
		if c == chain {
			return true
		}
	}
	return false
}
