package core

// A Ranking orders a set of Slots according to an implementation specific metric.
type Ranking interface {
	// Returns the current ranks
	Ranks() []*Slot

	// Returns the occupant of the ith place in the Ranking.
	// Returns nil if the place is unoccupied or out of bounds.
	At(i int) *Slot

	// Updates the return value of the Ranks() method.
	// Called whenever a result that influences the
	// ranking becomes known.
	updateRanks()

	// All slots that resolve their placement from this
	// ranking are added here.
	addDependantSlots(slots ...*Slot)

	dependantSlots() []*Slot

	GraphNode
}

type BaseRanking struct {
	ranks    []*Slot
	id       int
	depSlots []*Slot
}

func (r *BaseRanking) Ranks() []*Slot {
	return r.ranks
}

func (r *BaseRanking) At(i int) *Slot {
	if i >= len(r.ranks) || i < 0 {
		return nil
	}
	return r.ranks[i]
}

func (r *BaseRanking) updateRanks() {}

func (r *BaseRanking) addDependantSlots(slots ...*Slot) {
	r.depSlots = append(r.depSlots, slots...)
}

func (r *BaseRanking) dependantSlots() []*Slot {
	return r.depSlots
}

func (r *BaseRanking) Id() int {
	return r.id
}

// Returns the competitors of the occupied ranks in order
func (r *BaseRanking) Competitors() []*Competitor {
	competitors := make([]*Competitor, 0, len(r.ranks))
	for _, s := range r.ranks {
		if s.Competitor != nil {
			competitors = append(competitors, s.Competitor)
		}
	}
	return competitors
}

func NewBaseRanking() BaseRanking {
	return BaseRanking{id: NextId()}
}

// Creates a BaseRanking with the given slots as the ranks
func NewSlotRanking(slots []*Slot) *BaseRanking {
	ranking := NewBaseRanking()
	ranking.ranks = slots
	return &ranking
}

// The simplest possible ranking that just provides
// a list of directly competitor filled slots
type ConstantRanking struct {
	BaseRanking
}

// Creates a *ConstantRanking from the given competitors.
// The ranking will provide one Slot per competitor while
// keeping the order.
func NewConstantRanking(competitors []*Competitor) *ConstantRanking {
	slots := make([]*Slot, 0, len(competitors))
	for _, c := range competitors {
		slots = append(slots, NewCompetitorSlot(c))
	}
	baseRanking := NewBaseRanking()
	baseRanking.ranks = slots
	return &ConstantRanking{BaseRanking: baseRanking}
}
