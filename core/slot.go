package core

// A Slot is either a spot in a Ranking or one of two places
// in a Match.
//
// A Slot can represent one of 3 things:
//   - An actual competitor
//   - A not yet determined qualification called a Placement
//     (e.g. the slots of the bracket are the top places
//     of the group standings)
//   - A bye that makes the opponent sit out a round
//
// Placement slots change what they represent when the ranking
// they point into is updated.
type Slot struct {
	Competitor *Competitor
	Placement  *Placement
	Bye        *Bye
	Id         int
}

func (s *Slot) IsBye() bool {
	return s.Bye != nil
}

// Updates the Competitor of a placement slot.
// This method is called when the ranking that this
// slot is dependant on updates.
func (s *Slot) Update() {
	if s.Placement == nil {
		return
	}
	slot := s.Placement.Slot()
	if slot == nil {
		s.Competitor = nil
		return
	}
	s.Competitor = slot.Competitor
}

// Returns the competitor's name, the placement label when the
// placement is not occupied or "bye".
func (s *Slot) Label() string {
	switch {
	case s.Competitor != nil:
		return s.Competitor.Name
	case s.Placement != nil:
		return s.Placement.Label
	case s.Bye != nil:
		return "bye"
	default:
		return ""
	}
}

func NewCompetitorSlot(competitor *Competitor) *Slot {
	return &Slot{Competitor: competitor, Id: NextId()}
}

func NewPlacementSlot(placement *Placement) *Slot {
	slot := &Slot{Placement: placement, Id: NextId()}
	placement.Ranking.addDependantSlots(slot)
	slot.Update()
	return slot
}

func NewByeSlot() *Slot {
	return &Slot{Bye: &Bye{}, Id: NextId()}
}

// A Bye is the synthetic opponent of an odd-sized group.
// Meeting it means sitting out the round.
type Bye struct{}

// A Placement is an index into a Ranking.
// The Label stands in for the slot while the place is unoccupied.
type Placement struct {
	Ranking Ranking
	Place   int
	Label   string
}

// Returns the current Slot at the Placement
func (p *Placement) Slot() *Slot {
	return p.Ranking.At(p.Place)
}

func NewPlacement(ranking Ranking, place int, label string) *Placement {
	if ranking == nil {
		panic("Passed nil ranking to a placement")
	}
	return &Placement{Ranking: ranking, Place: place, Label: label}
}
