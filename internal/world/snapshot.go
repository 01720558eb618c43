package world

// OrganismView is the read-only projection of one organism.
type OrganismView struct {
	ID        int        `json:"id"`
	Size      int        `json:"size"`
	Age       int        `json:"age"`
	Centroid  [3]float64 `json:"centroid"`
	Qualified bool       `json:"qualified"`
}

// PairView is the read-only projection of one pair.
type PairView struct {
	A     int     `json:"a"`
	B     int     `json:"b"`
	Hue   float64 `json:"hue"`
	Angle float64 `json:"angle"`
}

// Snapshot is a self-contained copy of the published state, safe to hand to
// consumers on other goroutines.
type Snapshot struct {
	Generation string         `json:"generation"`
	Tick       int            `json:"tick"`
	Nodes      int            `json:"nodes"`
	Alive      []int          `json:"alive"`
	Organisms  []OrganismView `json:"organisms"`
	Pairs      []PairView     `json:"pairs"`
}

// Snapshot copies the current engine, tracker and resolver outputs.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Generation: w.Generation(),
		Tick:       w.engine.TickCount(),
		Nodes:      w.adj.NodeCount(),
		Alive:      make([]int, 0, w.engine.AliveCount()),
		Organisms:  make([]OrganismView, 0, len(w.tracker.Organisms())),
		Pairs:      make([]PairView, 0, len(w.resolver.Pairs())),
	}
	for id, c := range w.engine.Cells() {
		if c.Alive {
			s.Alive = append(s.Alive, id)
		}
	}
	for _, o := range w.tracker.Organisms() {
		s.Organisms = append(s.Organisms, OrganismView{
			ID:        o.ID,
			Size:      o.Size,
			Age:       o.Age,
			Centroid:  [3]float64{o.Centroid.X, o.Centroid.Y, o.Centroid.Z},
			Qualified: o.Qualified,
		})
	}
	for _, p := range w.resolver.Pairs() {
		s.Pairs = append(s.Pairs, PairView{A: p.A, B: p.B, Hue: p.Hue, Angle: p.Angle})
	}
	return s
}
