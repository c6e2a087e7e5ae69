package cube

// Store holds the current grid of a cube and replaces it whole on every
// committed turn.
type Store struct {
	grid *Grid
}

// NewStore creates a store holding a solved grid of the given size.
func NewStore(size Size) (*Store, error) {
	g, err := NewGrid(size)
	if err != nil {
		return nil, err
	}
	return &Store{grid: g}, nil
}

// Grid returns the current grid. Grids are immutable, so the result
// stays valid after later commits.
func (s *Store) Grid() *Grid {
	return s.grid
}

// Commit applies m and swaps in the resulting grid. On error the store
// is unchanged.
func (s *Store) Commit(m Move) error {
	next, err := s.grid.Turn(m)
	if err != nil {
		return err
	}
	s.grid = next
	return nil
}

// Reset restores a solved grid of the same size.
func (s *Store) Reset() {
	s.grid = solvedGrid(s.grid.Size())
}
