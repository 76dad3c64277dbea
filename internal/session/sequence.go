package session

// Sequence is the ordered list of image paths a session pages through.
// The current page is always the front of the list; Rotate moves it to the
// back so later passes revisit the same images.
type Sequence struct {
	paths    []string
	pageSize int
	turns    int
}

func NewSequence(paths []string, pageSize int) *Sequence {
	return &Sequence{
		paths:    append([]string(nil), paths...),
		pageSize: pageSize,
	}
}

// Page returns up to pageSize paths from the front
func (s *Sequence) Page() []string {
	n := min(s.pageSize, len(s.paths))
	return append([]string(nil), s.paths[:n]...)
}

// Rotate moves the current page to the end of the sequence
func (s *Sequence) Rotate() {
	n := min(s.pageSize, len(s.paths))
	if n == 0 {
		return
	}
	rotated := make([]string, 0, len(s.paths))
	rotated = append(rotated, s.paths[n:]...)
	rotated = append(rotated, s.paths[:n]...)
	s.paths = rotated
	s.turns++
}

// Paths returns the full sequence in current order
func (s *Sequence) Paths() []string {
	return append([]string(nil), s.paths...)
}

func (s *Sequence) Len() int {
	return len(s.paths)
}

// Turns counts how many times Rotate has moved a page
func (s *Sequence) Turns() int {
	return s.turns
}
