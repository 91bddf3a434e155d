package vm

// StackDepth is the maximum number of nested subroutine calls.
const StackDepth = 16

// stack holds subroutine return addresses. sp is the current depth, an empty
// stack has sp 0.
type stack struct {
	entries [StackDepth]uint16
	sp      uint8
}

func (s *stack) push(address uint16) error {
	if int(s.sp) >= StackDepth {
		return ErrStackOverflow
	}
	s.entries[s.sp] = address
	s.sp++
	return nil
}

func (s *stack) pop() (uint16, error) {
	if s.sp == 0 {
		return 0, ErrStackUnderflow
	}
	s.sp--
	return s.entries[s.sp], nil
}

// snapshot returns the active return addresses, oldest first.
func (s *stack) snapshot() []uint16 {
	entries := make([]uint16, s.sp)
	copy(entries, s.entries[:s.sp])
	return entries
}
