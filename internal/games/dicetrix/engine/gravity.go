package engine

// ApplyGravity compacts every column toward the ground, preserving the
// relative vertical order of its dice and leaving vacated cells empty at the
// top. Returns the number of dice that moved.
func ApplyGravity(b *Board) int {
	moved := 0
	for x := 0; x < b.W; x++ {
		write := b.Ground()
		for read := b.Ground(); read <= b.MaxRow(); read++ {
			ri := b.index(P(x, read))
			if !b.Cells[ri].Filled {
				continue
			}
			if read != write {
				b.Cells[b.index(P(x, write))] = b.Cells[ri]
				b.Cells[ri] = Cell{}
				moved++
			}
			write++
		}
	}
	return moved
}
