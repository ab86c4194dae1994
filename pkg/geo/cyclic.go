package geo

// Wrap maps any integer index onto [0, n). It panics if n <= 0.
func Wrap(i, n int) int {
	if n <= 0 {
		panic("geo: Wrap on empty sequence")
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// LoopPairs pairs every element with its cyclic successor, so the last
// element is paired with the first.
func LoopPairs[T any](items []T) [][2]T {
	if len(items) == 0 {
		return nil
	}
	pairs := make([][2]T, len(items))
	for i := range items {
		pairs[i] = [2]T{items[i], items[Wrap(i+1, len(items))]}
	}
	return pairs
}

// Head returns up to the first n items.
func Head[T any](items []T, n int) []T {
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}

// Tail returns up to the last n items.
func Tail[T any](items []T, n int) []T {
	if n > len(items) {
		n = len(items)
	}
	return items[len(items)-n:]
}
