package todo

// Indexed pairs an item with its position in the unordered collection.
type Indexed[T any] struct {
	Index int
	Item  T
}

// Partition returns all incomplete items followed by all complete ones. Relative order within
// each group is preserved and every item keeps its original index.
func Partition[T any](items []T, isComplete func(T) bool) []Indexed[T] {
	out := make([]Indexed[T], 0, len(items))
	var done []Indexed[T]
	for i, item := range items {
		if isComplete(item) {
			done = append(done, Indexed[T]{Index: i, Item: item})
			continue
		}
		out = append(out, Indexed[T]{Index: i, Item: item})
	}
	return append(out, done...)
}

// SortLists orders lists for display, complete lists last.
func SortLists(lists []List) []Indexed[List] {
	return Partition(lists, List.IsComplete)
}

// SortTodos orders todos for display, completed todos last.
func SortTodos(todos []Todo) []Indexed[Todo] {
	return Partition(todos, func(t Todo) bool { return t.Completed })
}
