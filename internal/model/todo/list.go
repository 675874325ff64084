package todo

// Todo is a single named item within a list.
type Todo struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// List is a named, ordered collection of todos.
type List struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Todos      []Todo `json:"todos"`
	NextTodoID int    `json:"nextTodoId"`
}

// TodosCount returns the number of todos in the list.
func (l List) TodosCount() int {
	return len(l.Todos)
}

// RemainingCount returns the number of todos not yet completed.
func (l List) RemainingCount() int {
	remaining := 0
	for _, t := range l.Todos {
		if !t.Completed {
			remaining++
		}
	}
	return remaining
}

// IsComplete reports whether the list has at least one todo and all of them are done.
// An empty list is never complete.
func (l List) IsComplete() bool {
	return l.TodosCount() > 0 && l.RemainingCount() == 0
}

// FindTodo resolves a todo by its identifier.
func (l *List) FindTodo(id int) (*Todo, error) {
	for i := range l.Todos {
		if l.Todos[i].ID == id {
			return &l.Todos[i], nil
		}
	}
	return nil, ErrTodoNotFound
}

// AddTodo validates name and appends an incomplete todo.
func (l *List) AddTodo(name string) (Todo, error) {
	if err := ValidateTodoName(name); err != nil {
		return Todo{}, err
	}

	item := Todo{ID: l.NextTodoID, Name: name}
	l.NextTodoID++
	l.Todos = append(l.Todos, item)
	return item, nil
}

// DeleteTodo removes the todo with the given identifier.
func (l *List) DeleteTodo(id int) error {
	for i := range l.Todos {
		if l.Todos[i].ID == id {
			l.Todos = append(l.Todos[:i], l.Todos[i+1:]...)
			return nil
		}
	}
	return ErrTodoNotFound
}

// SetTodoCompleted updates the completion flag of a single todo.
func (l *List) SetTodoCompleted(id int, completed bool) error {
	item, err := l.FindTodo(id)
	if err != nil {
		return err
	}
	item.Completed = completed
	return nil
}

// CompleteAll marks every todo in the list as done.
func (l *List) CompleteAll() {
	for i := range l.Todos {
		l.Todos[i].Completed = true
	}
}
