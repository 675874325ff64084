package todo

// State is everything a single browser session holds.
type State struct {
	Lists      []List `json:"lists"`
	NextListID int    `json:"nextListId"`

	// Flash slots, shown on the next rendered page and then cleared.
	Error   string `json:"error,omitempty"`
	Success string `json:"success,omitempty"`
}

// NewState returns an empty session state.
func NewState() *State {
	return &State{Lists: make([]List, 0)}
}

// FindList resolves a list by its identifier.
func (s *State) FindList(id int) (*List, error) {
	for i := range s.Lists {
		if s.Lists[i].ID == id {
			return &s.Lists[i], nil
		}
	}
	return nil, ErrListNotFound
}

// AddList validates name and appends a new, empty list.
func (s *State) AddList(name string) (List, error) {
	if err := ValidateListName(name, s.Lists); err != nil {
		return List{}, err
	}

	list := List{ID: s.NextListID, Name: name, Todos: make([]Todo, 0)}
	s.NextListID++
	s.Lists = append(s.Lists, list)
	return list, nil
}

// RenameList changes the name of an existing list.
func (s *State) RenameList(id int, name string) error {
	list, err := s.FindList(id)
	if err != nil {
		return err
	}
	if err := ValidateListRename(name, s.Lists, id); err != nil {
		return err
	}
	list.Name = name
	return nil
}

// DeleteList removes the list with the given identifier.
func (s *State) DeleteList(id int) error {
	for i := range s.Lists {
		if s.Lists[i].ID == id {
			s.Lists = append(s.Lists[:i], s.Lists[i+1:]...)
			return nil
		}
	}
	return ErrListNotFound
}

// TakeFlash returns the pending flash messages and clears them.
func (s *State) TakeFlash() (errMsg, success string) {
	errMsg, success = s.Error, s.Success
	s.Error, s.Success = "", ""
	return errMsg, success
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	out := *s
	out.Lists = make([]List, len(s.Lists))
	for i, l := range s.Lists {
		l.Todos = append(make([]Todo, 0, len(l.Todos)), l.Todos...)
		out.Lists[i] = l
	}
	return &out
}
