package todo

import (
	"errors"
	"unicode/utf8"
)

const (
	minNameLength = 1
	maxNameLength = 100
)

var (
	ErrInvalidListLength = errors.New("list name must be between 1 and 100 characters")
	ErrInvalidTodoLength = errors.New("todo must be between 1 and 100 characters")
	ErrDuplicateName     = errors.New("list name must be unique")
	ErrListNotFound      = errors.New("list not found")
	ErrTodoNotFound      = errors.New("todo not found")
)

var messages = map[error]string{
	ErrInvalidListLength: "List name must be between 1 and 100 characters.",
	ErrInvalidTodoLength: "Todo must be between 1 and 100 characters.",
	ErrDuplicateName:     "List name must be unique.",
	ErrListNotFound:      "The specified list was not found.",
	ErrTodoNotFound:      "The specified todo was not found.",
}

// Message returns the text shown to the user for err.
func Message(err error) string {
	for target, msg := range messages {
		if errors.Is(err, target) {
			return msg
		}
	}
	return "Something went wrong."
}

// ValidateListName checks a new list name against the length bounds and every existing list.
// The length check takes precedence over uniqueness.
func ValidateListName(name string, lists []List) error {
	return validateListName(name, lists, -1)
}

// ValidateListRename is ValidateListName for an existing list; the list identified by id
// may keep its own name.
func ValidateListRename(name string, lists []List, id int) error {
	return validateListName(name, lists, id)
}

func validateListName(name string, lists []List, skipID int) error {
	if !validLength(name) {
		return ErrInvalidListLength
	}
	for _, l := range lists {
		if l.ID != skipID && l.Name == name {
			return ErrDuplicateName
		}
	}
	return nil
}

// ValidateTodoName checks the length bounds of a todo name. Todo names need not be unique.
func ValidateTodoName(name string) error {
	if !validLength(name) {
		return ErrInvalidTodoLength
	}
	return nil
}

func validLength(name string) bool {
	n := utf8.RuneCountInString(name)
	return n >= minNameLength && n <= maxNameLength
}
