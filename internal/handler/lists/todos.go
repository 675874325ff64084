package lists

import (
	"net/http"

	"github.com/zhouzirui/todos/internal/model/todo"
	"github.com/zhouzirui/todos/internal/session"
	"github.com/zhouzirui/todos/internal/view"
	"github.com/zhouzirui/todos/pkg/utils"
)

// handleCreateTodo 向列表追加待办
func (h *Handler) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}
	list, ok := h.loadList(w, r, sess)
	if !ok {
		return
	}

	name := utils.FormString(r, "todo")
	if _, err := list.AddTodo(name); err != nil {
		sess.State.Error = todo.Message(err)
		page := listPage(list)
		page.TodoName = name
		h.render(w, r, sess, http.StatusUnprocessableEntity, view.List, page)
		return
	}

	sess.State.Success = "The todo was added."
	h.redirect(w, r, sess, listPath(list.ID))
}

func (h *Handler) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}
	list, ok := h.loadList(w, r, sess)
	if !ok {
		return
	}
	todoID, ok := h.todoParam(w, r, sess, list)
	if !ok {
		return
	}

	if err := list.DeleteTodo(todoID); err != nil {
		sess.State.Error = todo.Message(err)
		h.redirect(w, r, sess, listPath(list.ID))
		return
	}

	sess.State.Success = "The todo has been deleted."
	h.redirect(w, r, sess, listPath(list.ID))
}

// handleUpdateTodo sets the completion flag; only the literal "true" marks a todo done.
func (h *Handler) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}
	list, ok := h.loadList(w, r, sess)
	if !ok {
		return
	}
	todoID, ok := h.todoParam(w, r, sess, list)
	if !ok {
		return
	}

	completed := utils.FormString(r, "completed") == "true"
	if err := list.SetTodoCompleted(todoID, completed); err != nil {
		sess.State.Error = todo.Message(err)
		h.redirect(w, r, sess, listPath(list.ID))
		return
	}

	sess.State.Success = "The todo has been updated."
	h.redirect(w, r, sess, listPath(list.ID))
}

// todoParam resolves {todoID} against list, redirecting to the list page when absent.
func (h *Handler) todoParam(w http.ResponseWriter, r *http.Request, sess *session.Session, list *todo.List) (int, bool) {
	id, ok := utils.IntParam(r, "todoID")
	if ok {
		if _, err := list.FindTodo(id); err == nil {
			return id, true
		}
	}

	sess.State.Error = todo.Message(todo.ErrTodoNotFound)
	h.redirect(w, r, sess, listPath(list.ID))
	return 0, false
}
