package lists

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/todos/internal/model/todo"
	"github.com/zhouzirui/todos/internal/session"
	"github.com/zhouzirui/todos/internal/view"
	"github.com/zhouzirui/todos/pkg/utils"
)

const (
	indexPath = "/lists"

	// Must stay shorter than every success flash: the rolled back state plus this message has to fit.
	sessionFullMessage = "Session is full."
)

// Handler serves the HTML pages for lists and their todos.
type Handler struct {
	sessions session.Store
	views    *view.Renderer
}

// New 创建列表处理器
func New(sessions session.Store, views *view.Renderer) *Handler {
	return &Handler{
		sessions: sessions,
		views:    views,
	}
}

// RegisterRoutes 注册列表与待办相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		utils.SeeOther(w, r, indexPath)
	})

	r.Route(indexPath, func(r chi.Router) {
		r.Get("/", h.handleIndex)
		r.Post("/", h.handleCreateList)
		r.Get("/new", h.handleNewList)
		r.Get("/{id}", h.handleShowList)
		r.Post("/{id}", h.handleUpdateList)
		r.Get("/{id}/edit", h.handleEditList)
		r.Post("/{id}/delete", h.handleDeleteList)
		r.Post("/{id}/complete_all", h.handleCompleteAll)
		r.Post("/{id}/todos", h.handleCreateTodo)
		r.Post("/{id}/todos/{todoID}", h.handleUpdateTodo)
		r.Post("/{id}/todos/{todoID}/delete", h.handleDeleteTodo)
	})
}

// handleIndex 展示所有列表，未完成的排在前面
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}

	h.render(w, r, sess, http.StatusOK, view.Lists, view.Page{
		Title: "Lists",
		Lists: todo.SortLists(sess.State.Lists),
	})
}

func (h *Handler) handleNewList(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}

	h.render(w, r, sess, http.StatusOK, view.NewList, view.Page{Title: "New List"})
}

// handleCreateList 创建新列表
func (h *Handler) handleCreateList(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}

	name := utils.FormString(r, "list_name")
	if _, err := sess.State.AddList(name); err != nil {
		sess.State.Error = todo.Message(err)
		h.render(w, r, sess, http.StatusUnprocessableEntity, view.NewList, view.Page{
			Title:    "New List",
			ListName: name,
		})
		return
	}

	sess.State.Success = "The list has been created."
	h.redirect(w, r, sess, indexPath)
}

func (h *Handler) handleShowList(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}
	list, ok := h.loadList(w, r, sess)
	if !ok {
		return
	}

	h.render(w, r, sess, http.StatusOK, view.List, listPage(list))
}

func (h *Handler) handleEditList(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}
	list, ok := h.loadList(w, r, sess)
	if !ok {
		return
	}

	h.render(w, r, sess, http.StatusOK, view.EditList, view.Page{
		Title:    "Edit List",
		List:     list,
		ListName: list.Name,
	})
}

// handleUpdateList 重命名列表；目标列表取自本次请求的 id
func (h *Handler) handleUpdateList(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}
	list, ok := h.loadList(w, r, sess)
	if !ok {
		return
	}

	name := utils.FormString(r, "list_name")
	if err := sess.State.RenameList(list.ID, name); err != nil {
		sess.State.Error = todo.Message(err)
		h.render(w, r, sess, http.StatusUnprocessableEntity, view.EditList, view.Page{
			Title:    "Edit List",
			List:     list,
			ListName: name,
		})
		return
	}

	sess.State.Success = "The list has been updated."
	h.redirect(w, r, sess, listPath(list.ID))
}

func (h *Handler) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}

	err := todo.ErrListNotFound
	if id, ok := utils.IntParam(r, "id"); ok {
		err = sess.State.DeleteList(id)
	}
	if err != nil {
		sess.State.Error = todo.Message(err)
		h.redirect(w, r, sess, indexPath)
		return
	}

	sess.State.Success = "The list has been deleted."
	h.redirect(w, r, sess, indexPath)
}

func (h *Handler) handleCompleteAll(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}
	list, ok := h.loadList(w, r, sess)
	if !ok {
		return
	}

	list.CompleteAll()
	sess.State.Success = "All todos have been completed."
	h.redirect(w, r, sess, listPath(list.ID))
}

// load 读取当前请求的会话
func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := h.sessions.Load(r)
	if err != nil {
		h.fail(w, fmt.Errorf("load session: %w", err))
		return nil, false
	}
	return sess, true
}

// loadList resolves the {id} path parameter. A missing list sets the error flash and
// redirects to the index; the caller must stop when ok is false.
func (h *Handler) loadList(w http.ResponseWriter, r *http.Request, sess *session.Session) (*todo.List, bool) {
	id, ok := utils.IntParam(r, "id")
	if ok {
		if list, err := sess.State.FindList(id); err == nil {
			return list, true
		}
	}

	sess.State.Error = todo.Message(todo.ErrListNotFound)
	h.redirect(w, r, sess, indexPath)
	return nil, false
}

// render hands the pending flash messages to the page, clears them and saves the session
// before writing the body.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, sess *session.Session, status int, name string, page view.Page) {
	page.Error, page.Success = sess.State.TakeFlash()

	if err := h.sessions.Save(w, r, sess); err != nil {
		h.fail(w, err)
		return
	}
	if err := h.views.Render(w, status, name, page); err != nil {
		log.Printf("[view] render %s failed: %v", name, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, sess *session.Session, path string) {
	err := h.sessions.Save(w, r, sess)
	if errors.Is(err, session.ErrSessionFull) {
		h.rollback(w, r, err)
	} else if err != nil {
		h.fail(w, err)
		return
	}
	utils.SeeOther(w, r, path)
}

// rollback discards this request's changes by reloading the state the request arrived with and
// records the failure as an error flash. If even that does not fit, the client keeps its
// previous cookie untouched.
func (h *Handler) rollback(w http.ResponseWriter, r *http.Request, cause error) {
	log.Printf("[session] change discarded: %v", cause)

	prev, err := h.sessions.Load(r)
	if err != nil {
		log.Printf("[session] reload after full session: %v", err)
		return
	}
	prev.State.Error = sessionFullMessage
	prev.State.Success = ""
	if err := h.sessions.Save(w, r, prev); err != nil {
		log.Printf("[session] flash dropped: %v", err)
	}
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	log.Printf("[session] %v", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func listPage(list *todo.List) view.Page {
	return view.Page{
		Title: list.Name,
		List:  list,
		Todos: todo.SortTodos(list.Todos),
	}
}

func listPath(id int) string {
	return fmt.Sprintf("%s/%d", indexPath, id)
}
