package api

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/todos/internal/model/todo"
	"github.com/zhouzirui/todos/internal/session"
	"github.com/zhouzirui/todos/pkg/utils"
)

// Handler exposes the session's lists as JSON.
type Handler struct {
	sessions session.Store
}

// New 创建 JSON 导出处理器
func New(sessions session.Store) *Handler {
	return &Handler{sessions: sessions}
}

// RegisterRoutes 注册只读 API 路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/lists", h.handleListLists)
	r.Get("/lists/{id}", h.handleGetList)
}

type listSummary struct {
	ID        int         `json:"id"`
	Name      string      `json:"name"`
	Complete  bool        `json:"complete"`
	Remaining int         `json:"remaining"`
	Total     int         `json:"total"`
	Todos     []todo.Todo `json:"todos"`
}

func summarize(l todo.List) listSummary {
	todos := make([]todo.Todo, 0, len(l.Todos))
	for _, t := range todo.SortTodos(l.Todos) {
		todos = append(todos, t.Item)
	}
	return listSummary{
		ID:        l.ID,
		Name:      l.Name,
		Complete:  l.IsComplete(),
		Remaining: l.RemainingCount(),
		Total:     l.TodosCount(),
		Todos:     todos,
	}
}

// handleListLists 按展示顺序返回所有列表
func (h *Handler) handleListLists(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Load(r)
	if err != nil {
		log.Printf("[api] load session: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "session unavailable")
		return
	}

	out := make([]listSummary, 0, len(sess.State.Lists))
	for _, l := range todo.SortLists(sess.State.Lists) {
		out = append(out, summarize(l.Item))
	}
	utils.RespondJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGetList(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Load(r)
	if err != nil {
		log.Printf("[api] load session: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "session unavailable")
		return
	}

	id, ok := utils.IntParam(r, "id")
	if !ok {
		utils.RespondError(w, http.StatusNotFound, todo.ErrListNotFound.Error())
		return
	}
	list, err := sess.State.FindList(id)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, summarize(*list))
}
