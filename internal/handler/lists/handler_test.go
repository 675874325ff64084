package lists

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/todos/internal/session"
	"github.com/zhouzirui/todos/internal/view"
)

// client replays session cookies between requests the way a browser would.
type client struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
}

func sessionOptions() session.Options {
	return session.Options{Name: "todos_test", Secret: []byte("0123456789abcdef0123456789abcdef"), MaxAge: 3600}
}

func setupClient(t *testing.T, store session.Store) *client {
	t.Helper()

	views, err := view.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer err: %v", err)
	}

	r := chi.NewRouter()
	New(store, views).RegisterRoutes(r)
	return &client{t: t, handler: r, cookies: make(map[string]*http.Cookie)}
}

func newClient(t *testing.T) *client {
	return setupClient(t, session.NewCookieStore(sessionOptions()))
}

func (c *client) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	c.t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	resp := httptest.NewRecorder()
	c.handler.ServeHTTP(resp, req)

	for _, cookie := range resp.Result().Cookies() {
		c.cookies[cookie.Name] = cookie
	}
	return resp
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(http.MethodGet, path, nil)
}

func (c *client) post(path string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	return c.do(http.MethodPost, path, form)
}

func expectRedirect(t *testing.T, resp *httptest.ResponseRecorder, location string) {
	t.Helper()
	if resp.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", resp.Code, resp.Body.String())
	}
	if got := resp.Header().Get("Location"); got != location {
		t.Fatalf("expected redirect to %s, got %s", location, got)
	}
}

func expectBody(t *testing.T, resp *httptest.ResponseRecorder, want ...string) {
	t.Helper()
	body := resp.Body.String()
	for _, w := range want {
		if !strings.Contains(body, w) {
			t.Fatalf("expected body to contain %q:\n%s", w, body)
		}
	}
}

func expectNoBody(t *testing.T, resp *httptest.ResponseRecorder, unwanted string) {
	t.Helper()
	if strings.Contains(resp.Body.String(), unwanted) {
		t.Fatalf("expected body not to contain %q:\n%s", unwanted, resp.Body.String())
	}
}

func TestEndToEndFlow(t *testing.T) {
	stores := map[string]session.Store{
		"cookie": session.NewCookieStore(sessionOptions()),
		"memory": session.NewMemoryStore(sessionOptions()),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			c := setupClient(t, store)

			expectRedirect(t, c.post("/lists", url.Values{"list_name": {"Groceries"}}), "/lists")

			resp := c.get("/lists")
			if resp.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", resp.Code)
			}
			expectBody(t, resp, "<h2>Groceries</h2>", "<p>0/0</p>", "The list has been created.")

			expectRedirect(t, c.post("/lists/0/todos", url.Values{"todo": {"Milk"}}), "/lists/0")
			resp = c.get("/lists/0")
			expectBody(t, resp, "<h3>Milk</h3>", `<section id="todos" class="">`, "The todo was added.")

			expectRedirect(t, c.post("/lists/0/todos/0", url.Values{"completed": {"true"}}), "/lists/0")
			resp = c.get("/lists/0")
			expectBody(t, resp, `<section id="todos" class="complete">`, "The todo has been updated.")

			expectRedirect(t, c.get("/lists/5"), "/lists")
			expectBody(t, c.get("/lists"), "The specified list was not found.", `<li class="complete">`)
		})
	}
}

func TestRootRedirectsToLists(t *testing.T) {
	c := newClient(t)
	expectRedirect(t, c.get("/"), "/lists")
}

func TestFlashIsShownOnce(t *testing.T) {
	c := newClient(t)
	c.post("/lists", url.Values{"list_name": {"Work"}})

	expectBody(t, c.get("/lists"), "The list has been created.")
	expectNoBody(t, c.get("/lists"), "The list has been created.")
}

func TestNewListForm(t *testing.T) {
	c := newClient(t)
	resp := c.get("/lists/new")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	expectBody(t, resp, `<form action="/lists" method="post">`)
}

func TestCreateListValidation(t *testing.T) {
	c := newClient(t)

	resp := c.post("/lists", url.Values{"list_name": {"   "}})
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
	expectBody(t, resp, "List name must be between 1 and 100 characters.")

	resp = c.post("/lists", nil)
	expectBody(t, resp, "List name must be between 1 and 100 characters.")

	resp = c.post("/lists", url.Values{"list_name": {strings.Repeat("x", 101)}})
	expectBody(t, resp, "List name must be between 1 and 100 characters.")

	c.post("/lists", url.Values{"list_name": {"Work"}})
	resp = c.post("/lists", url.Values{"list_name": {"Work"}})
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
	expectBody(t, resp, "List name must be unique.", `value="Work"`)

	resp = c.get("/lists")
	if n := strings.Count(resp.Body.String(), "<h2>Work</h2>"); n != 1 {
		t.Fatalf("expected exactly one list, found %d", n)
	}
	expectNoBody(t, resp, "List name must be unique.")
}

func TestNonNumericIDIsNotFound(t *testing.T) {
	c := newClient(t)
	c.post("/lists", url.Values{"list_name": {"Work"}})

	expectRedirect(t, c.get("/lists/abc"), "/lists")
	expectBody(t, c.get("/lists"), "The specified list was not found.")
}

func TestEditAndRenameList(t *testing.T) {
	c := newClient(t)
	c.post("/lists", url.Values{"list_name": {"Work"}})
	c.post("/lists", url.Values{"list_name": {"Home"}})

	resp := c.get("/lists/1/edit")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	expectBody(t, resp, `<form action="/lists/1" method="post">`, `value="Home"`)

	expectRedirect(t, c.post("/lists/1", url.Values{"list_name": {"House"}}), "/lists/1")
	expectBody(t, c.get("/lists/1"), "<h2>House</h2>", "The list has been updated.")

	resp = c.post("/lists/1", url.Values{"list_name": {"Work"}})
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
	expectBody(t, resp, "List name must be unique.", `<form action="/lists/1" method="post">`)

	expectRedirect(t, c.post("/lists/1", url.Values{"list_name": {"House"}}), "/lists/1")

	expectRedirect(t, c.get("/lists/9/edit"), "/lists")
	expectRedirect(t, c.post("/lists/9", url.Values{"list_name": {"Other"}}), "/lists")
}

func TestDeleteListKeepsOtherIdentifiers(t *testing.T) {
	c := newClient(t)
	c.post("/lists", url.Values{"list_name": {"First"}})
	c.post("/lists", url.Values{"list_name": {"Second"}})

	expectRedirect(t, c.post("/lists/0/delete", nil), "/lists")
	resp := c.get("/lists")
	expectBody(t, resp, "The list has been deleted.", "<h2>Second</h2>")
	expectNoBody(t, resp, "<h2>First</h2>")

	expectBody(t, c.get("/lists/1"), "<h2>Second</h2>")
	expectRedirect(t, c.get("/lists/0"), "/lists")

	expectRedirect(t, c.post("/lists/0/delete", nil), "/lists")
	expectBody(t, c.get("/lists"), "The specified list was not found.", "<h2>Second</h2>")
}

func TestAddTodoValidation(t *testing.T) {
	c := newClient(t)
	c.post("/lists", url.Values{"list_name": {"Work"}})

	resp := c.post("/lists/0/todos", url.Values{"todo": {""}})
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
	expectBody(t, resp, "Todo must be between 1 and 100 characters.", "<h2>Work</h2>")

	expectRedirect(t, c.post("/lists/3/todos", url.Values{"todo": {"Milk"}}), "/lists")
}

func TestDeleteTodo(t *testing.T) {
	c := newClient(t)
	c.post("/lists", url.Values{"list_name": {"Work"}})
	c.post("/lists/0/todos", url.Values{"todo": {"first"}})
	c.post("/lists/0/todos", url.Values{"todo": {"second"}})

	expectRedirect(t, c.post("/lists/0/todos/0/delete", nil), "/lists/0")
	resp := c.get("/lists/0")
	expectBody(t, resp, "The todo has been deleted.", "<h3>second</h3>")
	expectNoBody(t, resp, "<h3>first</h3>")

	expectRedirect(t, c.post("/lists/0/todos/0/delete", nil), "/lists/0")
	resp = c.get("/lists/0")
	expectBody(t, resp, "The specified todo was not found.", "<h3>second</h3>")
}

func TestToggleTodoParsesOnlyTrue(t *testing.T) {
	c := newClient(t)
	c.post("/lists", url.Values{"list_name": {"Work"}})
	c.post("/lists/0/todos", url.Values{"todo": {"task"}})

	c.post("/lists/0/todos/0", url.Values{"completed": {"true"}})
	expectBody(t, c.get("/lists/0"), `<section id="todos" class="complete">`)

	c.post("/lists/0/todos/0", url.Values{"completed": {"yes"}})
	expectBody(t, c.get("/lists/0"), `<section id="todos" class="">`)

	expectRedirect(t, c.post("/lists/0/todos/8", url.Values{"completed": {"true"}}), "/lists/0")
	expectBody(t, c.get("/lists/0"), "The specified todo was not found.")
}

func TestCompleteAll(t *testing.T) {
	c := newClient(t)
	c.post("/lists", url.Values{"list_name": {"Work"}})
	c.post("/lists/0/todos", url.Values{"todo": {"a"}})
	c.post("/lists/0/todos", url.Values{"todo": {"b"}})

	expectRedirect(t, c.post("/lists/0/complete_all", nil), "/lists/0")
	expectBody(t, c.get("/lists/0"), "All todos have been completed.", `<section id="todos" class="complete">`)
	expectBody(t, c.get("/lists"), "<p>0/2</p>")

	expectRedirect(t, c.post("/lists/4/complete_all", nil), "/lists")
}

func TestListIndexShowsIncompleteFirst(t *testing.T) {
	c := newClient(t)
	c.post("/lists", url.Values{"list_name": {"Done"}})
	c.post("/lists", url.Values{"list_name": {"Open"}})
	c.post("/lists/0/todos", url.Values{"todo": {"a"}})
	c.post("/lists/0/complete_all", nil)

	body := c.get("/lists").Body.String()
	open := strings.Index(body, "<h2>Open</h2>")
	done := strings.Index(body, "<h2>Done</h2>")
	if open < 0 || done < 0 || open > done {
		t.Fatalf("expected Open before Done:\n%s", body)
	}
	if !strings.Contains(body, `href="/lists/0"`) {
		t.Fatalf("expected link to keep original id:\n%s", body)
	}
}

func TestFullCookieSessionKeepsPreviousState(t *testing.T) {
	c := newClient(t)
	c.post("/lists", url.Values{"list_name": {"Big"}})

	for i := 0; i < 100; i++ {
		name := fmt.Sprintf("%03d%s", i, strings.Repeat("x", 97))
		expectRedirect(t, c.post("/lists/0/todos", url.Values{"todo": {name}}), "/lists/0")

		resp := c.get("/lists/0")
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.Code)
		}
		if !strings.Contains(resp.Body.String(), "Session is full.") {
			expectBody(t, resp, "<h3>"+name+"</h3>")
			continue
		}

		expectNoBody(t, resp, "<h3>"+name+"</h3>")
		if i == 0 {
			t.Fatal("first todo should fit into the cookie")
		}
		expectBody(t, resp, fmt.Sprintf("<h3>%03d", i-1))

		// Deleting makes room again.
		expectRedirect(t, c.post("/lists/0/todos/0/delete", nil), "/lists/0")
		expectBody(t, c.get("/lists/0"), "The todo has been deleted.")
		return
	}
	t.Fatal("cookie session never filled up")
}
