package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/edvin/catalog/internal/api/response"
)

const statusMessage = "Catalog service is running successfully"

// StatusResponse is the body of GET /status.
type StatusResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
}

type Greeting struct {
	welcome string
	now     func() time.Time
}

func NewGreeting(welcome string) *Greeting {
	return &Greeting{welcome: welcome, now: time.Now}
}

// Home returns the welcome text.
//
//	@Summary      Welcome
//	@Tags         Greeting
//	@Produce      plain
//	@Success      200  {string}  string
//	@Router       / [get]
func (h *Greeting) Home(w http.ResponseWriter, _ *http.Request) {
	response.WriteText(w, http.StatusOK, h.welcome)
}

// Hello greets the world.
//
//	@Summary      Hello world
//	@Tags         Greeting
//	@Produce      plain
//	@Success      200  {string}  string
//	@Router       /hello [get]
func (h *Greeting) Hello(w http.ResponseWriter, _ *http.Request) {
	response.WriteText(w, http.StatusOK, "Hello, World!")
}

// HelloName greets the caller by the name in the path, unescaped and unvalidated.
//
//	@Summary      Hello by name
//	@Tags         Greeting
//	@Produce      plain
//	@Param        name  path      string  true  "Name to greet"
//	@Success      200   {string}  string
//	@Router       /hello/{name} [get]
func (h *Greeting) HelloName(w http.ResponseWriter, r *http.Request) {
	response.WriteText(w, http.StatusOK, "Hello, "+chi.URLParam(r, "name")+"!")
}

// Status reports liveness with the time the response was generated.
//
//	@Summary      Service status
//	@Tags         Greeting
//	@Produce      json
//	@Success      200  {object}  StatusResponse
//	@Router       /status [get]
func (h *Greeting) Status(w http.ResponseWriter, _ *http.Request) {
	response.WriteJSON(w, http.StatusOK, StatusResponse{
		Status:    "UP",
		Timestamp: h.now().Format(time.RFC3339Nano),
		Message:   statusMessage,
	})
}
