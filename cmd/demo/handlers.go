package main

import (
	"encoding/json"
	"net/http"

	vangoroute "github.com/vango-dev/vangoroute"
)

const indexPage = `<!doctype html>
<html>
<head><title>vangoroute demo</title></head>
<body>
<h1>vangoroute demo</h1>
<p>Drive the in-memory router over HTTP:</p>
<ul>
  <li><code>POST /api/navigate {"url": "/team/7"}</code></li>
  <li><code>GET /api/state</code> — current URL and mounted outlets</li>
  <li><code>GET /api/events</code> — navigation lifecycle log</li>
</ul>
<p>Example protected route: <code>/admin?token=...</code>, gated by guards.JWTGuard.</p>
</body>
</html>`

func indexHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexPage))
}

type navigateRequest struct {
	Url string `json:"url"`
}

type navigateResponse struct {
	Committed  bool   `json:"committed"`
	CurrentUrl string `json:"currentUrl"`
	Error      string `json:"error,omitempty"`
}

func navigateHandler(router *vangoroute.Router, loc *memLocation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req navigateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, navigateResponse{Error: err.Error()})
			return
		}

		committed, err := router.NavigateByUrl(r.Context(), req.Url)
		resp := navigateResponse{Committed: committed, CurrentUrl: loc.current()}
		if err != nil {
			resp.Error = err.Error()
			writeJSON(w, http.StatusUnprocessableEntity, resp)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type stateResponse struct {
	CurrentUrl string       `json:"currentUrl"`
	Outlets    []activation `json:"outlets"`
}

func stateHandler(router *vangoroute.Router, loc *memLocation, outlet *memOutlet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, stateResponse{
			CurrentUrl: loc.current(),
			Outlets:    outlet.snapshot(),
		})
	}
}

func eventsHandler(log *eventLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, log.snapshot())
	}
}
