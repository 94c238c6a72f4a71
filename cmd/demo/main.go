// Command demo is a tiny HTTP harness around an in-memory vangoroute
// Router — in the teacher's habit of shipping a runnable example alongside
// a library. It is NOT a location adapter (that stays an abstract
// collaborator, spec.md §6); it just lets a human drive NavigateByUrl over
// HTTP and watch the resulting events and outlet activations.
package main

import (
	"encoding/json"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"

	vangoroute "github.com/vango-dev/vangoroute"
	"github.com/vango-dev/vangoroute/collab"
	"github.com/vango-dev/vangoroute/guards"
)

func main() {
	addr := os.Getenv("DEMO_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	loc := &memLocation{}
	outlet := newMemOutlet()
	events := newEventLog(200)
	jwtGuard := guards.NewJWTGuard([]byte("demo-secret"), "token", jwt.SigningMethodHS256)

	router, err := vangoroute.New(vangoroute.Config{
		Routes: []*vangoroute.Route{
			{Path: "", Component: "home"},
			{Path: "team/:id", Component: "team-page"},
			{Path: "admin", Component: "admin-page", CanActivate: []collab.CanActivateFunc{jwtGuard.CanActivate()}},
		},
		Location:      loc,
		Outlet:        outlet,
		EnableTracing: true,
		Logger:        slog.New(slog.NewTextHandler(os.Stdout, nil)),
		Sink: func(ev vangoroute.Event) {
			events.record(loggedEvent{
				Type:          string(ev.Type),
				ID:            ev.ID,
				CorrelationID: ev.CorrelationID,
				Url:           ev.Url,
				Reason:        ev.Reason,
				Err:           errString(ev.Err),
			})
		},
	})
	if err != nil {
		log.Fatalf("route config: %v", err)
	}
	defer router.Close()

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Get("/", indexHandler)
	r.Post("/api/navigate", navigateHandler(router, loc))
	r.Get("/api/state", stateHandler(router, loc, outlet))
	r.Get("/api/events", eventsHandler(events))

	log.Printf("demo listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
