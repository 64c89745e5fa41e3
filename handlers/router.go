package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/driftboard/driftboard-backend/auth"
	"github.com/driftboard/driftboard-backend/middleware"
	"github.com/driftboard/driftboard-backend/repository"
)

// API bundles the injected services the handlers run against.
type API struct {
	Store   repository.Store
	Strokes repository.StrokeStore
	Hub     *Hub
}

func NewRouter(api *API, verifier auth.TokenVerifier) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.PrometheusMetricsMiddleware)

	// Public routes
	r.HandleFunc("/healthz", Healthz).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/api/username/check", api.CheckUsername).Methods("GET")
	r.HandleFunc("/ws/{clientID}", api.WsHandler)

	// Secured routes
	secured := r.PathPrefix("/api").Subrouter()
	secured.Use(middleware.Authenticate(verifier))
	secured.HandleFunc("/session", api.Session).Methods("POST")
	secured.HandleFunc("/me", api.Me).Methods("GET")
	secured.HandleFunc("/me", api.UpdateMe).Methods("PUT")
	secured.HandleFunc("/projects", api.CreateProject).Methods("POST")
	secured.HandleFunc("/projects", api.ListProjects).Methods("GET")
	secured.HandleFunc("/projects/{projectID}", api.GetProject).Methods("GET")
	secured.HandleFunc("/projects/{projectID}", api.UpdateProject).Methods("PUT")
	secured.HandleFunc("/projects/{projectID}", api.DeleteProject).Methods("DELETE")
	secured.HandleFunc("/projects/{projectID}/collaborators", api.ListCollaborators).Methods("GET")
	secured.HandleFunc("/projects/{projectID}/collaborators", api.AddCollaborator).Methods("POST")
	secured.HandleFunc("/projects/{projectID}/collaborators/{userID}", api.UpdateCollaboratorRole).Methods("PUT")
	secured.HandleFunc("/projects/{projectID}/collaborators/{userID}", api.RemoveCollaborator).Methods("DELETE")
	secured.HandleFunc("/projects/{projectID}/share", api.CreateShareLink).Methods("POST")
	secured.HandleFunc("/join/{token}", api.JoinProject).Methods("POST")
	secured.HandleFunc("/projects/{projectID}/strokes", api.AppendStrokes).Methods("POST")
	secured.HandleFunc("/projects/{projectID}/strokes", api.ListStrokes).Methods("GET")
	return r
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
