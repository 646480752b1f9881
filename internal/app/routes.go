package app

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vancomm/bstree/internal/config"
	"github.com/vancomm/bstree/internal/handlers"
)

func (a *App) loadRoutes() {
	var snapshots handlers.Snapshots
	if a.repo != nil {
		snapshots = a.repo
	}
	tree := handlers.NewTreeHandler(
		a.log, a.store, snapshots, a.ws, config.TreeName(),
	)

	api := http.NewServeMux()
	api.HandleFunc("GET /tree/keys/{key}", tree.Get)
	api.HandleFunc("PUT /tree/keys/{key}", tree.Set)
	api.HandleFunc("POST /tree/keys/{key}", tree.Insert)
	api.HandleFunc("DELETE /tree/keys/{key}", tree.Remove)
	api.HandleFunc("GET /tree/traversal", tree.Traverse)
	api.HandleFunc("GET /tree/shape", tree.Shape)
	api.HandleFunc("GET /tree/stats", tree.Stats)
	api.HandleFunc("GET /tree/snapshots", tree.ListSnapshots)
	api.HandleFunc("DELETE /tree/snapshots/{name}", tree.DeleteSnapshot)
	api.HandleFunc("POST /tree/snapshot", tree.SaveSnapshot)
	api.HandleFunc("POST /tree/restore", tree.RestoreSnapshot)
	api.HandleFunc("/tree/connect", tree.Connect)

	if base := config.BasePath(); base != "" {
		a.router.Handle(base+"/", http.StripPrefix(base, api))
	} else {
		a.router.Handle("/", api)
	}
	a.router.Handle("GET /metrics", promhttp.Handler())
}
