package http

import (
	"net/http"
)

type RouterConfig struct {
	Catalog    *CatalogHandler
	Session    *SessionHandler
	Servants   *ServantHandler
	Users      *UserHandler
	Events     *EventHandler
	Schedules  *ScheduleHandler
	Reports    *ReportHandler
	Middleware []func(http.Handler) http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	if cfg.Catalog != nil {
		mux.HandleFunc("GET /catalog", cfg.Catalog.Get)
	}

	if cfg.Session != nil {
		mux.HandleFunc("GET /session", cfg.Session.Current)
		mux.HandleFunc("PUT /session", cfg.Session.Switch)
		mux.HandleFunc("GET /roles", cfg.Session.Roles)
		mux.HandleFunc("PUT /roles/{role}", cfg.Session.UpdateRole)
	}

	if cfg.Servants != nil {
		mux.HandleFunc("GET /servants", cfg.Servants.List)
		mux.HandleFunc("POST /servants", cfg.Servants.Create)
		mux.HandleFunc("GET /servants/{id}", cfg.Servants.Get)
		mux.HandleFunc("PUT /servants/{id}", cfg.Servants.Update)
		mux.HandleFunc("DELETE /servants/{id}", cfg.Servants.Delete)
		mux.HandleFunc("GET /functions/{id}/servants", cfg.Servants.Eligible)
	}

	if cfg.Users != nil {
		mux.HandleFunc("GET /users", cfg.Users.List)
		mux.HandleFunc("POST /users", cfg.Users.Create)
		mux.HandleFunc("PUT /users/{id}", cfg.Users.Update)
		mux.HandleFunc("DELETE /users/{id}", cfg.Users.Delete)
	}

	if cfg.Events != nil {
		mux.HandleFunc("GET /events", cfg.Events.List)
		mux.HandleFunc("POST /events", cfg.Events.Create)
		mux.HandleFunc("GET /events/{id}", cfg.Events.Get)
		mux.HandleFunc("PUT /events/{id}", cfg.Events.Update)
		mux.HandleFunc("DELETE /events/{id}", cfg.Events.Delete)
	}

	if cfg.Schedules != nil {
		mux.HandleFunc("GET /schedules", cfg.Schedules.List)
		mux.HandleFunc("POST /schedules", cfg.Schedules.Create)
		mux.HandleFunc("GET /schedules/{date}", cfg.Schedules.Get)
		mux.HandleFunc("PUT /schedules/{date}", cfg.Schedules.Put)
		mux.HandleFunc("POST /schedule-items", cfg.Schedules.NewItem)
	}

	if cfg.Reports != nil {
		mux.HandleFunc("GET /reports/participation", cfg.Reports.Participation)
		mux.HandleFunc("GET /reports/ministries", cfg.Reports.Ministries)
		mux.HandleFunc("GET /reports/servants/{id}", cfg.Reports.Servant)
		mux.HandleFunc("GET /reminders", cfg.Reports.Reminders)
		mux.HandleFunc("GET /dashboard", cfg.Reports.Dashboard)
	}

	var handler http.Handler = mux
	for i := len(cfg.Middleware) - 1; i >= 0; i-- {
		if cfg.Middleware[i] != nil {
			handler = cfg.Middleware[i](handler)
		}
	}

	return handler
}
