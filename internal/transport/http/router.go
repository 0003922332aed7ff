package httptransport

import (
	"expvar"
	"fmt"
	"net/http"
	"sort"
	"strings"

	appdevices "summonlink/internal/app/devices"
	appsummon "summonlink/internal/app/summon"
	apptokens "summonlink/internal/app/tokens"
	"summonlink/internal/config"
	"summonlink/internal/dispatch"
	"summonlink/internal/store"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

func NewRouter(st *store.Store, cfg config.ServerConfig, debounceCfg config.DebounceConfig, disp dispatch.Dispatcher) *chi.Mux {
	tokenSvc := apptokens.NewService(st)
	summonSvc := appsummon.NewService(st, disp, debounceCfg)
	deviceSvc := appdevices.NewService(st)

	tokenHandlers := NewTokenHandlers(tokenSvc)
	eventHandlers := NewEventHandlers(summonSvc)
	deviceHandlers := NewDeviceHandlers(deviceSvc)
	adminHandlers := NewAdminHandlers(st)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(APILogMiddleware()).Get("/healthz", adminHandlers.Health())

	r.Route("/api", func(r chi.Router) {
		r.Use(APILogMiddleware())

		r.Group(func(r chi.Router) {
			r.Use(DeviceAuthMiddleware(cfg.DeviceAPIKey))
			r.Post("/tokens/register", tokenHandlers.Register())
			r.Get("/tokens/nearby", tokenHandlers.Nearby())
			r.Get("/tokens", tokenHandlers.All())

			r.Post("/nfc-event", eventHandlers.NFCEvent())
			r.Post("/time", eventHandlers.Time())
			r.Post("/say", eventHandlers.Say())
			r.Post("/chat", eventHandlers.Chat())
			r.Post("/summon/sync", eventHandlers.Sync())
			r.Post("/summon/sync/batch", eventHandlers.SyncBatch())

			r.Post("/devices/location", deviceHandlers.ReportLocation())
		})

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminAPIKey))
			r.Get("/summons", adminHandlers.Summons())
			r.Get("/summons/{summon_id}", adminHandlers.Summon())
			r.Delete("/summons", adminHandlers.PurgeSummons())
			r.Get("/devices/locations", deviceHandlers.Locations())
			r.Get("/debug/vars", expvar.Handler().ServeHTTP)
		})
	})

	return r
}

func LogRoutes(r chi.Router) {
	type routeDef struct {
		Method string
		Path   string
	}
	routes := make([]routeDef, 0, 16)
	err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, routeDef{Method: method, Path: route})
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("walk routes failed")
		return
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Registered routes (%d):\n", len(routes)))
	for _, rt := range routes {
		b.WriteString(fmt.Sprintf("  %-6s %s\n", rt.Method, rt.Path))
	}
	fmt.Print(b.String())
}
