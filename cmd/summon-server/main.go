package main

import (
	"context"
	"net/http"
	"time"

	"summonlink/internal/config"
	"summonlink/internal/dispatch"
	"summonlink/internal/logging"
	"summonlink/internal/store"
	httptransport "summonlink/internal/transport/http"

	"github.com/rs/zerolog/log"
)

func main() {
	app, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	logging.Init(app.Log)
	cfg := app.Server
	log.Info().Str("policy", app.Debounce.Summary()).Msg("debounce policy")

	st, err := store.New(cfg.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	if err := st.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("db ping failed")
	}
	if err := st.EnsureDefaultGameObjects(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("ensure game object catalog failed")
	}

	disp := dispatch.NewScreenDispatcher(cfg.ScreenName)
	r := httptransport.NewRouter(st, cfg, app.Debounce, disp)
	httptransport.LogRoutes(r)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Info().Str("addr", cfg.HTTPAddr).Str("screen", cfg.ScreenName).Msg("http listening")
	log.Fatal().Err(server.ListenAndServe()).Msg("server stopped")
}
