// app.go — builds the process: config, storage, hub, flow, channels, server.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/queuecast/queuecast/internal/config"
	"github.com/queuecast/queuecast/internal/history"
	"github.com/queuecast/queuecast/internal/hub"
	"github.com/queuecast/queuecast/internal/linebot"
	"github.com/queuecast/queuecast/internal/player"
	"github.com/queuecast/queuecast/internal/resolve"
	"github.com/queuecast/queuecast/internal/search"
	"github.com/queuecast/queuecast/internal/server"
	"github.com/queuecast/queuecast/internal/storage"
)

func run(shutdown <-chan os.Signal, silent bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Silent && !silent {
		log.SetOutput(io.Discard)
	}

	h := hub.New()
	state := player.New(cfg.DefaultVideoID, h)

	flow := &resolve.Flow{State: state, Hub: h}

	if cfg.SearchEnabled {
		flow.Search = search.New()
		log.Printf("APP: YouTube search enabled")
	} else {
		log.Printf("APP: YouTube search disabled; keyword requests are ignored")
	}

	var hist *history.Store
	if cfg.DataDir != "" {
		db, err := storage.Open(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		defer db.Close()
		hist = history.New(db)
	} else {
		hist = history.New(nil)
	}
	flow.History = hist

	deps := server.Deps{
		Hub:     h,
		State:   state,
		Flow:    flow,
		History: hist,
	}

	if cfg.LineEnabled() {
		lh, err := linebot.New(cfg.LineChannelSecret, cfg.LineChannelToken, flow)
		if err != nil {
			return fmt.Errorf("init LINE channel: %w", err)
		}
		deps.Line = lh
	} else {
		log.Printf("APP: LINE credentials missing; messaging channel disabled")
	}

	srv := server.New(cfg.Addr(), deps)

	errc := make(chan error, 1)
	go func() {
		log.Printf("APP: listening on %s", cfg.Addr())
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("http server: %w", err)
	case <-shutdown:
	}

	log.Printf("APP: shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
