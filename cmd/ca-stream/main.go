package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"time"

	"sphere-ca/internal/app"
	"sphere-ca/internal/core"
	"sphere-ca/internal/logging"
	"sphere-ca/internal/stream"
	_ "sphere-ca/internal/topology/geodesic"
	"sphere-ca/internal/world"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	addr := flag.String("addr", ":8080", "HTTP listen address")
	flag.Parse()

	log := logging.New(cfg.LogLevel)

	factory, ok := core.Topologies()[cfg.Topology]
	if !ok {
		log.Fatalf("unknown topology %q", cfg.Topology)
	}
	opts := cfg.Options()
	topo, err := factory(opts)
	if err != nil {
		log.Fatalf("topology: %v", err)
	}
	w, err := world.New(topo, world.FromMap(opts), log)
	if err != nil {
		log.Fatalf("world: %v", err)
	}
	w.Reset(0)

	hub := stream.NewHub(log)
	defer hub.Close()
	loop := stream.NewLoop(w, hub, time.Second/time.Duration(max(cfg.TPS, 1)), log)

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.HandleFunc("/snapshot", loop.ServeSnapshot)
	srv := &http.Server{Addr: *addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		log.Infof("streaming %d nodes on %s (generation %s)", w.Adjacency().NodeCount(), *addr, w.Generation())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("http: %v", err)
			stop()
		}
	}()

	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Errorf("loop: %v", err)
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		log.Warnf("shutdown: %v", err)
	}
	log.Infof("stopped at tick %d", loop.Latest().Tick)
}
