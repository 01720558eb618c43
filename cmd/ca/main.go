//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"

	"sphere-ca/internal/app"
	"sphere-ca/internal/core"
	"sphere-ca/internal/logging"
	_ "sphere-ca/internal/topology/geodesic"
	"sphere-ca/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
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
	log.Infof("%s on %d nodes, generation %s", w.Name(), w.Adjacency().NodeCount(), w.Generation())

	game := app.New(w, cfg, log)

	ebiten.SetWindowTitle(fmt.Sprintf("sphere-ca - %s", w.Name()))
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Size+cfg.HUDWidth, cfg.Size)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatalf("%v", err)
	}
}
