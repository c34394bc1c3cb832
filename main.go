package main

import (
	"flag"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/jamble/sim"
)

func main() {
	debug := flag.Bool("debug", false, "draw colliders and run state")
	laps := flag.Int("laps", 0, "laps per run (1-9), 0 keeps tuning.yaml")
	mode := flag.String("mode", "", "run mode: idle or pingpong, empty keeps tuning.yaml")
	loadout := flag.String("loadout", "", "comma separated ability ids to equip, empty keeps tuning.yaml")
	watch := flag.Bool("watch", false, "reload prefabs/ when files change")
	scale := flag.Float64("scale", 2, "window scale")
	flag.Parse()

	overrides := flagOverrides{laps: *laps, mode: *mode}
	if *loadout != "" {
		for _, id := range strings.Split(*loadout, ",") {
			if id = strings.TrimSpace(id); id != "" {
				overrides.loadout = append(overrides.loadout, id)
			}
		}
	}

	game, err := NewGame(overrides, *debug, *watch)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	w, h := game.LayoutF(0, 0)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(int(w**scale), int(h**scale))
	ebiten.SetWindowTitle("jamble")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

// flagOverrides are command-line values applied on top of every loaded
// tuning, including hot reloads.
type flagOverrides struct {
	laps    int
	mode    string
	loadout []string
}

func (o flagOverrides) apply(cfg sim.Config) sim.Config {
	if o.laps != 0 {
		cfg.Laps = o.laps
	}
	if o.mode != "" {
		cfg.Mode = sim.ParseMode(o.mode)
	}
	if o.loadout != nil {
		cfg.Loadout = append([]string(nil), o.loadout...)
	}
	return cfg
}
