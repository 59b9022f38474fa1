package main

import (
	"os"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/overworld/assets"
	"github.com/milk9111/overworld/dialogue"
	"github.com/milk9111/overworld/ecs/system"
	"github.com/milk9111/overworld/game"
	"github.com/milk9111/overworld/input"
	"github.com/milk9111/overworld/prefabs"
	"github.com/milk9111/overworld/session"
	"go.uber.org/zap"
)

const scriptsDir = "prefabs/scripts"

type Game struct {
	cfg      prefabs.Config
	log      *zap.Logger
	sim      *game.Simulation
	keys     Keyboard
	sheets   []*ebiten.Image
	loader   *dialogue.Loader
	watcher  *dialogue.Watcher
	menuUI   *ebitenui.UI
	pauseUI  *ebitenui.UI
	dialogue *ebiten.Image

	drawBoxes bool
	drawZones bool
	width     int
	height    int
}

func NewGame(cfg prefabs.Config, log *zap.Logger) (*Game, error) {
	g := &Game{
		cfg:       cfg,
		log:       log,
		drawBoxes: cfg.Debug.Boxes,
		drawZones: cfg.Debug.Zones,
		width:     cfg.Window.Width,
		height:    cfg.Window.Height,
	}

	deps := game.Deps{Log: log}
	if dirExists(cfg.DialogueDir) {
		g.loader = dialogue.NewDirLoader(cfg.DialogueDir, log.Named("dialogue"))
		deps.Dialogue = g.loader
		g.watch(cfg.DialogueDir)
	}

	sim, err := game.New(cfg, deps)
	if err != nil {
		return nil, err
	}
	g.sim = sim

	var missing []string
	g.sheets, missing = assets.LoadSheets()
	if len(missing) > 0 {
		log.Info("sprite sheets not shipped, drawing boxes", zap.Strings("sheets", missing))
	}

	g.menuUI = NewMenuUI("Menu", g.width, g.height, func() { g.keys.Raise(input.CommandResume) })
	g.pauseUI = NewMenuUI("Paused", g.width, g.height, func() { g.keys.Raise(input.CommandResume) })
	return g, nil
}

func (g *Game) watch(dialogueDir string) {
	dirs := []string{dialogueDir}
	if dirExists(scriptsDir) {
		dirs = append(dirs, scriptsDir)
	}
	w, err := dialogue.NewWatcher(dirs...)
	if err != nil {
		g.log.Warn("script hot reload disabled", zap.Strings("dirs", dirs), zap.Error(err))
		return
	}
	g.watcher = w
	g.log.Info("watching scripts", zap.Strings("dirs", dirs))
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	frame := g.keys.Poll()
	if g.keys.Quit {
		return ebiten.Termination
	}
	if g.keys.ToggleBox {
		g.drawBoxes = !g.drawBoxes
	}
	if g.keys.ToggleZone {
		g.drawZones = !g.drawZones
	}

	g.reload()

	state := g.sim.Session().State()
	switch state {
	case session.Menu:
		g.menuUI.Update()
	case session.Paused:
		g.pauseUI.Update()
	case session.Running:
		if g.keys.Click {
			x, y := g.keys.ClickX-g.width/2, g.keys.ClickY-g.height/2
			if _, err := g.sim.Spawn(g.keys.Spawner.prefab(), x, y); err != nil {
				g.log.Warn("spawn failed", zap.String("prefab", g.keys.Spawner.prefab()), zap.Error(err))
			}
		}
	}

	for _, evt := range g.sim.Tick(frame) {
		switch evt.Type {
		case system.EventChestOpened, system.EventItemPickedUp, system.EventLeverToggled:
			if r, ok := evt.Data.(system.EffectResult); ok && r.Message != "" {
				g.log.Info(r.Message, zap.Stringer("entity", evt.Entity))
			}
		case system.EventDialogueUnavailable:
			g.log.Warn("character has nothing to say", zap.Stringer("entity", evt.Entity), zap.Any("script", evt.Data))
		}
	}
	return nil
}

func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	g.watcher.PumpFunc(func(path string) {
		if filepath.Ext(path) == ".tengo" {
			name := prefabs.ScriptName(path)
			g.sim.Effects().Forget(name)
			g.log.Info("effect script reloaded", zap.String("script", name))
			return
		}
		g.loader.InvalidateFile(path)
		g.log.Info("dialogue reloaded", zap.String("path", path))
	})
}

func (g *Game) Draw(screen *ebiten.Image) {
	view := g.sim.View()
	g.drawWorld(screen, view)
	g.drawDialogue(screen, view)
	g.drawHUD(screen, view)

	switch view.State {
	case session.Menu:
		g.menuUI.Draw(screen)
	case session.Paused:
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

func dirExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
