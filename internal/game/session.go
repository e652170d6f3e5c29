// Package game strings levels together into a campaign: level loading with
// difficulty scaling, continue after death, advancing to the next level,
// autosave and loading from a save slot.
package game

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/logging"
	"github.com/vovakirdan/tui-platformer/internal/sim"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// ErrNoStore is returned by save operations when no store is configured.
var ErrNoStore = errors.New("game: no save store")

// ErrNoLevels is returned when the campaign has no playable level.
var ErrNoLevels = errors.New("game: no levels")

// SaveStore persists progress and finished-level scores.
type SaveStore interface {
	SaveGame(save storage.Save) error
	LoadGame(slot string) (storage.Save, error)
	SaveScore(levelID string, score, coins int) (int64, error)
	DeleteGame(slot string) error
}

// Options configures a Session.
type Options struct {
	Config   config.PlatformerConfig
	Levels   *levels.Loader
	Store    SaveStore // optional
	Logger   *log.Logger
	Slot     string // defaults to storage.DefaultSlot
	TickRate int
}

// Session owns the current level's machine and the campaign around it.
type Session struct {
	cfg      config.PlatformerConfig
	diff     *config.DifficultyManager
	store    SaveStore
	log      *log.Logger
	slot     string
	campaign []levels.Level

	index   int
	machine *sim.Machine
	clock   *sim.Clock

	// Totals when the current level began.
	startScore int
	startCoins int

	viewW, viewH float64
	jumpLatch    bool
	finished     bool
	events       []sim.Event
}

// NewSession loads the campaign. No level is started until Start or Load.
func NewSession(opts Options) (*Session, error) {
	if opts.Levels == nil {
		opts.Levels = levels.Builtin()
	}
	all, err := opts.Levels.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	if len(all) == 0 {
		return nil, ErrNoLevels
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	slot := opts.Slot
	if slot == "" {
		slot = storage.DefaultSlot
	}
	return &Session{
		cfg:      opts.Config,
		diff:     config.NewDifficultyManager(opts.Config.Difficulty),
		store:    opts.Store,
		log:      logger,
		slot:     slot,
		campaign: all,
		clock:    sim.NewClock(opts.TickRate, opts.Config.Physics.MaxDT, sim.DefaultMaxSteps),
	}, nil
}

// Levels returns the campaign in play order.
func (s *Session) Levels() []levels.Level { return s.campaign }

// Level returns the level being played.
func (s *Session) Level() levels.Level { return s.campaign[s.index] }

// LevelNumber returns the 1-based position of the current level.
func (s *Session) LevelNumber() int { return s.index + 1 }

// Machine returns the current level's state machine.
func (s *Session) Machine() *sim.Machine { return s.machine }

// State returns the machine state, or Menu before anything is loaded.
func (s *Session) State() sim.State {
	if s.machine == nil {
		return sim.StateMenu
	}
	return s.machine.State()
}

// Finished reports whether the last level has been completed.
func (s *Session) Finished() bool { return s.finished }

// Snapshot returns the current world snapshot.
func (s *Session) Snapshot() sim.Snapshot { return s.machine.World().Snapshot() }

// SetViewport sets the visible world size in world units.
func (s *Session) SetViewport(w, h float64) {
	s.viewW, s.viewH = w, h
	if s.machine != nil {
		s.machine.World().SetViewport(w, h)
	}
}

// Open loads levelID, or the first level if empty, for a fresh campaign
// and leaves it in the Menu state.
func (s *Session) Open(levelID string) error {
	idx := 0
	if levelID != "" {
		var err error
		if idx, err = s.indexOf(levelID); err != nil {
			return err
		}
	}
	s.finished = false
	return s.load(idx, 0, 0)
}

// Start opens levelID and starts playing it.
func (s *Session) Start(levelID string) error {
	if err := s.Open(levelID); err != nil {
		return err
	}
	s.machine.Handle(sim.CommandStart)
	return nil
}

// Handle forwards a command to the machine.
func (s *Session) Handle(cmd sim.Command) {
	if s.machine == nil {
		return
	}
	if s.machine.Handle(cmd) {
		s.log.Debug("state changed", "state", s.machine.State())
	} else if cmd == sim.CommandStart && s.machine.Ended() {
		s.log.Debug("level already finished", "level", s.Level().ID)
	}
}

// Advance runs as many fixed steps as elapsed seconds allow and returns
// the events they produced. A jump press is kept until a step consumes it.
func (s *Session) Advance(in core.Intent, elapsed float64) []sim.Event {
	s.events = s.events[:0]
	if s.machine == nil || s.machine.State() != sim.StateRunning {
		s.clock.Reset()
		s.jumpLatch = false
		return s.events
	}
	s.jumpLatch = s.jumpLatch || in.JumpPressed

	n := s.clock.Advance(elapsed)
	for range n {
		in.JumpPressed = s.jumpLatch
		s.jumpLatch = false
		res := s.machine.Tick(in, s.clock.Step())
		s.events = append(s.events, res.Events...)
		if res.Outcome != sim.OutcomeContinue {
			s.finish(res.Outcome)
			s.clock.Reset()
			break
		}
	}
	return s.events
}

func (s *Session) finish(out sim.Outcome) {
	w := s.machine.World()
	lvl := s.Level()
	switch out {
	case sim.OutcomeDied:
		s.log.Info("player died", "level", lvl.ID, "score", w.Score())
	case sim.OutcomeReachedGoal:
		score, coins := w.Score()-s.startScore, w.Coins()-s.startCoins
		s.log.Info("level complete", "level", lvl.ID, "score", score, "coins", coins)
		if s.store == nil {
			return
		}
		if _, err := s.store.SaveScore(lvl.ID, score, coins); err != nil {
			s.log.Warn("could not save score", "error", err)
		}
	}
}

// Continue restarts the current level after a game over, keeping the
// score the level was entered with.
func (s *Session) Continue() error {
	if s.State() != sim.StateGameOver {
		return fmt.Errorf("game: continue from %s", s.State())
	}
	return s.Restart()
}

// Restart reloads the current level and starts it.
func (s *Session) Restart() error {
	if s.machine == nil {
		return ErrNoLevels
	}
	if err := s.load(s.index, s.startScore, s.startCoins); err != nil {
		return err
	}
	s.machine.Handle(sim.CommandStart)
	return nil
}

// NextLevel moves on after a completed level and autosaves. It returns
// false when the campaign is over.
func (s *Session) NextLevel() (bool, error) {
	if s.State() != sim.StateLevelComplete {
		return false, fmt.Errorf("game: next level from %s", s.State())
	}
	if err := s.advance(); err != nil {
		return false, err
	}
	if s.finished {
		return false, nil
	}
	s.machine.Handle(sim.CommandStart)
	return true, nil
}

// advance opens the level after the current one in the Menu state with the
// totals carried over. After the last level it marks the campaign finished
// and clears the autosave.
func (s *Session) advance() error {
	w := s.machine.World()
	if s.index+1 >= len(s.campaign) {
		s.finished = true
		s.log.Info("campaign complete", "score", w.Score(), "coins", w.Coins())
		if s.store != nil {
			if err := s.store.DeleteGame(s.slot); err != nil {
				s.log.Warn("could not clear save", "error", err)
			}
		}
		return nil
	}
	if err := s.load(s.index+1, w.Score(), w.Coins()); err != nil {
		return err
	}
	if err := s.autosave(false); err != nil && !errors.Is(err, ErrNoStore) {
		s.log.Warn("autosave failed", "error", err)
	}
	return nil
}

// QuitToMenu leaves the level. Running and paused games are autosaved
// first at the player's position. A finished level is not resumable: after
// a game over the level is reloaded with its starting score, and after a
// clear the next level is opened, or the campaign is marked finished.
func (s *Session) QuitToMenu() error {
	if s.machine == nil {
		return nil
	}
	var err error
	switch s.machine.State() {
	case sim.StateRunning, sim.StatePaused:
		err = s.autosave(true)
	case sim.StateGameOver:
		err = s.load(s.index, s.startScore, s.startCoins)
	case sim.StateLevelComplete:
		err = s.advance()
	}
	s.machine.Handle(sim.CommandReset)
	if errors.Is(err, ErrNoStore) {
		return nil
	}
	return err
}

// Save writes the current progress, including the player's position.
func (s *Session) Save() error {
	return s.autosave(true)
}

func (s *Session) autosave(withPosition bool) error {
	if s.store == nil {
		return ErrNoStore
	}
	w := s.machine.World()
	p := w.Player()
	save := storage.Save{
		Slot:    s.slot,
		LevelID: s.Level().ID,
		Score:   w.Score(),
		Coins:   w.Coins(),
		Health:  p.Health,
	}
	if withPosition {
		save.X, save.Y = p.X, p.Y
	} else {
		save.Score, save.Coins = s.startScore, s.startCoins
		save.Health = p.MaxHealth
	}
	if err := s.store.SaveGame(save); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	s.log.Info("game saved", "slot", s.slot, "level", save.LevelID, "score", save.Score)
	return nil
}

// Load restores the save slot and starts the saved level.
func (s *Session) Load() error {
	if s.store == nil {
		return ErrNoStore
	}
	save, err := s.store.LoadGame(s.slot)
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	idx, err := s.indexOf(save.LevelID)
	if err != nil {
		return err
	}
	s.finished = false
	if err := s.load(idx, save.Score, save.Coins); err != nil {
		return err
	}

	w := s.machine.World()
	p := w.Player()
	x, y := p.X, p.Y
	if save.X != 0 || save.Y != 0 {
		x, y = save.X, save.Y
	}
	health := save.Health
	if health <= 0 {
		health = p.MaxHealth
	}
	w.PlacePlayer(x, y, health)

	s.log.Info("game loaded", "slot", s.slot, "level", save.LevelID, "score", save.Score)
	s.machine.Handle(sim.CommandStart)
	return nil
}

func (s *Session) indexOf(id string) (int, error) {
	for i, lvl := range s.campaign {
		if lvl.ID == id {
			return i, nil
		}
	}
	return 0, fmt.Errorf("game: %w: %s", levels.ErrLevelNotFound, id)
}

// load builds the world for campaign[idx] with difficulty applied.
func (s *Session) load(idx, score, coins int) error {
	lvl := s.campaign[idx]
	cfg := s.levelConfig(idx+1, score)

	g, spawns, err := lvl.Build(cfg.World.TileSize)
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	w, err := sim.NewWorld(cfg, g, spawns)
	if err != nil {
		return fmt.Errorf("game: level %s: %w", lvl.ID, err)
	}
	w.SetScore(score, coins)
	if s.viewW > 0 && s.viewH > 0 {
		w.SetViewport(s.viewW, s.viewH)
	}

	s.index = idx
	s.startScore, s.startCoins = score, coins
	if s.machine == nil {
		s.machine = sim.NewMachine(w)
	} else {
		s.machine.Swap(w)
	}
	s.clock.Reset()
	s.jumpLatch = false

	s.log.Info("level loaded", "id", lvl.ID, "name", lvl.Name, "number", idx+1,
		"difficulty", s.diff.Level(idx+1, score))
	return nil
}

// levelConfig tunes the enemies for a level number.
func (s *Session) levelConfig(levelNum, score int) config.PlatformerConfig {
	cfg := s.cfg
	cfg.Enemies.Walker = s.diff.Tune(cfg.Enemies.Walker, levelNum, score)
	cfg.Enemies.Flyer.EnemyConfig = s.diff.Tune(cfg.Enemies.Flyer.EnemyConfig, levelNum, score)
	return cfg
}
