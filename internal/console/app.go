package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ericogr/pocket-arena/internal/config"
	"github.com/ericogr/pocket-arena/internal/constants"
	"github.com/ericogr/pocket-arena/internal/dice"
	"github.com/ericogr/pocket-arena/internal/engine"
	"github.com/ericogr/pocket-arena/internal/game"
	"github.com/ericogr/pocket-arena/internal/logging"
	"github.com/ericogr/pocket-arena/internal/service"
	"github.com/ericogr/pocket-arena/internal/storage"
	"github.com/ericogr/pocket-arena/internal/world"
)

// Store is the persistence the console game needs.
type Store interface {
	service.TrainerRepo
	service.BattleRepo
	ListTrainers() ([]game.Trainer, error)
	GetHistory(trainerID uint, limit int) ([]game.BattleRecord, error)
	DeleteTrainer(name string) error
}

// App is one interactive console session.
type App struct {
	store   Store
	catalog *game.Catalog
	table   *game.EffectivenessTable
	world   config.WorldConfig
	dice    dice.Dice
	in      *Input
	out     io.Writer
	render  *Renderer
}

func NewApp(store Store, cfg *config.LoadedConfig, d dice.Dice, r io.Reader, w io.Writer) *App {
	return &App{
		store:   store,
		catalog: cfg.Catalog,
		table:   cfg.Effectiveness,
		world:   cfg.World,
		dice:    d,
		in:      NewInput(r, w),
		out:     w,
		render:  NewRenderer(w, cfg.Catalog),
	}
}

func (a *App) say(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format+"\n", args...)
}

// Run shows the main menu until the player quits or input ends.
func (a *App) Run(ctx context.Context) error {
	for {
		a.say("\n=== POCKET ARENA ===\n1. New game\n2. Continue\n3. Delete game\n4. Quit")
		n, err := a.in.Choice("> ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil && !errors.Is(err, engine.ErrInvalidInput) {
			return err
		}
		switch {
		case err != nil:
			a.say("Invalid option")
			continue
		case n == 0:
			var t *game.Trainer
			if t, err = a.newGame(); err == nil && t != nil {
				err = a.explore(ctx, t)
			}
		case n == 1:
			var t *game.Trainer
			if t, err = a.continueGame(); err == nil && t != nil {
				err = a.explore(ctx, t)
			}
		case n == 2:
			err = a.deleteGame()
		case n == 3:
			a.say("See you soon!")
			return nil
		default:
			a.say("Invalid option")
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (a *App) newGame() (*game.Trainer, error) {
	name, err := a.in.Line("Enter your name: ")
	if err != nil {
		return nil, err
	}
	starters := a.catalog.Starters()
	a.say("\nChoose your starter:")
	for i, s := range starters {
		a.say("%d. %s (%s)", i+1, s.Name, a.render.Title(string(s.Affinity)))
	}
	var pick game.Species
	for {
		n, err := a.in.Choice("> ")
		if err != nil && !errors.Is(err, engine.ErrInvalidInput) {
			return nil, err
		}
		if err == nil && n >= 0 && n < len(starters) {
			pick = starters[n]
			break
		}
		a.say("Invalid option")
	}
	t, err := service.CreateTrainer(a.store, a.catalog, name, pick.Key)
	if err != nil {
		a.say("Could not create game: %v", err)
		return nil, nil
	}
	a.say("\nCongratulations %s! You received a %s.", t.Name, pick.Name)
	return t, nil
}

func (a *App) continueGame() (*game.Trainer, error) {
	trainers, err := a.store.ListTrainers()
	if err != nil {
		return nil, err
	}
	if len(trainers) == 0 {
		a.say("No saved games")
		return nil, nil
	}
	a.say("Saved games:")
	for _, t := range trainers {
		a.say("- %s (%d combatants)", t.Name, len(t.Roster))
	}
	name, err := a.in.Line("Trainer name: ")
	if err != nil {
		return nil, err
	}
	t, err := a.store.GetTrainerByName(name)
	if errors.Is(err, storage.ErrTrainerNotFound) {
		a.say("No saved game for %q", name)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	a.say("Welcome back, %s!", t.Name)
	return t, nil
}

func (a *App) deleteGame() error {
	name, err := a.in.Line("Trainer name to delete: ")
	if err != nil {
		return err
	}
	ok, err := a.in.Line("Are you sure? (y/n): ")
	if err != nil {
		return err
	}
	if !strings.EqualFold(ok, "y") {
		return nil
	}
	if err := service.DeleteTrainer(a.store, name); err != nil {
		a.say("Could not delete game: %v", err)
		return nil
	}
	a.say("Game deleted")
	return nil
}

// explore runs the map loop for t until the player goes back.
func (a *App) explore(ctx context.Context, t *game.Trainer) error {
	m := world.New(a.world.Size, a.world.WildCount, a.catalog, a.dice)
	for {
		fmt.Fprint(a.out, m.Render())
		a.say("WASD move   E team   H history   R rest   G save   V back")
		cmd, err := a.in.Line("> ")
		if err != nil {
			return err
		}
		switch cmd = strings.ToLower(cmd); cmd {
		case "w", "a", "s", "d":
			dir, _ := world.ParseDirection(cmd)
			wild, err := m.Move(dir)
			if errors.Is(err, world.ErrOutOfBounds) {
				a.say("You can't go that way.")
				continue
			}
			if wild != nil {
				if err := a.battle(ctx, t, wild); err != nil {
					return err
				}
				m.Populate()
			}
		case "e":
			a.render.Team(t)
		case "h":
			records, err := a.store.GetHistory(t.ID, 0)
			if err != nil {
				return err
			}
			a.render.History(records)
		case "r":
			rested, err := service.RestRoster(a.store, t.Name)
			if err != nil {
				return err
			}
			*t = *rested
			a.say("Your team is fully healed.")
		case "g":
			if err := a.store.SaveCheckpoint(t); err != nil {
				return err
			}
			a.say("Game saved.")
		case "v":
			return nil
		default:
			a.say("Invalid command")
		}
	}
}

// battle runs one encounter. Only a closed input stream or a cancelled
// context is returned; other failures are shown and exploration goes on.
func (a *App) battle(ctx context.Context, t *game.Trainer, wild *game.Combatant) error {
	_, rec, err := service.RunEncounter(ctx, a.store, service.Encounter{
		Trainer:  t,
		Opponent: wild,
		Table:    a.table,
		Dice:     a.dice,
		Input:    a.in,
		Reporter: a.render,
	})
	switch {
	case err == nil:
		if rec.XPGained > 0 {
			active := t.Active()
			a.say("%s gained %d XP.", active.Name, rec.XPGained)
			if rec.LevelUps > 0 {
				a.say("%s grew to level %d! Max HP is now %d.", active.Name, active.Level, active.MaxHitPoints)
			}
		}
		return nil
	case errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, service.ErrNoValidRoster):
		a.say("A wild %s appeared, but none of your combatants can fight. Rest first (r).", wild.Name)
		return nil
	default:
		logging.Error("console battle failed", err, logging.Fields{constants.LogFieldTrainer: t.Name})
		a.say("The battle was interrupted: %v", err)
		return nil
	}
}
