package console

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ericogr/pocket-arena/internal/engine"
	"github.com/ericogr/pocket-arena/internal/game"
)

const hpBarWidth = 20

// HPBar draws "[#####-----] cur/max".
func HPBar(cur, max, width int) string {
	if max <= 0 || width <= 0 {
		return fmt.Sprintf("[] %d/%d", cur, max)
	}
	filled := cur * width / max
	if cur > 0 && filled == 0 {
		filled = 1
	}
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return fmt.Sprintf("[%s%s] %d/%d", strings.Repeat("#", filled), strings.Repeat("-", width-filled), cur, max)
}

// Renderer narrates battle events and roster screens.
type Renderer struct {
	out     io.Writer
	catalog *game.Catalog
	title   cases.Caser
}

func NewRenderer(w io.Writer, catalog *game.Catalog) *Renderer {
	return &Renderer{out: w, catalog: catalog, title: cases.Title(language.English)}
}

// Title capitalizes labels such as affinities and outcomes for display.
func (r *Renderer) Title(s string) string {
	return r.title.String(strings.ReplaceAll(s, "_", " "))
}

func (r *Renderer) art(name string) string {
	if r.catalog == nil {
		return ""
	}
	s, ok := r.catalog.Get(name)
	if !ok {
		return ""
	}
	return s.Art
}

// Report implements engine.Reporter.
func (r *Renderer) Report(e engine.Event) {
	switch e.Kind {
	case engine.EventEncounter:
		fmt.Fprintln(r.out, e.Message)
		if art := r.art(e.Actor); art != "" {
			fmt.Fprintln(r.out, art)
		}
		fmt.Fprintf(r.out, "%s %s\n", e.Actor, HPBar(e.TargetHP, e.TargetMaxHP, hpBarWidth))
	case engine.EventMove:
		fmt.Fprintln(r.out, e.Message)
		fmt.Fprintf(r.out, "  %s %s\n", e.Target, HPBar(e.TargetHP, e.TargetMaxHP, hpBarWidth))
	case engine.EventVictory, engine.EventDefeat:
		fmt.Fprintf(r.out, "\n*** %s ***\n%s\n", r.Title(string(e.Kind)), e.Message)
	default:
		fmt.Fprintln(r.out, e.Message)
	}
}

// Team prints every roster member with its art, ability and moves.
func (r *Renderer) Team(t *game.Trainer) {
	fmt.Fprintf(r.out, "%s's team (potions: %d):\n\n", t.Name, t.Potions)
	for i := range t.Roster {
		c := &t.Roster[i]
		marker := " "
		if i == t.ActiveSlot {
			marker = "*"
		}
		fmt.Fprintf(r.out, "%s%d. %s Lv %d (%s) %s\n", marker, i+1, c.Name, c.Level, r.Title(string(c.Affinity)), HPBar(c.CurrentHitPoints, c.MaxHitPoints, hpBarWidth))
		fmt.Fprintf(r.out, "   XP: %d/%d\n", c.Experience, game.ExperienceForLevel(c.Level))
		if c.Ability != "" {
			fmt.Fprintf(r.out, "   Ability: %s\n", c.Ability)
		}
		names := make([]string, len(c.Moves))
		for j, m := range c.Moves {
			names[j] = m.Name
		}
		fmt.Fprintf(r.out, "   Moves: %s\n", strings.Join(names, ", "))
		if art := r.art(c.Species); art != "" {
			fmt.Fprintln(r.out, art)
		}
	}
}

// History prints battle records, newest first.
func (r *Renderer) History(records []game.BattleRecord) {
	fmt.Fprintln(r.out, "Battle history:")
	if len(records) == 0 {
		fmt.Fprintln(r.out, "No battles recorded")
		return
	}
	for i, rec := range records {
		fmt.Fprintf(r.out, "%d. %s against %s (%d turns)\n", i+1, r.Title(string(rec.Outcome)), rec.Opponent, rec.Turns)
	}
}
