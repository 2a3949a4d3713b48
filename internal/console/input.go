// Package console is the terminal front end: it reads the player's choices
// from a text stream and narrates battles and menus.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ericogr/pocket-arena/internal/engine"
	"github.com/ericogr/pocket-arena/internal/game"
)

// Input reads line-based answers. Menu numbers are 1-based on screen and
// 0-based once returned.
type Input struct {
	sc  *bufio.Scanner
	out io.Writer
}

func NewInput(r io.Reader, w io.Writer) *Input {
	return &Input{sc: bufio.NewScanner(r), out: w}
}

// Line prints prompt and returns the next trimmed line. io.EOF means the
// stream is closed.
func (in *Input) Line(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(in.out, prompt)
	}
	if !in.sc.Scan() {
		if err := in.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(in.sc.Text()), nil
}

// Choice reads a 1-based number and returns it 0-based. Anything that is
// not a number yields engine.ErrInvalidInput.
func (in *Input) Choice(prompt string) (int, error) {
	s, err := in.Line(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, engine.ErrInvalidInput
	}
	return n - 1, nil
}

var commandMenu = []engine.CommandKind{
	engine.CommandFight,
	engine.CommandDefend,
	engine.CommandItem,
	engine.CommandStatus,
	engine.CommandFlee,
}

func (in *Input) ChooseCommand(ctx context.Context, active, _ *game.Combatant) (engine.CommandKind, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprintf(in.out, "\nWhat will %s do?\n1. Fight\n2. Defend\n3. Use potion\n4. Status\n5. Flee\n", active.Name)
	n, err := in.Choice("> ")
	if err != nil {
		return "", err
	}
	if n < 0 || n >= len(commandMenu) {
		return "", engine.ErrInvalidInput
	}
	return commandMenu[n], nil
}

func (in *Input) ChooseMove(ctx context.Context, active *game.Combatant) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	fmt.Fprintln(in.out, "\nChoose a move:")
	for i, m := range active.Moves {
		fmt.Fprintf(in.out, "%d. %s (%s, power %d)\n", i+1, m.Name, m.Affinity, m.Power)
	}
	return in.Choice("> ")
}

func (in *Input) ChooseReplacement(ctx context.Context, roster []game.Combatant) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	fmt.Fprintln(in.out, "\nChoose your next combatant:")
	for i := range roster {
		fmt.Fprintf(in.out, "%d. %s\n", i+1, memberLine(&roster[i]))
	}
	return in.Choice("> ")
}

func memberLine(c *game.Combatant) string {
	state := "ok"
	if c.Fainted() {
		state = "fainted"
	}
	return fmt.Sprintf("%s %s %d/%d HP", c.Name, state, c.CurrentHitPoints, c.MaxHitPoints)
}
