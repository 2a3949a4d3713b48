// Package world implements the exploration grid: the player walks with
// w/a/s/d, wild combatants wander one cell at a time and stepping onto the
// same cell as one starts an encounter.
package world

import (
	"errors"
	"strings"

	"github.com/ericogr/pocket-arena/internal/dice"
	"github.com/ericogr/pocket-arena/internal/game"
)

var (
	ErrOutOfBounds      = errors.New("cannot move outside the map")
	ErrUnknownDirection = errors.New("unknown direction")
)

// Direction is one of the w/a/s/d keys.
type Direction byte

const (
	Up    Direction = 'w'
	Left  Direction = 'a'
	Down  Direction = 's'
	Right Direction = 'd'
)

// ParseDirection accepts w/a/s/d in either case.
func ParseDirection(s string) (Direction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 1 {
		return 0, ErrUnknownDirection
	}
	switch d := Direction(s[0]); d {
	case Up, Left, Down, Right:
		return d, nil
	}
	return 0, ErrUnknownDirection
}

// Position is a grid cell; (0,0) is the top-left corner.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Wild is an uncaught combatant on the map.
type Wild struct {
	Pos       Position
	Combatant game.Combatant
}

// Map is not safe for concurrent use; each console session owns one.
type Map struct {
	size      int
	wildCount int
	catalog   *game.Catalog
	dice      dice.Dice
	player    Position
	wilds     []Wild
}

// New builds a size x size map with the player at the centre and
// wildCount freshly spawned wild combatants.
func New(size, wildCount int, catalog *game.Catalog, d dice.Dice) *Map {
	m := &Map{
		size:      size,
		wildCount: wildCount,
		catalog:   catalog,
		dice:      d,
		player:    Position{X: size / 2, Y: size / 2},
	}
	m.Populate()
	return m
}

func (m *Map) Size() int        { return m.size }
func (m *Map) Player() Position { return m.player }
func (m *Map) Wilds() []Wild    { return append([]Wild(nil), m.wilds...) }
func (m *Map) inside(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < m.size && p.Y < m.size
}

// Populate replaces every wild combatant with a new random one at a random
// position. Called at start and after each encounter.
func (m *Map) Populate() {
	m.wilds = make([]Wild, 0, m.wildCount)
	for i := 0; i < m.wildCount; i++ {
		pos := Position{X: m.dice.Intn(m.size), Y: m.dice.Intn(m.size)}
		m.wilds = append(m.wilds, Wild{Pos: pos, Combatant: m.catalog.Random(m.dice).Spawn()})
	}
}

// Move steps the player one cell. Moves off the edge are rejected and
// nothing else happens. After a valid move every wild combatant wanders by
// -1, 0 or +1 on each axis, clamped to the grid. If one then shares the
// player's cell it is removed from the map and returned.
func (m *Map) Move(d Direction) (*game.Combatant, error) {
	next := m.player
	switch d {
	case Up:
		next.Y--
	case Down:
		next.Y++
	case Left:
		next.X--
	case Right:
		next.X++
	default:
		return nil, ErrUnknownDirection
	}
	if !m.inside(next) {
		return nil, ErrOutOfBounds
	}
	m.player = next

	for i := range m.wilds {
		w := &m.wilds[i]
		w.Pos.X = clamp(w.Pos.X+m.dice.Intn(3)-1, 0, m.size-1)
		w.Pos.Y = clamp(w.Pos.Y+m.dice.Intn(3)-1, 0, m.size-1)
	}
	for i, w := range m.wilds {
		if w.Pos == m.player {
			c := w.Combatant
			m.wilds = append(m.wilds[:i], m.wilds[i+1:]...)
			return &c, nil
		}
	}
	return nil, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Render draws the grid: '@' is the player, '*' a wild combatant, '.'
// empty ground.
func (m *Map) Render() string {
	occupied := make(map[Position]bool, len(m.wilds))
	for _, w := range m.wilds {
		occupied[w.Pos] = true
	}
	var b strings.Builder
	border := "+" + strings.Repeat("-", m.size*2+1) + "+\n"
	b.WriteString(border)
	for y := 0; y < m.size; y++ {
		b.WriteString("| ")
		for x := 0; x < m.size; x++ {
			p := Position{X: x, Y: y}
			switch {
			case p == m.player:
				b.WriteByte('@')
			case occupied[p]:
				b.WriteByte('*')
			default:
				b.WriteByte('.')
			}
			b.WriteByte(' ')
		}
		b.WriteString("|\n")
	}
	b.WriteString(border)
	return b.String()
}
