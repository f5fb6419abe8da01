package loop

import (
	"math"

	"github.com/tomz197/meteors/internal/input"
	"github.com/tomz197/meteors/internal/loop/config"
	"github.com/tomz197/meteors/internal/physics"
)

// Action is what a button does when activated.
type Action int

const (
	ActionStart Action = iota
	ActionShowLeaderboard
	ActionQuit
	ActionRestart
	ActionMenu
	ActionBack
)

// Button is a clickable area on a non-playing screen, in field units.
type Button struct {
	Label  string
	Bounds physics.Rect
	Action Action
}

// Buttons returns the buttons of the current screen, top to bottom.
func (g *Game) Buttons() []Button {
	cx := math.Floor(g.field.Width / 2)
	cy := math.Floor(g.field.Height / 2)

	column := func(top float64, labels []string, actions []Action) []Button {
		buttons := make([]Button, len(labels))
		for i := range labels {
			buttons[i] = Button{
				Label: labels[i],
				Bounds: physics.Rect{
					X: cx - config.ButtonWidth/2,
					Y: cy + top + float64(i*config.ButtonSpacing),
					W: config.ButtonWidth,
					H: config.ButtonHeight,
				},
				Action: actions[i],
			}
		}
		return buttons
	}

	switch {
	case g.state == GameStateMenu && g.showLeaderboard:
		return []Button{{
			Label: "BACK",
			Bounds: physics.Rect{
				X: cx - config.BackButtonWidth/2,
				Y: g.field.Height - config.BackButtonBottom,
				W: config.BackButtonWidth,
				H: config.ButtonHeight,
			},
			Action: ActionBack,
		}}
	case g.state == GameStateMenu:
		return column(config.MenuButtonsY,
			[]string{"START GAME", "LEADERBOARD", "QUIT"},
			[]Action{ActionStart, ActionShowLeaderboard, ActionQuit})
	case g.state == GameStateGameOver:
		return column(config.OverButtonsY,
			[]string{"PLAY AGAIN", "MAIN MENU", "QUIT"},
			[]Action{ActionRestart, ActionMenu, ActionQuit})
	default:
		return nil
	}
}

// updateMenu handles the title screen and its leaderboard sub-screen.
func (g *Game) updateMenu(pressed input.Input) {
	if g.showLeaderboard && pressed.Escape {
		g.apply(ActionBack)
		return
	}
	if action, ok := g.activated(pressed); ok {
		g.apply(action)
	}
}

// updateGameOver handles the results screen. The session stays frozen.
func (g *Game) updateGameOver(pressed input.Input) {
	if pressed.Escape {
		g.apply(ActionMenu)
		return
	}
	if action, ok := g.activated(pressed); ok {
		g.apply(action)
	}
}

// activated hit-tests clicks against the screen's buttons, then handles
// keyboard focus. Returns the action to run, if any.
func (g *Game) activated(pressed input.Input) (Action, bool) {
	buttons := g.Buttons()
	if len(buttons) == 0 {
		return 0, false
	}

	for _, c := range pressed.Clicks {
		for i, b := range buttons {
			if b.Bounds.Contains(c.X, c.Y) {
				g.focus = i
				return b.Action, true
			}
		}
	}

	if pressed.Up {
		g.focus = (g.focus - 1 + len(buttons)) % len(buttons)
	}
	if pressed.Down {
		g.focus = (g.focus + 1) % len(buttons)
	}
	if pressed.Confirm || pressed.Shoot {
		return buttons[g.focus].Action, true
	}
	return 0, false
}

func (g *Game) apply(a Action) {
	switch a {
	case ActionStart, ActionRestart:
		g.startSession()
	case ActionShowLeaderboard:
		g.scores = g.board.Scores()
		g.showLeaderboard = true
		g.focus = 0
	case ActionBack:
		g.showLeaderboard = false
		g.focus = 1 // Back on the leaderboard button
	case ActionMenu:
		g.toMenu()
	case ActionQuit:
		g.quit()
	}
}
