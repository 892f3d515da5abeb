package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/milk9111/platformer/sim"
)

var (
	summaryBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#444466")).
				Padding(0, 1)

	summaryTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ff8844")).
				Bold(true)

	completeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ff88")).
			Bold(true)

	gameOverStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff4444")).
			Bold(true)

	runningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#44aaff"))
)

func outcome(snap sim.Snapshot) string {
	switch {
	case snap.LevelComplete:
		return completeStyle.Render("level complete")
	case snap.GameOver:
		return gameOverStyle.Render("game over")
	default:
		return runningStyle.Render("still running")
	}
}

// renderSummary formats a finished run as a bordered box for the terminal.
func renderSummary(res result) string {
	snap := res.Snapshot
	var b strings.Builder
	b.WriteString(summaryTitleStyle.Render(res.Level))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Source:   %s\n", res.Source)
	fmt.Fprintf(&b, "Outcome:  %s\n", outcome(snap))
	fmt.Fprintf(&b, "Score:    %d\n", snap.Score)
	fmt.Fprintf(&b, "Coins:    %d/%d\n", snap.CollectedCoins(), len(snap.Coins))
	fmt.Fprintf(&b, "Ticks:    %d sim, %d frames\n", snap.Tick, res.Ticks)
	fmt.Fprintf(&b, "Player:   (%.1f, %.1f)", snap.Player.Position.X, snap.Player.Position.Y)
	return summaryBorderStyle.Render(b.String())
}
