package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// keyLabel maps a key press to the sample name used by the audio assets.
// Letters map to their uppercase form, everything else to a named key or
// the literal character.
func keyLabel(msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeySpace:
		return "SPACE"
	case tea.KeyBackspace, tea.KeyDelete:
		return "BACKSPACE"
	case tea.KeyEnter:
		return "ENTER"
	case tea.KeyTab:
		return "TAB"
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return ""
		}
		return strings.ToUpper(string(msg.Runes[0]))
	default:
		return ""
	}
}
