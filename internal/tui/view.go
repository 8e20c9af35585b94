package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"jarvis-cli/internal/notify"
	"jarvis-cli/internal/playback"
	"jarvis-cli/pkg/models"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("205")).Underline(true)
	sectionStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	cursorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	onStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	playingStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	stoppingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	toastSuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	toastErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	toastWarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	toastInfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Jarvis"))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render(m.api.Config.BaseURL))
	b.WriteString("\n\n")

	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.active {
	case tabAlarms:
		b.WriteString(m.renderAlarms())
	case tabSounds:
		b.WriteString(m.renderSounds())
	case tabSettings:
		b.WriteString(m.renderSettings())
	case tabAudio:
		b.WriteString(m.renderAudio())
	case tabScenes:
		b.WriteString(m.renderScenes())
	}

	if toasts := m.renderToasts(); toasts != "" {
		b.WriteString("\n")
		b.WriteString(toasts)
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render(m.footerHelp()))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderTabs() string {
	parts := make([]string, len(tabNames))
	for i, name := range tabNames {
		if tab(i) == m.active {
			parts[i] = activeTabStyle.Render(name)
		} else {
			parts[i] = tabStyle.Render(name)
		}
	}
	return strings.Join(parts, dimStyle.Render("│"))
}

func (m Model) renderAlarms() string {
	var b strings.Builder

	if len(m.alarms) == 0 {
		b.WriteString(dimStyle.Render("Keine Alarme angelegt."))
		b.WriteString("\n")
	}
	for i, a := range m.alarms {
		b.WriteString(cursorMarker(i == m.alarmCursor && !m.creating))
		if a.Active {
			b.WriteString(onStyle.Render("● "))
		} else {
			b.WriteString(dimStyle.Render("○ "))
		}
		b.WriteString(fmt.Sprintf("%-6s", a.Time))
		b.WriteString(dimStyle.Render(alarmInfo(a)))
		b.WriteString("\n")
	}

	if m.creating {
		b.WriteString("\n")
		b.WriteString("Neue Weckzeit (HH:MM oder +Sekunden): ")
		b.WriteString(m.createInput.View())
		b.WriteString("\n")
	}

	return b.String()
}

func alarmInfo(a models.AlarmSnapshot) string {
	if !a.Active {
		return "aus"
	}
	if a.TimeUntil == "" {
		return "an"
	}
	return "klingelt in " + a.TimeUntil
}

func (m Model) renderSounds() string {
	var b strings.Builder

	b.WriteString(m.renderPlaybackBanner())
	b.WriteString("\n\n")

	if len(m.soundRows) == 0 {
		b.WriteString(dimStyle.Render("Kein Sound-Katalog geladen."))
		b.WriteString("\n")
	}
	for i, row := range m.soundRows {
		if row.id == "" {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(sectionStyle.Render(row.label))
			b.WriteString("\n")
			continue
		}

		b.WriteString(cursorMarker(i == m.soundCursor))
		switch {
		case m.state.Playing(row.id):
			b.WriteString(playingStyle.Render("▶ " + row.label))
		case m.state.Phase == playback.PhaseStopping && m.state.SoundID == row.id:
			b.WriteString(stoppingStyle.Render("… " + row.label))
		default:
			b.WriteString("  " + row.label)
		}
		if suffix := m.assignmentSuffix(row.id); suffix != "" {
			b.WriteString(dimStyle.Render(suffix))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderPlaybackBanner() string {
	switch m.state.Phase {
	case playback.PhasePlaying:
		return playingStyle.Render("▶ " + m.soundLabel(m.state.SoundID))
	case playback.PhaseStopping:
		if m.state.SoundID == "" {
			return stoppingStyle.Render("stoppt …")
		}
		return stoppingStyle.Render("wechselt zu " + m.soundLabel(m.state.SoundID) + " …")
	}
	return dimStyle.Render("Nichts in Wiedergabe")
}

func (m Model) assignmentSuffix(soundID string) string {
	switch soundID {
	case m.settings.WakeUpSoundID:
		return "  (Weck-Sound)"
	case m.settings.GetUpSoundID:
		return "  (Aufsteh-Sound)"
	}
	return ""
}

func (m Model) renderSettings() string {
	var b strings.Builder

	sunrise := "aus"
	if m.settings.UseSunrise {
		sunrise = "an"
	}

	fmt.Fprintf(&b, "  %-16s %.2f\n", "Lautstärke", m.settings.Volume)
	fmt.Fprintf(&b, "  %-16s %.0f %%\n", "Max. Helligkeit", m.settings.MaxBrightness)
	fmt.Fprintf(&b, "  %-16s %s\n", "Sonnenaufgang", sunrise)
	fmt.Fprintf(&b, "  %-16s %d s\n", "Wecker-Timer", m.settings.WakeUpTimerDuration)
	fmt.Fprintf(&b, "  %-16s %s\n", "Weck-Sound", m.soundLabel(m.settings.WakeUpSoundID))
	fmt.Fprintf(&b, "  %-16s %s\n", "Aufsteh-Sound", m.soundLabel(m.settings.GetUpSoundID))

	return b.String()
}

func (m Model) renderAudio() string {
	var b strings.Builder

	if len(m.systems) == 0 {
		b.WriteString(dimStyle.Render("Keine Audio-Systeme gefunden."))
		b.WriteString("\n")
	}
	for i, sys := range m.systems {
		b.WriteString(cursorMarker(i == m.audioCursor))
		if sys.Active {
			b.WriteString(onStyle.Render("● " + sys.Name))
			b.WriteString(dimStyle.Render("  (aktiv)"))
		} else {
			b.WriteString("○ " + sys.Name)
		}
		if sys.Description != "" {
			b.WriteString(dimStyle.Render("  " + sys.Description))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderScenes() string {
	var b strings.Builder

	if len(m.scenes) == 0 {
		b.WriteString(dimStyle.Render("Keine Szenen geladen. Die Hue Bridge meldet sich eventuell später."))
		b.WriteString("\n")
	}
	for i, name := range m.scenes {
		b.WriteString(cursorMarker(i == m.sceneCursor))
		b.WriteString(name)
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderToasts() string {
	if len(m.toasts) == 0 {
		return ""
	}

	// Only the newest three fit the overlay; older ones expire on their
	// own timers anyway.
	toasts := m.toasts
	if len(toasts) > 3 {
		toasts = toasts[len(toasts)-3:]
	}

	var b strings.Builder
	for _, t := range toasts {
		style := toastInfoStyle
		switch t.Type {
		case notify.TypeSuccess:
			style = toastSuccessStyle
		case notify.TypeError:
			style = toastErrorStyle
		case notify.TypeWarning:
			style = toastWarningStyle
		}
		b.WriteString(style.Render("▌ " + t.Title + ": " + t.Message))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) footerHelp() string {
	if m.creating {
		return "enter speichern • esc abbrechen"
	}
	switch m.active {
	case tabAlarms:
		return "↑/↓ wählen • enter schalten • n neu • d löschen • r neu laden • tab Ansicht • q beenden"
	case tabSounds:
		return "↑/↓ wählen • enter abspielen/stoppen • s alles stoppen • w/g Sound zuweisen • q beenden"
	case tabSettings:
		return "+/- Lautstärke • B/b Helligkeit • r neu laden • tab Ansicht • q beenden"
	case tabAudio:
		return "↑/↓ wählen • enter aktivieren • r neu laden • tab Ansicht • q beenden"
	case tabScenes:
		return "↑/↓ wählen • enter Vorschau • r neu laden • tab Ansicht • q beenden"
	}
	return "q beenden"
}

func (m Model) soundLabel(soundID string) string {
	for _, row := range m.soundRows {
		if row.id == soundID {
			return row.label
		}
	}
	return soundID
}

func cursorMarker(active bool) string {
	if active {
		return cursorStyle.Render("▸ ")
	}
	return "  "
}
