package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"jarvis-cli/internal/alarms"
	"jarvis-cli/internal/client"
	"jarvis-cli/internal/notify"
	"jarvis-cli/internal/playback"
	"jarvis-cli/pkg/models"
)

type tab int

const (
	tabAlarms tab = iota
	tabSounds
	tabSettings
	tabAudio
	tabScenes
)

var tabNames = [...]string{"Alarme", "Sounds", "Einstellungen", "Audio", "Szenen"}

const (
	volumeStep     = 0.05
	brightnessStep = 5.0
)

// messages delivered into the update loop
type (
	alarmsMsg   []models.AlarmSnapshot
	playbackMsg playback.State
	toastsMsg   []notify.Toast

	optionsMsg  models.AlarmOptions
	settingsMsg models.GlobalSettings
	audioMsg    []models.AudioSystem
	scenesMsg   []string

	createResultMsg struct{ err error }
	errMsg          struct{ err error }
)

// soundRow is one line of the sounds tab; header rows have an empty id.
type soundRow struct {
	id    string
	label string
}

// Model is the dashboard state. All mutable shared state lives in the
// store, the coordinator and the toast center; the model only mirrors
// their latest snapshots for rendering.
type Model struct {
	api    *client.JarvisClient
	store  *alarms.Store
	coord  *playback.Coordinator
	center *notify.Center

	alarmCh <-chan []models.AlarmSnapshot
	stateCh <-chan playback.State
	toastCh <-chan []notify.Toast
	cancels []func()

	active tab
	width  int
	height int

	alarms      []models.AlarmSnapshot
	alarmCursor int
	creating    bool
	createInput textinput.Model

	soundRows   []soundRow
	soundCursor int
	options     models.AlarmOptions

	settings models.GlobalSettings

	systems     []models.AudioSystem
	audioCursor int

	scenes      []string
	sceneCursor int

	state  playback.State
	toasts []notify.Toast
}

// NewModel wires the dashboard around a device client.
func NewModel(api *client.JarvisClient) Model {
	center := notify.NewCenter()
	store := alarms.NewStore(api)
	coord := playback.New(api, playback.WithErrorHandler(func(err error) {
		center.Error("Wiedergabe", userMessage(err))
	}))

	ti := textinput.New()
	ti.Placeholder = "HH:MM"
	ti.CharLimit = 6
	ti.Width = 12

	m := Model{
		api:         api,
		store:       store,
		coord:       coord,
		center:      center,
		createInput: ti,
	}

	var cancel func()
	m.alarmCh, cancel = store.Subscribe()
	m.cancels = append(m.cancels, cancel)
	m.stateCh, cancel = coord.Subscribe()
	m.cancels = append(m.cancels, cancel)
	m.toastCh, cancel = center.Subscribe()
	m.cancels = append(m.cancels, cancel)

	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.waitAlarms(),
		m.waitPlayback(),
		m.waitToasts(),
		m.refreshAlarms(),
		m.loadOptions(),
		m.loadSettings(),
		m.loadAudio(),
		m.loadScenes(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case alarmsMsg:
		m.alarms = msg
		if m.alarmCursor >= len(m.alarms) {
			m.alarmCursor = max(0, len(m.alarms)-1)
		}
		return m, m.waitAlarms()

	case playbackMsg:
		m.state = playback.State(msg)
		return m, m.waitPlayback()

	case toastsMsg:
		m.toasts = msg
		return m, m.waitToasts()

	case optionsMsg:
		m.options = models.AlarmOptions(msg)
		m.soundRows = buildSoundRows(m.options)
		if m.soundCursor >= len(m.soundRows) {
			m.soundCursor = 0
		}
		m.soundCursor = nextSelectable(m.soundRows, m.soundCursor, +1)
		return m, nil

	case settingsMsg:
		m.settings = models.GlobalSettings(msg)
		return m, nil

	case audioMsg:
		m.systems = msg
		if m.audioCursor >= len(m.systems) {
			m.audioCursor = max(0, len(m.systems)-1)
		}
		return m, nil

	case scenesMsg:
		m.scenes = msg
		if m.sceneCursor >= len(m.scenes) {
			m.sceneCursor = max(0, len(m.scenes)-1)
		}
		return m, nil

	case createResultMsg:
		if msg.err != nil {
			// The prompt stays open with the typed time so the user
			// can correct it.
			m.center.Error("Alarm", userMessage(msg.err))
			return m, nil
		}
		m.creating = false
		m.createInput.SetValue("")
		m.createInput.Blur()
		m.center.Success("Alarm", "Alarm erstellt")
		return m, nil

	case errMsg:
		if client.IsUnavailable(msg.err) {
			m.center.Warning("Gerät", userMessage(msg.err))
		} else {
			m.center.Error("Gerät", userMessage(msg.err))
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The create prompt captures everything except quit.
	if m.creating {
		switch msg.String() {
		case "ctrl+c":
			return m.quit()
		case "esc":
			m.creating = false
			m.createInput.Blur()
			return m, nil
		case "enter":
			return m, m.createAlarm(m.createInput.Value())
		}
		var cmd tea.Cmd
		m.createInput, cmd = m.createInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m.quit()
	case "tab", "right":
		m.active = (m.active + 1) % tab(len(tabNames))
		return m, nil
	case "shift+tab", "left":
		m.active = (m.active + tab(len(tabNames)) - 1) % tab(len(tabNames))
		return m, nil
	case "r":
		return m, m.reloadActive()
	}

	switch m.active {
	case tabAlarms:
		return m.handleAlarmsKey(msg)
	case tabSounds:
		return m.handleSoundsKey(msg)
	case tabSettings:
		return m.handleSettingsKey(msg)
	case tabAudio:
		return m.handleAudioKey(msg)
	case tabScenes:
		return m.handleScenesKey(msg)
	}
	return m, nil
}

func (m Model) handleAlarmsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.alarmCursor > 0 {
			m.alarmCursor--
		}
	case "down", "j":
		if m.alarmCursor < len(m.alarms)-1 {
			m.alarmCursor++
		}
	case "enter", " ":
		if m.alarmCursor < len(m.alarms) {
			a := m.alarms[m.alarmCursor]
			return m, m.toggleAlarm(a.AlarmID, !a.Active)
		}
	case "d":
		if m.alarmCursor < len(m.alarms) {
			return m, m.deleteAlarm(m.alarms[m.alarmCursor].AlarmID)
		}
	case "n":
		m.creating = true
		m.createInput.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) handleSoundsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.soundCursor = nextSelectable(m.soundRows, m.soundCursor-1, -1)
	case "down", "j":
		m.soundCursor = nextSelectable(m.soundRows, m.soundCursor+1, +1)
	case "enter", " ":
		if row, ok := m.selectedSound(); ok {
			return m, m.togglePreview(row.id)
		}
	case "s":
		return m, m.stopPreview()
	case "w":
		if row, ok := m.selectedSound(); ok {
			return m, m.assignWakeUpSound(row.id)
		}
	case "g":
		if row, ok := m.selectedSound(); ok {
			return m, m.assignGetUpSound(row.id)
		}
	}
	return m, nil
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "+", "=":
		return m, m.setVolume(m.settings.Volume + volumeStep)
	case "-", "_":
		return m, m.setVolume(m.settings.Volume - volumeStep)
	case "B":
		return m, m.setBrightness(m.settings.MaxBrightness + brightnessStep)
	case "b":
		return m, m.setBrightness(m.settings.MaxBrightness - brightnessStep)
	}
	return m, nil
}

func (m Model) handleAudioKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.audioCursor > 0 {
			m.audioCursor--
		}
	case "down", "j":
		if m.audioCursor < len(m.systems)-1 {
			m.audioCursor++
		}
	case "enter", " ":
		if m.audioCursor < len(m.systems) {
			return m, m.activateAudio(m.systems[m.audioCursor].ID)
		}
	}
	return m, nil
}

func (m Model) handleScenesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.sceneCursor > 0 {
			m.sceneCursor--
		}
	case "down", "j":
		if m.sceneCursor < len(m.scenes)-1 {
			m.sceneCursor++
		}
	case "enter", " ":
		if m.sceneCursor < len(m.scenes) {
			return m, m.previewScene(m.scenes[m.sceneCursor])
		}
	}
	return m, nil
}

// quit stops any device playback before leaving the dashboard, so audio
// never keeps running once its controls are gone.
func (m Model) quit() (tea.Model, tea.Cmd) {
	for _, cancel := range m.cancels {
		cancel()
	}
	coord := m.coord
	return m, tea.Sequence(
		func() tea.Msg {
			coord.StopAll(context.Background())
			return nil
		},
		tea.Quit,
	)
}

// subscription pumps: each arms a read on its channel and re-arms when
// the message is handled.

func (m Model) waitAlarms() tea.Cmd {
	ch := m.alarmCh
	return func() tea.Msg { return alarmsMsg(<-ch) }
}

func (m Model) waitPlayback() tea.Cmd {
	ch := m.stateCh
	return func() tea.Msg { return playbackMsg(<-ch) }
}

func (m Model) waitToasts() tea.Cmd {
	ch := m.toastCh
	return func() tea.Msg { return toastsMsg(<-ch) }
}

// loaders and mutations; each runs on its own goroutine inside the tea
// runtime.

func (m Model) refreshAlarms() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		if err := store.Refresh(context.Background()); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func (m Model) loadOptions() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		opts, err := api.GetAlarmOptions(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return optionsMsg(opts)
	}
}

func (m Model) loadSettings() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		settings, err := api.GetSettings(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return settingsMsg(settings)
	}
}

func (m Model) loadAudio() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		systems, err := api.GetAudioSystems(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return audioMsg(systems)
	}
}

func (m Model) loadScenes() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		scenes, err := api.GetAvailableScenes(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return scenesMsg(scenes)
	}
}

func (m Model) reloadActive() tea.Cmd {
	switch m.active {
	case tabAlarms:
		return m.refreshAlarms()
	case tabSounds:
		return m.loadOptions()
	case tabSettings:
		return m.loadSettings()
	case tabAudio:
		return m.loadAudio()
	case tabScenes:
		return m.loadScenes()
	}
	return nil
}

func (m Model) toggleAlarm(alarmID string, active bool) tea.Cmd {
	store, center := m.store, m.center
	return func() tea.Msg {
		if err := store.Toggle(context.Background(), alarmID, active); err != nil {
			center.Error("Alarm", userMessage(err))
		}
		return nil
	}
}

func (m Model) deleteAlarm(alarmID string) tea.Cmd {
	store, center := m.store, m.center
	return func() tea.Msg {
		if err := store.Delete(context.Background(), alarmID); err != nil {
			center.Error("Alarm", userMessage(err))
			return nil
		}
		center.Success("Alarm", "Alarm gelöscht")
		return nil
	}
}

func (m Model) createAlarm(alarmTime string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		return createResultMsg{err: store.Create(context.Background(), alarmTime)}
	}
}

func (m Model) togglePreview(soundID string) tea.Cmd {
	coord, center := m.coord, m.center
	return func() tea.Msg {
		if err := coord.Toggle(context.Background(), soundID); err != nil {
			center.Error("Wiedergabe", userMessage(err))
		}
		return nil
	}
}

func (m Model) stopPreview() tea.Cmd {
	coord := m.coord
	return func() tea.Msg {
		coord.StopAll(context.Background())
		return nil
	}
}

func (m Model) setVolume(v float64) tea.Cmd {
	api := m.api
	v = clamp(v, m.options.VolumeRange.Min, m.options.VolumeRange.Max)
	return func() tea.Msg {
		if _, err := api.SetVolume(context.Background(), v); err != nil {
			return errMsg{err}
		}
		settings, err := api.GetSettings(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return settingsMsg(settings)
	}
}

func (m Model) setBrightness(b float64) tea.Cmd {
	api := m.api
	b = clamp(b, float64(m.options.BrightnessRange.Min), float64(m.options.BrightnessRange.Max))
	return func() tea.Msg {
		if _, err := api.SetBrightness(context.Background(), b); err != nil {
			return errMsg{err}
		}
		settings, err := api.GetSettings(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return settingsMsg(settings)
	}
}

func (m Model) assignWakeUpSound(soundID string) tea.Cmd {
	api, center := m.api, m.center
	return func() tea.Msg {
		if _, err := api.SetWakeUpSound(context.Background(), soundID); err != nil {
			return errMsg{err}
		}
		center.Success("Einstellungen", "Weck-Sound gespeichert")
		settings, err := api.GetSettings(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return settingsMsg(settings)
	}
}

func (m Model) assignGetUpSound(soundID string) tea.Cmd {
	api, center := m.api, m.center
	return func() tea.Msg {
		if _, err := api.SetGetUpSound(context.Background(), soundID); err != nil {
			return errMsg{err}
		}
		center.Success("Einstellungen", "Aufsteh-Sound gespeichert")
		settings, err := api.GetSettings(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return settingsMsg(settings)
	}
}

func (m Model) activateAudio(systemID string) tea.Cmd {
	api, center := m.api, m.center
	return func() tea.Msg {
		resp, err := api.ActivateAudioSystem(context.Background(), systemID)
		if err != nil {
			return errMsg{err}
		}
		center.Success("Audio", resp.Message)
		systems, err := api.GetAudioSystems(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return audioMsg(systems)
	}
}

func (m Model) previewScene(name string) tea.Cmd {
	api, center := m.api, m.center
	return func() tea.Msg {
		resp, err := api.ActivateSceneTemporarily(context.Background(), name, 0)
		if err != nil {
			return errMsg{err}
		}
		center.Info("Szenen", resp.Message)
		return nil
	}
}

func (m Model) selectedSound() (soundRow, bool) {
	if m.soundCursor < 0 || m.soundCursor >= len(m.soundRows) {
		return soundRow{}, false
	}
	row := m.soundRows[m.soundCursor]
	return row, row.id != ""
}

// buildSoundRows flattens both catalogs into one list with section
// headers.
func buildSoundRows(opts models.AlarmOptions) []soundRow {
	rows := make([]soundRow, 0, len(opts.WakeUpSounds)+len(opts.GetUpSounds)+2)
	if len(opts.WakeUpSounds) > 0 {
		rows = append(rows, soundRow{label: "Weck-Sounds"})
		for _, s := range opts.WakeUpSounds {
			rows = append(rows, soundRow{id: s.ID, label: s.Label})
		}
	}
	if len(opts.GetUpSounds) > 0 {
		rows = append(rows, soundRow{label: "Aufsteh-Sounds"})
		for _, s := range opts.GetUpSounds {
			rows = append(rows, soundRow{id: s.ID, label: s.Label})
		}
	}
	return rows
}

// nextSelectable moves from idx in the given direction to the nearest
// row that is not a section header, staying in bounds.
func nextSelectable(rows []soundRow, idx, dir int) int {
	if len(rows) == 0 {
		return 0
	}
	idx = min(max(idx, 0), len(rows)-1)
	for rows[idx].id == "" {
		next := idx + dir
		if next < 0 || next >= len(rows) {
			// No selectable row in that direction; walk the other way.
			dir = -dir
			next = idx + dir
			if next < 0 || next >= len(rows) {
				return idx
			}
		}
		idx = next
	}
	return idx
}

// userMessage renders an error the way the dashboard shows it. Store
// input errors already carry display text; everything else gets the
// server detail or a generic wording.
func userMessage(err error) string {
	var dup *alarms.DuplicateAlarmError
	var invalid *alarms.InvalidTimeError
	switch {
	case errors.Is(err, alarms.ErrTimeRequired), errors.As(err, &dup), errors.As(err, &invalid):
		return err.Error()
	case client.IsNetwork(err):
		return "Gerät nicht erreichbar"
	case client.IsUnavailable(err):
		return "Hue Bridge nicht erreichbar"
	}
	if detail := client.Detail(err); detail != "" {
		return detail
	}
	return err.Error()
}

// clamp bounds v to [lo, hi], passing it through untouched while the
// slider ranges have not been fetched yet (lo == hi == 0).
func clamp(v, lo, hi float64) float64 {
	if hi > lo {
		return min(max(v, lo), hi)
	}
	return v
}
