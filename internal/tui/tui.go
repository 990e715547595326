// Package tui provides a Bubble Tea terminal user interface for GLOBE
// photo downloads.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/IGES-Geospatial/globe-observer-go/internal/config"
	"github.com/IGES-Geospatial/globe-observer-go/internal/model"
	"github.com/IGES-Geospatial/globe-observer-go/internal/photos"
	"github.com/IGES-Geospatial/globe-observer-go/internal/table"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#43AA8B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#577590"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90BE6D"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F94144"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F9C74F"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4D908E"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#808A9F"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#43AA8B")).
			Padding(1, 2)

	protocolStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8961E"))
)

// State is the screen the UI is currently showing.
type State int

const (
	StateInput State = iota
	StateReading
	StateDownloading
	StateDone
	StateFailed
)

// LogEntry is one line of the scrolling event log.
type LogEntry struct {
	Message string
	Level   photos.ProgressLevel
}

// eventBuffer collects manager progress events until the next UI tick.
type eventBuffer struct {
	mu     sync.Mutex
	events []photos.ProgressEvent
}

func (b *eventBuffer) add(event photos.ProgressEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *eventBuffer) drain() []photos.ProgressEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	drained := b.events
	b.events = nil
	return drained
}

// Model holds the full state of the interactive downloader.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	err       error

	// Cancellation for the in-flight run
	ctx    context.Context
	cancel context.CancelFunc

	// Active download run
	manager *photos.Manager
	events  *eventBuffer
	targets int

	// Counters polled from the manager
	completedFiles int32
	totalFiles     int32

	// Choices made on the input screen
	protocol model.Protocol
	species  bool
	verbose  bool

	width  int
	height int
}

// NewModel builds the initial input-screen model.
func NewModel() Model {
	ti := textinput.New()
	ti.Placeholder = "mhm_2021-01-01_2021-05-31.csv"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#43AA8B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  config.DefaultSettings(),
		logs:      make([]LogEntry, 0),
		events:    &eventBuffer{},
		protocol:  model.MosquitoHabitatMapper,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Init starts cursor blink and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// TargetsMsg is sent when the input CSV has been read and the
	// download targets derived from it.
	TargetsMsg struct {
		Targets []model.Target
		Manager *photos.Manager
		Err     error
	}

	// DownloadDoneMsg is sent when the download run finishes.
	DownloadDoneMsg struct {
		Err error
	}

	// TickMsg drives the periodic progress poll.
	TickMsg struct{}
)

// Update routes incoming messages to whatever screen the UI is on.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 16
		if m.progress.Width > 72 {
			m.progress.Width = 72
		}
		if m.progress.Width < 24 {
			m.progress.Width = 24
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateDownloading || m.state == StateReading {
				m.cancel()
				m.state = StateFailed
				m.err = fmt.Errorf("download cancelled")
			}

		case "enter":
			if m.state == StateInput && m.textInput.Value() != "" {
				m.state = StateReading
				return m, tea.Batch(m.deriveTargets(), m.spinner.Tick)
			}

		case "p":
			if m.state == StateInput {
				if m.protocol == model.MosquitoHabitatMapper {
					m.protocol = model.LandCovers
				} else {
					m.protocol = model.MosquitoHabitatMapper
				}
			}

		case "s":
			if m.state == StateInput {
				m.species = !m.species
			}

		case "v":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}

		case "q":
			if m.state == StateDone || m.state == StateFailed {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateDone || m.state == StateFailed {
				// Back to a fresh input screen
				m.state = StateInput
				m.logs = nil
				m.err = nil
				m.manager = nil
				m.targets = 0
				m.completedFiles = 0
				m.totalFiles = 0
				m.events = &eventBuffer{}
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.SetValue("")
				m.textInput.Focus()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case TargetsMsg:
		if msg.Err != nil {
			m.state = StateFailed
			m.err = msg.Err
		} else if len(msg.Targets) == 0 {
			m.state = StateFailed
			m.err = fmt.Errorf("no photo URLs in %s", strings.TrimSpace(m.textInput.Value()))
		} else {
			m.manager = msg.Manager
			m.targets = len(msg.Targets)
			m.state = StateDownloading
			// Kick off the run and begin polling it
			cmds = append(cmds, m.startDownload(msg.Targets), m.tickProgress())
		}

	case DownloadDoneMsg:
		if m.manager != nil {
			m.completedFiles, m.totalFiles = m.manager.GetProgress()
		}
		m.logs = appendEvents(m.logs, m.events.drain(), m.verbose)
		if msg.Err != nil && m.ctx.Err() == nil {
			m.state = StateFailed
			m.err = msg.Err
		} else if m.ctx.Err() != nil {
			m.state = StateFailed
			m.err = fmt.Errorf("download cancelled")
		} else {
			m.state = StateDone
		}

	case TickMsg:
		// Poll the manager for fresh counts
		if m.manager != nil && m.state == StateDownloading {
			completed, total := m.manager.GetProgress()
			m.completedFiles = completed
			m.totalFiles = total
			m.logs = appendEvents(m.logs, m.events.drain(), m.verbose)

			// Animate the bar toward the completed fraction
			var percent float64
			if total > 0 {
				percent = float64(completed) / float64(total)
			}
			progressCmd := m.progress.SetPercent(percent)
			cmds = append(cmds, progressCmd, m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// The text input only reacts while the input screen is up
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// appendEvents folds manager events into the log pane, keeping the last
// ten entries.
func appendEvents(logs []LogEntry, events []photos.ProgressEvent, verbose bool) []LogEntry {
	for _, event := range events {
		if event.Level == photos.LevelVerbose && !verbose {
			continue
		}
		logs = append(logs, LogEntry{Message: event.Message, Level: event.Level})
	}
	if len(logs) > 10 {
		logs = logs[len(logs)-10:]
	}
	return logs
}

// tickProgress schedules the next progress poll.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the screen for the current state.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("📷 GLOBE Photo Downloader"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Download GLOBE Observer photos"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateReading:
		b.WriteString(m.viewReading())
	case StateDownloading:
		b.WriteString(m.viewDownloading())
	case StateDone:
		b.WriteString(m.viewDone())
	case StateFailed:
		b.WriteString(m.viewFailed())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.helpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter the path of a downloaded observation CSV:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	speciesCheck := "[ ]"
	if m.species {
		speciesCheck = "[×]"
	}
	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[×]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Protocol: %s (p)\n", protocolStyle.Render(protocolName(m.protocol))))
	if m.protocol == model.MosquitoHabitatMapper {
		b.WriteString(fmt.Sprintf("  %s Species in filenames (s)\n", speciesCheck))
	}
	b.WriteString(fmt.Sprintf("  %s Verbose/debug output (v)\n", verboseCheck))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Photos directory: %s", photosDirFor(m.textInput.Value()))))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewReading() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Reading observations..."))
	b.WriteString("\n\n")

	// Show logs
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewDownloading() string {
	var b strings.Builder

	b.WriteString(successStyle.Render(fmt.Sprintf("Found %d photos", m.targets)))
	b.WriteString("\n\n")

	// Progress bar
	var percent float64
	if m.totalFiles > 0 {
		percent = float64(m.completedFiles) / float64(m.totalFiles)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf("Photos: %d/%d", m.completedFiles, m.totalFiles)))
	b.WriteString("\n\n")

	// Logs
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewDone() string {
	var downloaded, skipped, failed int32
	if m.manager != nil {
		downloaded, skipped, failed = m.manager.Stats()
	}

	return boxStyle.Render(fmt.Sprintf(
		"✨ Download finished\n\n"+
			"Downloaded: %d\n"+
			"Skipped: %d\n"+
			"Failed: %d",
		downloaded,
		skipped,
		failed,
	))
}

func (m Model) viewFailed() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Something went wrong:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case photos.LevelError:
			style = errorStyle
			prefix = "✗"
		case photos.LevelWarning:
			style = warningStyle
			prefix = "!"
		case photos.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case photos.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) helpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • p: protocol • s: species • v: verbose • esc: quit"
	case StateReading, StateDownloading:
		return "esc: cancel"
	case StateDone, StateFailed:
		return "r: new download • q: quit"
	}
	return ""
}

// protocolName is the protocol label shown in the options pane.
func protocolName(p model.Protocol) string {
	if p == model.LandCovers {
		return "Land Cover"
	}
	return "Mosquito Habitat Mapper"
}

// photosDirFor places downloads in a photos directory next to the CSV.
func photosDirFor(csvPath string) string {
	return filepath.Join(filepath.Dir(strings.TrimSpace(csvPath)), "photos")
}

// deriveTargets reads the input CSV and builds the download target list.
func (m *Model) deriveTargets() tea.Cmd {
	return func() tea.Msg {
		csvPath := strings.TrimSpace(m.textInput.Value())
		directory := photosDirFor(csvPath)

		tbl, err := table.ReadCSVFile(csvPath)
		if err != nil {
			return TargetsMsg{Err: err}
		}

		var targets []model.Target
		switch m.protocol {
		case model.LandCovers:
			targets, err = photos.LandCoverTargets(tbl, directory, photos.LandCoverOptions{
				Up: true, Down: true, North: true, South: true, East: true, West: true,
			})
		default:
			targets, err = photos.MosquitoTargets(tbl, directory, photos.MosquitoOptions{
				Larvae:         true,
				WaterSource:    true,
				Abdomen:        true,
				IncludeSpecies: m.species,
			})
		}
		if err != nil {
			return TargetsMsg{Err: err}
		}

		// Manager events land in the buffer; progress ticks drain it
		manager := photos.NewManager(m.settings, m.events.add)

		return TargetsMsg{
			Targets: targets,
			Manager: manager,
			Err:     nil,
		}
	}
}

// startDownload runs the manager in the background and reports back.
func (m *Model) startDownload(targets []model.Target) tea.Cmd {
	return func() tea.Msg {
		if m.manager == nil {
			return DownloadDoneMsg{Err: fmt.Errorf("no download manager")}
		}

		return DownloadDoneMsg{Err: m.manager.DownloadPhotos(m.ctx, targets)}
	}
}

// Run launches the interactive downloader in the alternate screen.
func Run() error {
	p := tea.NewProgram(NewModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
