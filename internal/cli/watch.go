package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stenoboard/pkg/display"
	"github.com/matzehuels/stenoboard/pkg/errors"
	"github.com/matzehuels/stenoboard/pkg/geom"
	"github.com/matzehuels/stenoboard/pkg/host"
	"github.com/matzehuels/stenoboard/pkg/render/sink"
	"github.com/matzehuels/stenoboard/pkg/scene"
	"github.com/matzehuels/stenoboard/pkg/steno"
)

func (c *CLI) watchCommand() *cobra.Command {
	var (
		systemName string
		events     bool
		follow     bool
	)

	cmd := &cobra.Command{
		Use:   "watch [layout]",
		Short: "Show a live layout display in the terminal",
		Long: `Show a live layout display in the terminal.

Type a chord in dash notation (KAT, STKPW-RBGS, 1-9; "/" separates
strokes) and press enter to light up its keys. With --events, engine
events are read as JSON lines from stdin instead and the display follows
them as they arrive. With --follow, the layout file is reloaded whenever
it is saved; a document that fails to load leaves the display as it was.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			sys, err := c.system(systemName)
			if err != nil {
				return err
			}
			store, err := c.openPrefs(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			// The display logs into the view's status line instead of the
			// terminal it draws on.
			d := newHostDisplay(newLogger(io.Discard, logger.GetLevel()), store, geom.Size{})
			if !events {
				d.OnConfigChanged(ctx, display.ConfigFor(sys))
			}
			layoutPath := ""
			if len(args) == 1 && args[0] != builtinLayoutArg {
				layoutPath = args[0]
				if err := d.Load(ctx, layoutPath); err != nil {
					return err
				}
			}
			if follow && layoutPath == "" {
				return errors.New(errors.ErrCodeInvalidInput, "--follow needs a layout file")
			}

			m := newWatchModel(ctx, d, sys)
			opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
			if events {
				m.streaming = true
				opts = append(opts, tea.WithInput(nil))
			}
			p := tea.NewProgram(m, opts...)
			if events {
				go streamEvents(ctx, p, os.Stdin, d)
			}
			if follow {
				stop, err := followLayout(ctx, layoutPath, p.Send)
				if err != nil {
					return err
				}
				defer stop()
			}
			if _, err := p.Run(); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&systemName, "system", "s", "", "steno system for typed chords (default from config)")
	cmd.Flags().BoolVar(&events, "events", false, "read engine events as JSON lines from stdin")
	cmd.Flags().BoolVarP(&follow, "follow", "F", false, "reload the layout file when it changes")
	return cmd
}

// =============================================================================
// Messages
// =============================================================================

// frameMsg reports that an engine event was applied.
type frameMsg struct {
	event host.Event
}

// streamDoneMsg reports the end of the event stream.
type streamDoneMsg struct {
	stats host.Stats
	err   error
}

func streamEvents(ctx context.Context, p *tea.Program, r io.Reader, d *display.Display) {
	st, err := host.Run(ctx, r, d, host.WithAfter(func(_ context.Context, ev host.Event, _ *scene.Scene) error {
		p.Send(frameMsg{event: ev})
		return nil
	}))
	p.Send(streamDoneMsg{stats: st, err: err})
}

// =============================================================================
// watchModel
// =============================================================================

var (
	watchInputStyle  = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	watchPromptStyle = lipgloss.NewStyle().Foreground(colorCyan)
)

// watchModel is the bubbletea model of the live display.
type watchModel struct {
	ctx context.Context
	d   *display.Display
	sys steno.System

	input     string
	lastChord string
	status    string
	failed    bool
	streaming bool
	events    int

	cols, rows int
}

func newWatchModel(ctx context.Context, d *display.Display, sys steno.System) watchModel {
	return watchModel{ctx: ctx, d: d, sys: sys, cols: 80, rows: 24}
}

func (m watchModel) Init() tea.Cmd {
	return nil
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		m.d.Resize(geom.Size{W: float64(m.cols), H: float64(m.boardRows() * 2)})

	case frameMsg:
		m.events++
		m.status = fmt.Sprintf("event %d: %s", m.events, msg.event.Type)
		m.failed = false

	case streamDoneMsg:
		m.streaming = false
		if msg.err != nil && m.ctx.Err() == nil {
			m.status, m.failed = errors.UserMessage(msg.err), true
		} else {
			m.status = fmt.Sprintf("stream ended: %d applied, %d skipped", msg.stats.Applied, msg.stats.Skipped)
		}

	case layoutChangedMsg:
		m = m.reload(msg.path)

	case followErrMsg:
		m.status, m.failed = "watch: "+msg.err.Error(), true

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEsc:
			if m.input == "" {
				return m, tea.Quit
			}
			m.input = ""
		case tea.KeyCtrlR:
			m.d.Reset(m.ctx)
			m.input, m.lastChord = "", ""
			m.status, m.failed = "reset to "+m.d.LayoutName(), false
		case tea.KeyBackspace:
			if n := len(m.input); n > 0 {
				m.input = m.input[:n-1]
			}
		case tea.KeyEnter:
			m = m.stroke()
		case tea.KeySpace:
			m = m.stroke()
		case tea.KeyRunes:
			if !m.streaming {
				m.input += strings.ToUpper(string(msg.Runes))
			}
		}
	}
	return m, nil
}

// stroke applies the typed outline. Each stroke of a multi-stroke outline
// is sent in turn, so the last one stays lit.
func (m watchModel) stroke() watchModel {
	if m.input == "" {
		return m
	}
	strokes, err := m.sys.ParseStrokes(m.input)
	if err != nil {
		m.status, m.failed = errors.UserMessage(err), true
		return m
	}
	for _, keys := range strokes {
		m.d.OnStroke(m.ctx, keys)
	}
	m.lastChord, m.input = m.input, ""
	m.status, m.failed = "", false
	return m
}

// reload replaces the layout with the saved file. Preferences keep the
// path chosen at startup.
func (m watchModel) reload(path string) watchModel {
	data, err := os.ReadFile(path)
	if err != nil {
		m.status, m.failed = err.Error(), true
		return m
	}
	if err := m.d.LoadJSON(m.ctx, data); err != nil {
		m.status, m.failed = "kept previous layout: "+errors.UserMessage(err), true
		return m
	}
	m.lastChord = ""
	m.status, m.failed = "reloaded "+m.d.LayoutName(), false
	return m
}

// boardRows is the height left for the keyboard below the header and above
// the status lines.
func (m watchModel) boardRows() int {
	return max(4, m.rows-6)
}

func (m watchModel) View() string {
	var b strings.Builder

	st := m.d.State()
	title := StyleTitle.Render(st.Layout)
	if st.System != "" {
		title += StyleDim.Render(" · " + st.System)
	}
	b.WriteString(title + "\n\n")

	sc := m.d.Scene()
	b.WriteString(sink.RenderTerminal(sc, sink.WithTermSize(m.cols, m.boardRows())))
	b.WriteString("\n")
	b.WriteString(frameStats(len(sc.Items), sc.Pressed()))
	b.WriteString("\n")

	if m.streaming {
		b.WriteString(watchPromptStyle.Render("events ›") + " " + StyleDim.Render("reading stdin"))
	} else {
		b.WriteString(watchPromptStyle.Render("chord ›") + " " + watchInputStyle.Render(m.input))
		if m.lastChord != "" && m.input == "" {
			b.WriteString(StyleDim.Render(m.lastChord))
		}
	}
	b.WriteString("\n")

	switch {
	case m.failed:
		b.WriteString(StyleError.Render(m.status))
	case m.status != "":
		b.WriteString(StyleDim.Render(m.status))
	default:
		b.WriteString(StyleDim.Render("enter/space stroke · esc clear · ctrl+r reset · ctrl+c quit"))
	}
	return b.String()
}
