package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/bitlab"
	"github.com/wippyai/bitlab/adder"
	"github.com/wippyai/bitlab/bitwise"
	"github.com/wippyai/bitlab/config"
	"github.com/wippyai/bitlab/errors"
	"github.com/wippyai/bitlab/fixed"
	"github.com/wippyai/bitlab/radix"
	"github.com/wippyai/bitlab/schedule"
	"github.com/wippyai/bitlab/segment"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	segmentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF3333")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type tab int

const (
	tabConverter tab = iota
	tabTypes
	tabBitwise
	tabAdder
	tabCounter
	tabCount
)

var tabNames = [tabCount]string{"Converter", "Data types", "Bit operations", "Adder", "Counter"}

// counterMsg and stepMsg arrive from timer goroutines through the events channel.
type (
	counterMsg segment.State
	stepMsg    struct{ gen, step int }
)

type interactiveModel struct {
	ctx      context.Context
	cfg      *config.Config
	log      *zap.Logger
	registry *schedule.Registry
	events   chan tea.Msg
	err      error
	tab      tab

	convInput textinput.Model
	convFrom  bitlab.Radix

	typeIdx   int
	typeInput textinput.Model
	typeBits  bool
	typeCur   int

	bwInputs [2]textinput.Model
	bwFocus  int // 0 and 1 edit A and B as text, 2 and 3 toggle their bits
	bwWidth  bitlab.Width
	bwCur    int

	addInputs [2]textinput.Model
	addFocus  int
	addWidth  bitlab.Width
	stepper   *adder.Stepper
	stepperH  schedule.Handle
	stepGen   int
	step      int

	counter *segment.Counter
	cstate  segment.State
}

func newInteractiveModel(ctx context.Context, cfg *config.Config, log *zap.Logger) *interactiveModel {
	m := &interactiveModel{
		ctx:      ctx,
		cfg:      cfg,
		log:      log,
		registry: schedule.NewRegistry(),
		events:   make(chan tea.Msg, 64),
		convFrom: cfg.Converter.From,
		bwWidth:  cfg.Bitwise.Width,
		addWidth: cfg.Adder.Width,
	}

	m.convInput = newInput("value: ", cfg.Converter.Value)
	m.convInput.Focus()

	for i, t := range fixed.DataTypes {
		if strings.EqualFold(t.Name, cfg.Encoder.Type) {
			m.typeIdx = i
		}
	}
	m.typeInput = newInput("decimal: ", cfg.Encoder.Value)
	m.typeInput.Focus()

	m.bwInputs[0] = newInput("A: ", cfg.Bitwise.A)
	m.bwInputs[1] = newInput("B: ", cfg.Bitwise.B)
	m.bwInputs[0].Focus()

	m.addInputs[0] = newInput("A: ", cfg.Adder.A)
	m.addInputs[1] = newInput("B: ", cfg.Adder.B)
	m.addInputs[0].Focus()

	m.counter = segment.NewCounter(nil)
	_ = m.counter.SetMax(cfg.Counter.Max)
	_ = m.counter.SetRadix(cfg.Counter.Radix)
	_ = m.counter.SetSpeed(cfg.Counter.Speed)
	m.counter.OnChange(func(s segment.State) { m.post(counterMsg(s)) })
	m.cstate = m.counter.State()
	m.registry.Insert(m.counter)

	return m
}

func newInput(prompt, value string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Width = 24
	ti.SetValue(value)
	return ti
}

// post hands a message to the event loop without blocking the caller.
func (m *interactiveModel) post(msg tea.Msg) {
	select {
	case m.events <- msg:
	default:
		m.log.Debug("dropped ui event", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

func (m *interactiveModel) waitForEvent() tea.Msg {
	return <-m.events
}

func (m *interactiveModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForEvent)
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case counterMsg:
		m.cstate = segment.State(msg)
		return m, m.waitForEvent

	case stepMsg:
		if msg.gen == m.stepGen && m.stepper != nil {
			m.step = msg.step
			if msg.step == 0 {
				m.stopStepper()
			}
		}
		return m, m.waitForEvent

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.tab = (m.tab + 1) % tabCount
			m.err = nil
			return m, nil
		case "shift+tab":
			m.tab = (m.tab + tabCount - 1) % tabCount
			m.err = nil
			return m, nil
		}

		switch m.tab {
		case tabConverter:
			return m, m.updateConverter(msg)
		case tabTypes:
			return m, m.updateTypes(msg)
		case tabBitwise:
			return m, m.updateBitwise(msg)
		case tabAdder:
			return m, m.updateAdder(msg)
		case tabCounter:
			m.updateCounter(msg)
			return m, nil
		}

	default:
		if in := m.focused(); in != nil {
			var cmd tea.Cmd
			*in, cmd = in.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// focused returns the text input receiving keys on the current tab, if any.
func (m *interactiveModel) focused() *textinput.Model {
	switch m.tab {
	case tabConverter:
		return &m.convInput
	case tabTypes:
		if !m.typeBits {
			return &m.typeInput
		}
	case tabBitwise:
		if m.bwFocus < 2 {
			return &m.bwInputs[m.bwFocus]
		}
	case tabAdder:
		return &m.addInputs[m.addFocus]
	}
	return nil
}

func (m *interactiveModel) updateConverter(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+n" {
		m.convFrom = next(bitlab.Radices, m.convFrom)
		return nil
	}
	var cmd tea.Cmd
	m.convInput, cmd = m.convInput.Update(msg)
	return cmd
}

func (m *interactiveModel) typeValue() (fixed.Value, error) {
	return fixed.FromInput(m.typeInput.Value(), fixed.DataTypes[m.typeIdx])
}

func (m *interactiveModel) updateTypes(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+n":
		m.typeIdx = (m.typeIdx + 1) % len(fixed.DataTypes)
		m.typeCur = 0
		return nil
	case "up", "down":
		m.typeBits = !m.typeBits
		if m.typeBits {
			m.typeInput.Blur()
		} else {
			m.typeInput.Focus()
		}
		return nil
	}

	if !m.typeBits {
		var cmd tea.Cmd
		m.typeInput, cmd = m.typeInput.Update(msg)
		return cmd
	}

	w := int(fixed.DataTypes[m.typeIdx].Width)
	switch msg.String() {
	case "left", "h":
		m.typeCur = (m.typeCur + w - 1) % w
	case "right", "l":
		m.typeCur = (m.typeCur + 1) % w
	case " ", "enter":
		v, err := m.typeValue()
		if err == nil {
			v, err = v.Toggle(m.typeCur)
		}
		if err != nil {
			m.err = err
			return nil
		}
		m.typeInput.SetValue(v.String())
	}
	return nil
}

func (m *interactiveModel) updateBitwise(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+n":
		m.bwWidth = next(m.cfg.Bitwise.Widths, m.bwWidth)
		m.bwCur = 0
		return nil
	case "up", "down":
		m.bwInputs[m.bwFocus%2].Blur()
		if msg.String() == "down" {
			m.bwFocus = (m.bwFocus + 1) % 4
		} else {
			m.bwFocus = (m.bwFocus + 3) % 4
		}
		if m.bwFocus < 2 {
			m.bwInputs[m.bwFocus].Focus()
		}
		return nil
	}

	if m.bwFocus < 2 {
		var cmd tea.Cmd
		m.bwInputs[m.bwFocus], cmd = m.bwInputs[m.bwFocus].Update(msg)
		return cmd
	}

	w := int(m.bwWidth)
	in := &m.bwInputs[m.bwFocus-2]
	switch msg.String() {
	case "left", "h":
		m.bwCur = (m.bwCur + w - 1) % w
	case "right", "l":
		m.bwCur = (m.bwCur + 1) % w
	case " ", "enter":
		bits := fixed.LowBits(radix.ParseOrZero(in.Value()), m.bwWidth)
		_, v, err := fixed.Toggle(bits, m.bwCur, false)
		if err != nil {
			m.err = err
			return nil
		}
		in.SetValue(v.String())
	}
	return nil
}

func (m *interactiveModel) updateAdder(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+n":
		m.addWidth = next(m.cfg.Adder.Widths, m.addWidth)
		m.stopStepper()
		return nil
	case "up", "down":
		m.addInputs[m.addFocus].Blur()
		m.addFocus = 1 - m.addFocus
		m.addInputs[m.addFocus].Focus()
		return nil
	case "enter":
		m.startStepper()
		return nil
	}
	m.stopStepper()
	var cmd tea.Cmd
	m.addInputs[m.addFocus], cmd = m.addInputs[m.addFocus].Update(msg)
	return cmd
}

func (m *interactiveModel) addResult() (adder.Result, error) {
	return adder.AddInput(m.addInputs[0].Value(), m.addInputs[1].Value(), m.addWidth)
}

func (m *interactiveModel) startStepper() {
	m.stopStepper()
	r, err := m.addResult()
	if err != nil {
		m.err = err
		return
	}
	m.stepGen++
	gen := m.stepGen
	s := adder.NewStepper(r, m.cfg.Adder.StepInterval, nil)
	s.OnStep(func(n int) { m.post(stepMsg{gen: gen, step: n}) })
	if err := s.Start(m.ctx); err != nil {
		m.err = err
		return
	}
	m.stepper = s
	m.stepperH = m.registry.Insert(s)
	m.step = 0
}

func (m *interactiveModel) stopStepper() {
	if m.stepper == nil {
		return
	}
	m.registry.Remove(m.stepperH)
	m.stepper = nil
	m.stepperH = 0
	m.step = 0
}

func (m *interactiveModel) updateCounter(msg tea.KeyMsg) {
	var err error
	switch msg.String() {
	case " ", "enter":
		if m.counter.Running() {
			m.counter.Stop()
		} else {
			err = m.counter.Start(m.ctx)
		}
	case "r":
		m.counter.Reset()
	case "m":
		err = m.counter.SetMax(next(segment.MaxPresets, m.cstate.Modulus-1))
	case "s":
		err = m.counter.SetSpeed(next(segment.SpeedPresets, m.cstate.Speed))
	case "b":
		err = m.counter.SetRadix(next(bitlab.Radices, m.cstate.Radix))
	}
	if err != nil {
		m.err = err
	}
	m.cstate = m.counter.State()
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("bitlab"))
	b.WriteString(" ")
	for i, name := range tabNames {
		if tab(i) == m.tab {
			b.WriteString(activeTabStyle.Render(name))
		} else {
			b.WriteString(tabStyle.Render(name))
		}
	}
	b.WriteString("\n\n")

	switch m.tab {
	case tabConverter:
		m.viewConverter(&b)
	case tabTypes:
		m.viewTypes(&b)
	case tabBitwise:
		m.viewBitwise(&b)
	case tabAdder:
		m.viewAdder(&b)
	case tabCounter:
		m.viewCounter(&b)
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab/shift+tab switch • esc quit"))
	return b.String()
}

func (m *interactiveModel) viewConverter(b *strings.Builder) {
	fmt.Fprintf(b, "%s  %s\n\n", m.convInput.View(), labelStyle.Render("base "+m.convFrom.String()))
	for _, r := range radix.Table(m.convInput.Value(), m.convFrom) {
		fmt.Fprintf(b, "%-12s %s\n", labelStyle.Render(r.Name), valueStyle.Render(r.String()))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("ctrl+n input base"))
	b.WriteString("\n")
}

func (m *interactiveModel) viewTypes(b *strings.Builder) {
	t := fixed.DataTypes[m.typeIdx]
	fmt.Fprintf(b, "%s %s  %s\n", labelStyle.Render("type:"), valueStyle.Render(t.Name), t.Description)
	fmt.Fprintf(b, "%s %s  (%d bytes)\n\n", labelStyle.Render("range:"), t.Summary(), t.Bytes())
	b.WriteString(m.typeInput.View())
	b.WriteString("\n\n")

	v, err := m.typeValue()
	if err != nil {
		b.WriteString(errorStyle.Render(err.Error()))
		b.WriteString("\n")
		return
	}
	fmt.Fprintf(b, "%s %s\n", labelStyle.Render("stored:"), valueStyle.Render(v.String()))
	fmt.Fprintf(b, "%s %s\n", labelStyle.Render("bits:  "), renderBits(v.Binary(), m.typeCur, m.typeBits))
	fmt.Fprintf(b, "%s %s\n\n", labelStyle.Render("memory:"), strings.Join(v.Bytes(), " "))
	b.WriteString(helpStyle.Render("ctrl+n type • ↑/↓ edit bits • ←/→ move • space toggle"))
	b.WriteString("\n")
}

func (m *interactiveModel) viewBitwise(b *strings.Builder) {
	fmt.Fprintf(b, "%s %d bits\n\n", labelStyle.Render("width:"), m.bwWidth)

	x := radix.ParseOrZero(m.bwInputs[0].Value())
	y := radix.ParseOrZero(m.bwInputs[1].Value())
	operands := []*big.Int{x, y}
	for i := range m.bwInputs {
		bits := fixed.LowBits(operands[i], m.bwWidth)
		fmt.Fprintf(b, "%s  %s\n", m.bwInputs[i].View(), renderBits(bits, m.bwCur, m.bwFocus == i+2))
	}
	b.WriteString("\n")

	results, err := bitwise.Evaluate(x, y, m.bwWidth)
	if err != nil {
		b.WriteString(errorStyle.Render(err.Error()))
		b.WriteString("\n")
		return
	}
	for _, r := range results {
		fmt.Fprintf(b, "%-16s %-4s %s  %s\n",
			labelStyle.Render(r.Op.Name()), r.Symbol, valueStyle.Render(r.Binary), r.Value)
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("ctrl+n width • ↑/↓ field or bits • ←/→ move • space toggle"))
	b.WriteString("\n")
}

func (m *interactiveModel) viewAdder(b *strings.Builder) {
	fmt.Fprintf(b, "%s %d bits\n\n", labelStyle.Render("width:"), m.addWidth)
	for i := range m.addInputs {
		b.WriteString(m.addInputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	r, err := m.addResult()
	if err != nil {
		b.WriteString(errorStyle.Render(err.Error()))
		b.WriteString("\n")
		return
	}

	steps := r.Steps
	sum := r.BinarySum
	carries := strings.Join(r.Carries, "")
	if m.stepper != nil {
		steps = r.Steps[len(r.Steps)-m.step:]
		n := len(r.Steps)
		sum = strings.Repeat("?", n-m.step) + r.BinarySum[n-m.step:]
		carries = strings.Repeat(" ", n-m.step) + strings.Join(r.Carries[n-m.step:], "")
	}

	fmt.Fprintf(b, "%s  %s\n", labelStyle.Render("carry"), carries)
	fmt.Fprintf(b, "%s    %s  (%s)\n", labelStyle.Render("A"), r.BinaryA, r.A)
	fmt.Fprintf(b, "%s  + %s  (%s)\n", labelStyle.Render("B"), r.BinaryB, r.B)
	fmt.Fprintf(b, "%s    %s", labelStyle.Render("="), valueStyle.Render(sum))
	if m.stepper == nil {
		fmt.Fprintf(b, "  (%s)", r.Sum)
		if r.Overflow {
			b.WriteString(errorStyle.Render("  overflow"))
		}
	}
	b.WriteString("\n\n")

	for i := len(steps) - 1; i >= 0; i-- {
		fmt.Fprintf(b, "bit %2d: %s\n", steps[i].Position, steps[i].Operation())
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("ctrl+n width • ↑/↓ field • enter animate"))
	b.WriteString("\n")
}

func (m *interactiveModel) viewCounter(b *strings.Builder) {
	s := m.cstate
	b.WriteString(segmentStyle.Render(segment.Render(s.Display)))
	b.WriteString("\n\n")

	status := "stopped"
	if s.Running {
		status = "running"
	}
	fmt.Fprintf(b, "%s %s  %s %d  %s %s  %s %d  %s %s\n",
		labelStyle.Render("value:"), valueStyle.Render(s.Display),
		labelStyle.Render("modulus:"), s.Modulus,
		labelStyle.Render("base:"), s.Radix,
		labelStyle.Render("cycles:"), s.Cycles,
		labelStyle.Render("status:"), status)
	fmt.Fprintf(b, "%s %s\n\n", labelStyle.Render("speed:"), s.Speed)
	b.WriteString(helpStyle.Render("space start/stop • r reset • m modulus • s speed • b base"))
	b.WriteString("\n")
}

// renderBits highlights the bit under the cursor when active.
func renderBits(bits string, cur int, active bool) string {
	if !active || cur < 0 || cur >= len(bits) {
		return bits
	}
	return bits[:cur] + cursorStyle.Render(bits[cur:cur+1]) + bits[cur+1:]
}

// next returns the option after cur, wrapping around. An unknown cur gives the first option.
func next[T comparable](options []T, cur T) T {
	for i, o := range options {
		if o == cur {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

func runInteractive(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	m := newInteractiveModel(ctx, cfg, log)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	m.registry.Close()
	return err
}

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive explorer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.Unsupported(errors.PhaseDisplay, "tui without a terminal")
			}
			return runInteractive(cmd.Context(), a.cfg, a.log)
		},
	}
}
