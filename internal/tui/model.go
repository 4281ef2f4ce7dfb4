package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/novetrasys/npad/internal/calculation"
	"github.com/novetrasys/npad/internal/config"
	"github.com/novetrasys/npad/internal/domain"
	"github.com/novetrasys/npad/internal/presets"
	"github.com/novetrasys/npad/internal/tui/scenes"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Inputs
	configPath string
	presetName string
	registry   *presets.Registry
	parser     *config.InputParser
	policy     domain.ReviewCostPolicy

	// config is edited by the sliders; loaded is what reset restores
	config *domain.Configuration
	loaded *domain.Configuration
	source string

	engine *calculation.CalculationEngine

	// evalSeq numbers evaluations so that only the latest result is shown
	evalSeq         int
	valuation       *domain.Valuation
	evalErr         error
	baselinePending bool

	parametersModel *scenes.ParametersModel
	presetsModel    *scenes.PresetsModel
	resultsModel    *scenes.ResultsModel

	keys keyMap
	help help.Model

	// err is a load error; it replaces the whole screen
	err error

	loading bool
}

// NewModel creates a new application model. Inputs come from configPath when
// it is set, otherwise from the named preset of registry.
func NewModel(configPath string, registry *presets.Registry, presetName string) Model {
	if registry == nil {
		registry = presets.BuiltIn()
	}
	if presetName == "" {
		presetName = presets.DefaultName
	}
	return Model{
		currentScene:    SceneParameters,
		previousScene:   SceneParameters,
		configPath:      configPath,
		presetName:      presetName,
		registry:        registry,
		parser:          config.NewInputParserWithPresets(registry),
		policy:          domain.DefaultReviewCostPolicy(),
		engine:          calculation.NewCalculationEngine(),
		parametersModel: scenes.NewParametersModel(),
		presetsModel:    scenes.NewPresetsModel(registry),
		resultsModel:    scenes.NewResultsModel(),
		keys:            defaultKeyMap(),
		help:            help.New(),
		loading:         true,
		width:           80,
		height:          24,
	}
}

// WithPolicy sets the review-cost policy applied to presets and to
// configuration files without a review_policy
func (m Model) WithPolicy(policy domain.ReviewCostPolicy) Model {
	m.policy = policy
	m.parser = config.NewInputParserWithPresets(m.registry).WithReviewPolicy(policy)
	return m
}

// WithEngine replaces the calculation engine, e.g. to attach a logger
func (m Model) WithEngine(engine *calculation.CalculationEngine) Model {
	if engine != nil {
		m.engine = engine
	}
	return m
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	if m.configPath != "" {
		return loadConfigCmd(m.parser, m.configPath)
	}
	return loadPresetCmd(m.registry, m.presetName, m.policy)
}

// loadConfigCmd returns a command that loads the configuration file
func loadConfigCmd(parser *config.InputParser, path string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := parser.LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ConfigLoadedMsg{Config: cfg, Source: path}
	}
}

// loadPresetCmd returns a command that resolves a preset into a configuration
func loadPresetCmd(registry *presets.Registry, name string, policy domain.ReviewCostPolicy) tea.Cmd {
	return func() tea.Msg {
		p, ok := registry.Get(name)
		if !ok {
			return ErrorMsg{Err: fmt.Errorf("unknown preset %q", name)}
		}
		cfg := p.Configuration(policy)
		return ConfigLoadedMsg{Config: &cfg, Source: "preset " + p.Name}
	}
}

// evaluateCmd values cfg in the background. cfg is passed by value so later
// slider moves cannot race with the evaluation.
func evaluateCmd(seq int, cfg domain.Configuration, parser *config.InputParser, engine *calculation.CalculationEngine) tea.Cmd {
	return func() tea.Msg {
		if err := parser.ValidateConfiguration(&cfg); err != nil {
			return ValuationCompleteMsg{Seq: seq, Err: err}
		}
		v, err := engine.Evaluate(context.Background(), cfg.Assumptions, cfg.CaseInputs())
		return ValuationCompleteMsg{Seq: seq, Valuation: v, Err: err}
	}
}

// evaluate schedules an evaluation of the current configuration
func (m *Model) evaluate() tea.Cmd {
	if m.config == nil {
		return nil
	}
	m.evalSeq++
	return evaluateCmd(m.evalSeq, *m.config, m.parser, m.engine)
}

// Configuration returns the inputs as currently edited
func (m Model) Configuration() *domain.Configuration {
	return m.config
}

// Valuation returns the latest successful evaluation
func (m Model) Valuation() *domain.Valuation {
	return m.valuation
}

// CurrentScene returns the scene on screen
func (m Model) CurrentScene() Scene {
	return m.currentScene
}
