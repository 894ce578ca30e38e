package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// App holds CLI flags for the assessment definition
type App struct {
	configPath string
}

// Flags returns CLI flags for the assessment configuration
func (a *App) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to assessment definition TOML file",
			Required:    true,
			Sources:     cli.EnvVars("THEMIS_CONFIG"),
			Destination: &a.configPath,
		},
	}
}

// Path returns the configured assessment definition path
func (a *App) Path() string {
	return a.configPath
}

// Configure loads, validates and converts the assessment definition
func (a *App) Configure() (*model.Schema, *model.RecommendationTable, error) {
	cfg, err := LoadAssessmentConfig(a.configPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg.ToSchema(), cfg.ToRecommendationTable(), nil
}

// AssessmentConfig is the TOML shape of one assessment variant: the
// question schema plus the static recommendation tables
type AssessmentConfig struct {
	Name           string                `toml:"name"`
	Mode           string                `toml:"mode"`
	Categories     []CategoryConfig      `toml:"category"`
	Recommendation *RecommendationConfig `toml:"recommendation"`
}

// CategoryConfig represents one assessed tenet in the TOML file
type CategoryConfig struct {
	ID          string           `toml:"id"`
	Name        string           `toml:"name"`
	Description string           `toml:"description"`
	Summary     string           `toml:"summary"`
	Questions   []QuestionConfig `toml:"question"`
}

// QuestionConfig represents a question with its ordered options
type QuestionConfig struct {
	Text    string         `toml:"text"`
	Options []OptionConfig `toml:"option"`
}

// OptionConfig represents one answer choice and its risk weight
type OptionConfig struct {
	Text string `toml:"text"`
	Risk int    `toml:"risk"`
}

// RecommendationConfig holds the declarative guidance tables
type RecommendationConfig struct {
	Guidance      []GuidanceConfig     `toml:"guidance"`
	PriorityNotes map[string]string    `toml:"priority_note"`
	Tenets        []TenetActionsConfig `toml:"tenet"`
}

// GuidanceConfig is one overall recommendation entry
type GuidanceConfig struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Sources     string `toml:"sources"`
}

// TenetActionsConfig binds action templates to a tenet
type TenetActionsConfig struct {
	ID          string                `toml:"id"`
	Immediate   *ActionTemplateConfig `toml:"immediate"`
	Recommended *ActionTemplateConfig `toml:"recommended"`
}

// ActionTemplateConfig is the guidance attached to one severity bucket
type ActionTemplateConfig struct {
	Focus     string          `toml:"focus"`
	Standards string          `toml:"standards"`
	Controls  []ControlConfig `toml:"control"`
}

// ControlConfig groups action items under a control family
type ControlConfig struct {
	Name  string   `toml:"name"`
	Items []string `toml:"items"`
}

// Validate checks if the category configuration is valid
func (c *CategoryConfig) Validate() error {
	id := types.TenetID(c.ID)
	if err := id.Validate(); err != nil {
		return goerr.Wrap(err, "invalid tenet ID")
	}
	if c.Name == "" {
		return goerr.Wrap(ErrMissingName, "category name is required", goerr.V(TenetIDKey, c.ID))
	}
	if len(c.Questions) == 0 {
		return goerr.Wrap(ErrMissingQuestions, "category has no questions", goerr.V(TenetIDKey, c.ID))
	}
	for qi, q := range c.Questions {
		if q.Text == "" {
			return goerr.Wrap(ErrMissingName, "question text is required",
				goerr.V(TenetIDKey, c.ID), goerr.V(QuestionIndexKey, qi))
		}
		if len(q.Options) < 2 {
			return goerr.Wrap(ErrMissingOptions, "question needs at least two options",
				goerr.V(TenetIDKey, c.ID), goerr.V(QuestionIndexKey, qi))
		}
		for oi, opt := range q.Options {
			if opt.Text == "" {
				return goerr.Wrap(ErrMissingName, "option text is required",
					goerr.V(TenetIDKey, c.ID), goerr.V(QuestionIndexKey, qi), goerr.V(OptionIndexKey, oi))
			}
			if err := types.RiskWeight(opt.Risk).Validate(); err != nil {
				return goerr.Wrap(ErrInvalidRiskWeight, "option risk weight out of range",
					goerr.V(TenetIDKey, c.ID), goerr.V(QuestionIndexKey, qi),
					goerr.V(OptionIndexKey, oi), goerr.V("risk", opt.Risk))
			}
		}
	}
	return nil
}

// Validate checks if the whole assessment configuration is valid
func (a *AssessmentConfig) Validate() error {
	if a.Name == "" {
		return goerr.Wrap(ErrMissingName, "assessment name is required")
	}
	if !types.ScoringMode(a.Mode).IsValid() {
		return goerr.Wrap(ErrInvalidMode, "unknown scoring mode", goerr.V("mode", a.Mode))
	}
	if len(a.Categories) == 0 {
		return goerr.Wrap(ErrInvalidConfig, "assessment requires at least one category")
	}

	tenetIDs := make(map[string]bool)
	for i, cat := range a.Categories {
		if err := cat.Validate(); err != nil {
			return goerr.Wrap(err, "invalid category", goerr.V(CategoryIndexKey, i))
		}
		if tenetIDs[cat.ID] {
			return goerr.Wrap(ErrDuplicateTenetID, "tenet ID used twice", goerr.V(TenetIDKey, cat.ID))
		}
		tenetIDs[cat.ID] = true
	}

	if a.Recommendation == nil {
		return nil
	}

	for level := range a.Recommendation.PriorityNotes {
		if !types.Level(level).IsValid() {
			return goerr.Wrap(ErrInvalidLevel, "priority note keyed by unknown level", goerr.V("level", level))
		}
	}

	seen := make(map[string]bool)
	for _, tenet := range a.Recommendation.Tenets {
		if !tenetIDs[tenet.ID] {
			return goerr.Wrap(ErrUnknownTenet, "recommendation tenet has no matching category",
				goerr.V(TenetIDKey, tenet.ID))
		}
		if seen[tenet.ID] {
			return goerr.Wrap(ErrDuplicateTenetID, "recommendation tenet listed twice",
				goerr.V(TenetIDKey, tenet.ID))
		}
		seen[tenet.ID] = true
	}

	return nil
}

// LoadAssessmentConfig loads an assessment definition from a TOML file
func LoadAssessmentConfig(path string) (*AssessmentConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var cfg AssessmentConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V(ConfigPathKey, path))
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return &cfg, nil
}

// ToSchema converts the configuration to the domain schema
func (a *AssessmentConfig) ToSchema() *model.Schema {
	categories := make([]model.Category, len(a.Categories))
	for i, cat := range a.Categories {
		questions := make([]model.Question, len(cat.Questions))
		for qi, q := range cat.Questions {
			options := make([]model.Option, len(q.Options))
			for oi, opt := range q.Options {
				options[oi] = model.Option{
					Text:   opt.Text,
					Weight: types.RiskWeight(opt.Risk),
				}
			}
			questions[qi] = model.Question{
				Text:    q.Text,
				Options: options,
			}
		}
		categories[i] = model.Category{
			ID:          types.TenetID(cat.ID),
			Name:        cat.Name,
			Description: cat.Description,
			Summary:     cat.Summary,
			Questions:   questions,
		}
	}

	return &model.Schema{
		Name:       a.Name,
		Mode:       types.ScoringMode(a.Mode),
		Categories: categories,
	}
}

// ToRecommendationTable converts the guidance tables to the domain shape.
// It returns nil when the configuration carries no recommendation section.
func (a *AssessmentConfig) ToRecommendationTable() *model.RecommendationTable {
	if a.Recommendation == nil {
		return nil
	}

	table := &model.RecommendationTable{
		Guidance:      make([]model.Guidance, len(a.Recommendation.Guidance)),
		PriorityNotes: make(map[types.Level]string, len(a.Recommendation.PriorityNotes)),
		Tenets:        make(map[types.TenetID]model.TenetActions, len(a.Recommendation.Tenets)),
	}

	for i, g := range a.Recommendation.Guidance {
		table.Guidance[i] = model.Guidance{
			Title:       g.Title,
			Description: g.Description,
			Sources:     g.Sources,
		}
	}

	for level, note := range a.Recommendation.PriorityNotes {
		table.PriorityNotes[types.Level(level)] = note
	}

	for _, tenet := range a.Recommendation.Tenets {
		table.Tenets[types.TenetID(tenet.ID)] = model.TenetActions{
			Immediate:   tenet.Immediate.toDomain(),
			Recommended: tenet.Recommended.toDomain(),
		}
	}

	return table
}

func (t *ActionTemplateConfig) toDomain() *model.ActionTemplate {
	if t == nil {
		return nil
	}
	controls := make([]model.ControlActions, len(t.Controls))
	for i, c := range t.Controls {
		controls[i] = model.ControlActions{
			Name:  c.Name,
			Items: c.Items,
		}
	}
	return &model.ActionTemplate{
		Focus:     t.Focus,
		Controls:  controls,
		Standards: t.Standards,
	}
}
