package presets

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"github.com/novetrasys/npad/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// DefaultName is the name of the baseline preset.
const DefaultName = "Default"

// Preset is a named, fully specified starting point.
type Preset struct {
	Name        string                  `yaml:"name" json:"name"`
	Slug        string                  `yaml:"slug" json:"slug"`
	Description string                  `yaml:"description" json:"description"`
	Assumptions domain.AssumptionBundle `yaml:"assumptions" json:"assumptions"`
	ReviewCosts domain.ReviewCosts      `yaml:"review_costs" json:"review_costs"`
	Amounts     domain.CaseAmounts      `yaml:"amounts" json:"amounts"`
}

// Configuration turns the preset into an evaluation input using policy to
// resolve review costs.
func (p Preset) Configuration(policy domain.ReviewCostPolicy) domain.Configuration {
	return domain.Configuration{
		Preset:       p.Name,
		Assumptions:  p.Assumptions,
		ReviewCosts:  p.ReviewCosts,
		ReviewPolicy: policy,
		Amounts:      p.Amounts,
	}
}

// Validate checks the assumptions and review costs.
func (p Preset) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("preset name is required")
	}
	if err := p.Assumptions.Validate(); err != nil {
		return fmt.Errorf("preset %q: %w", p.Name, err)
	}
	if err := p.ReviewCosts.Validate(); err != nil {
		return fmt.Errorf("preset %q: %w", p.Name, err)
	}
	return nil
}

// Registry holds presets in catalog order.
type Registry struct {
	presets []Preset
	byKey   map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]int)}
}

// Register adds a preset, replacing any preset with the same name.
func (r *Registry) Register(p Preset) {
	if p.Slug == "" {
		p.Slug = Slugify(p.Name)
	}
	if i, ok := r.byKey[strings.ToLower(p.Name)]; ok {
		r.presets[i] = p
		r.byKey[p.Slug] = i
		return
	}
	r.presets = append(r.presets, p)
	i := len(r.presets) - 1
	r.byKey[strings.ToLower(p.Name)] = i
	r.byKey[p.Slug] = i
}

// Get looks a preset up by name (case-insensitive) or slug.
func (r *Registry) Get(name string) (Preset, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if i, ok := r.byKey[key]; ok {
		return r.presets[i], true
	}
	if i, ok := r.byKey[Slugify(key)]; ok {
		return r.presets[i], true
	}
	return Preset{}, false
}

// List returns the presets in catalog order.
func (r *Registry) List() []Preset {
	out := make([]Preset, len(r.presets))
	copy(out, r.presets)
	return out
}

// Names returns preset names in catalog order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.presets))
	for _, p := range r.presets {
		names = append(names, p.Name)
	}
	return names
}

// Help returns a formatted listing of the presets.
func (r *Registry) Help() string {
	if len(r.presets) == 0 {
		return "No presets registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Presets:\n\n")
	for _, p := range r.presets {
		sb.WriteString(fmt.Sprintf("  %-32s %-22s %s\n", p.Name, p.Slug, p.Description))
	}
	sb.WriteString("\nUsage:\n")
	sb.WriteString("  npad evaluate --preset tpa\n")
	sb.WriteString("  npad compare --base default --with hospital-cfo,stop-loss\n")
	return sb.String()
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases name and joins its words with dashes, dropping any
// parenthesised qualifier.
func Slugify(name string) string {
	s := strings.ToLower(name)
	if i := strings.Index(s, "("); i >= 0 {
		s = s[:i]
	}
	return strings.Trim(nonSlug.ReplaceAllString(s, "-"), "-")
}

type catalogFile struct {
	Presets []yaml.Node `yaml:"presets"`
}

// Parse reads a preset catalog. Keys missing from a preset take the default
// values.
func Parse(data []byte) (*Registry, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse preset catalog: %w", err)
	}

	registry := NewRegistry()
	for i := range file.Presets {
		p := Preset{
			Assumptions: domain.DefaultAssumptionBundle(),
			ReviewCosts: domain.DefaultReviewCosts(),
			Amounts:     domain.DefaultCaseAmounts(),
		}
		if err := file.Presets[i].Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to parse preset %d: %w", i, err)
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		registry.Register(p)
	}
	return registry, nil
}

var builtIn *Registry

func init() {
	r, err := Parse(catalogYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded preset catalog is invalid: %v", err))
	}
	builtIn = r
}

// BuiltIn returns the embedded preset catalog.
func BuiltIn() *Registry {
	return builtIn
}

// Default returns the baseline preset.
func Default() Preset {
	p, _ := builtIn.Get(DefaultName)
	return p
}
