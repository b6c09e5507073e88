package manifest

// Manifest file names looked for in each template directory, in order.
const (
	FileName     = "template.yaml"
	TOMLFileName = "template.toml"
)

// DefaultDistribution is used for manifests that do not name one.
const DefaultDistribution = "local"

// TemplateManifest is the parsed form of a template.yaml file.
type TemplateManifest struct {
	Name               string          `yaml:"name" json:"name"`
	Distribution       string          `yaml:"distribution,omitempty" json:"distribution,omitempty"`
	Summary            string          `yaml:"summary,omitempty" json:"summary,omitempty"`
	Help               string          `yaml:"help,omitempty" json:"help,omitempty"`
	Category           string          `yaml:"category,omitempty" json:"category,omitempty"`
	NDots              *int            `yaml:"ndots,omitempty" json:"ndots,omitempty"`
	RequiresTempler    string          `yaml:"requires_templer,omitempty" json:"requires_templer,omitempty"`
	Files              string          `yaml:"files,omitempty" json:"files,omitempty"`
	RequiredTemplates  []string        `yaml:"required_templates,omitempty" json:"required_templates,omitempty"`
	RequiredStructures []string        `yaml:"required_structures,omitempty" json:"required_structures,omitempty"`
	EggPlugins         []string        `yaml:"egg_plugins,omitempty" json:"egg_plugins,omitempty"`
	UseLocalCommands   bool            `yaml:"use_local_commands,omitempty" json:"use_local_commands,omitempty"`
	PreRunMsg          string          `yaml:"pre_run_msg,omitempty" json:"pre_run_msg,omitempty"`
	PostRunMsg         string          `yaml:"post_run_msg,omitempty" json:"post_run_msg,omitempty"`
	Vars               []VarSpec       `yaml:"vars,omitempty" json:"vars,omitempty"`
	Structures         []StructureSpec `yaml:"structures,omitempty" json:"structures,omitempty"`
}

// VarSpec declares one template variable.
type VarSpec struct {
	Name        string              `yaml:"name" json:"name"`
	Kind        string              `yaml:"kind,omitempty" json:"kind,omitempty"`
	Title       string              `yaml:"title,omitempty" json:"title,omitempty"`
	Description string              `yaml:"description,omitempty" json:"description,omitempty"`
	Help        string              `yaml:"help,omitempty" json:"help,omitempty"`
	Page        string              `yaml:"page,omitempty" json:"page,omitempty"`
	Default     any                 `yaml:"default,omitempty" json:"default,omitempty"`
	Required    bool                `yaml:"required,omitempty" json:"required,omitempty"`
	Modes       *[]string           `yaml:"modes,omitempty" json:"modes,omitempty"`
	Echo        *bool               `yaml:"echo,omitempty" json:"echo,omitempty"`
	Min         *int                `yaml:"min,omitempty" json:"min,omitempty"`
	Max         *int                `yaml:"max,omitempty" json:"max,omitempty"`
	Choices     []string            `yaml:"choices,omitempty" json:"choices,omitempty"`
	Structures  map[string][]string `yaml:"structures,omitempty" json:"structures,omitempty"`
}

// StructureSpec registers an extra structure whose files live at Path,
// relative to the manifest's directory.
type StructureSpec struct {
	Name string `yaml:"name" json:"name"`
	Path string `yaml:"path" json:"path"`
}
