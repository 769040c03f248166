package types

// MenuOptions tune how the popup is populated and how commands are invoked.
type MenuOptions struct {
	CommandFirst   uint32            `yaml:"command_first"`
	CommandLast    uint32            `yaml:"command_last"`
	Explore        bool              `yaml:"explore"`
	ExtendedVerbs  ExtendedVerbsMode `yaml:"extended_verbs"`
	NoAsync        bool              `yaml:"no_async"`
	NoUI           bool              `yaml:"no_ui"`
	VerbBufferSize int               `yaml:"verb_buffer_size"`
}

// DefaultMenuOptions reserves command ids 1..0x7FFF, the range Explorer uses
// for a top-level context menu.
func DefaultMenuOptions() MenuOptions {
	return MenuOptions{
		CommandFirst:   1,
		CommandLast:    0x7FFF,
		Explore:        true,
		ExtendedVerbs:  ExtendedVerbsAuto,
		NoAsync:        true,
		NoUI:           true,
		VerbBufferSize: 1024,
	}
}

// SelectionPlan is the partitioned view of a selection computed once per Show.
type SelectionPlan struct {
	Strategy         Strategy  `yaml:"strategy"`
	Entries          Selection `yaml:"entries"`
	Parents          []string  `yaml:"parents"`
	CommonParent     string    `yaml:"common_parent,omitempty"`
	WorkingDirectory string    `yaml:"working_directory"`
}
