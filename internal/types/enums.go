package types

type Strategy string

const (
	StrategySingleParent Strategy = "single-parent"
	StrategyMultiParent  Strategy = "multi-parent"
)

type ExtendedVerbsMode string

const (
	// ExtendedVerbsAuto requests extended verbs when Shift is held.
	ExtendedVerbsAuto   ExtendedVerbsMode = "auto"
	ExtendedVerbsAlways ExtendedVerbsMode = "always"
	ExtendedVerbsNever  ExtendedVerbsMode = "never"
)

func ParseExtendedVerbsMode(value string) (ExtendedVerbsMode, bool) {
	switch ExtendedVerbsMode(value) {
	case ExtendedVerbsAuto, ExtendedVerbsAlways, ExtendedVerbsNever:
		return ExtendedVerbsMode(value), true
	case "":
		return ExtendedVerbsAuto, true
	default:
		return "", false
	}
}

type HostState int

const (
	HostUnconstructed HostState = iota
	HostConstructing
	HostLive
	HostDisposed
)

func (s HostState) String() string {
	switch s {
	case HostUnconstructed:
		return "unconstructed"
	case HostConstructing:
		return "constructing"
	case HostLive:
		return "live"
	case HostDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}
