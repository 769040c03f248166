package types

// ItemID is a natively allocated shell item identifier (PIDL). The zero
// value is "no identifier".
type ItemID uintptr

type WindowHandle uintptr

type MenuHandle uintptr

type Point struct {
	X int32 `yaml:"x"`
	Y int32 `yaml:"y"`
}

type WindowMessage struct {
	Msg    uint32
	WParam uintptr
	LParam uintptr
}

const (
	WMCreate        uint32 = 0x0001
	WMClose         uint32 = 0x0010
	WMDrawItem      uint32 = 0x002B
	WMMeasureItem   uint32 = 0x002C
	WMNCCreate      uint32 = 0x0081
	WMNCDestroy     uint32 = 0x0082
	WMInitMenuPopup uint32 = 0x0117
	WMMenuChar      uint32 = 0x0120
)

type VirtualKey uint16

const (
	KeyShift   VirtualKey = 0x10
	KeyControl VirtualKey = 0x11
)

// QueryFlags mirror the CMF_* values passed to IContextMenu::QueryContextMenu.
type QueryFlags uint32

const (
	QueryNormal        QueryFlags = 0x00000000
	QueryExplore       QueryFlags = 0x00000004
	QueryExtendedVerbs QueryFlags = 0x00000100
)

func (f QueryFlags) Has(flag QueryFlags) bool {
	return f&flag == flag
}

// VerbOpen is the canonical verb of the default file-open action.
const VerbOpen = "open"

// ShowNormal is SW_SHOWNORMAL.
const ShowNormal int32 = 1

// InvokeInfo carries everything IContextMenu::InvokeCommand needs.
type InvokeInfo struct {
	CommandOffset uint32
	Point         Point
	Directory     string
	ControlDown   bool
	ShiftDown     bool
	NoAsync       bool
	NoUI          bool
	ShowCmd       int32
}
