package adapters

import "shellmenu/internal/types"

// CMIC_MASK_* values understood by IContextMenu::InvokeCommand.
const (
	cmicMaskNoAsync     uint32 = 0x00000100
	cmicMaskFlagNoUI    uint32 = 0x00000400
	cmicMaskUnicode     uint32 = 0x00004000
	cmicMaskShiftDown   uint32 = 0x10000000
	cmicMaskPtInvoke    uint32 = 0x20000000
	cmicMaskControlDown uint32 = 0x40000000
)

// invokeMask is always unicode and point-invoked; the remaining bits follow
// the modifier state and invoke options.
func invokeMask(info types.InvokeInfo) uint32 {
	mask := cmicMaskUnicode | cmicMaskPtInvoke
	if info.ControlDown {
		mask |= cmicMaskControlDown
	}
	if info.ShiftDown {
		mask |= cmicMaskShiftDown
	}
	if info.NoAsync {
		mask |= cmicMaskNoAsync
	}
	if info.NoUI {
		mask |= cmicMaskFlagNoUI
	}
	return mask
}
