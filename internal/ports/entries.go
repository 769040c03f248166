package ports

import "shellmenu/internal/types"

type EntrySourcePort interface {
	Entries(paths []string) (types.Selection, error)
}
