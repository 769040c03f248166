package shellfake

import (
	"fmt"
	"sort"
)

// Counts is a snapshot of outstanding native resources.
type Counts struct {
	ItemIDs        int
	Folders        int
	Menus          int
	Popups         int
	DoubleFrees    int
	DesktopRelease int
	MenusCreated   int
	PopupsCreated  int
	ThreadScopes   int
}

func (s *Shell) Counts() Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Counts{
		ItemIDs:        len(s.liveIDs),
		Folders:        s.liveFolders,
		Menus:          s.liveMenus,
		Popups:         len(s.livePopups),
		DoubleFrees:    s.doubleFrees,
		DesktopRelease: s.desktopRelease,
		MenusCreated:   s.menusCreated,
		PopupsCreated:  s.popupsCreated,
		ThreadScopes:   s.Entered - s.Left,
	}
}

// Leaks describes every unbalanced create/release pair. It is empty when
// the shell is balanced.
func (s *Shell) Leaks() []string {
	counts := s.Counts()
	var leaks []string
	if counts.ItemIDs != 0 {
		leaks = append(leaks, fmt.Sprintf("%d item identifiers not freed: %v", counts.ItemIDs, s.liveIDNames()))
	}
	if counts.Folders != 0 {
		leaks = append(leaks, fmt.Sprintf("%d folders not released", counts.Folders))
	}
	if counts.Menus != 0 {
		leaks = append(leaks, fmt.Sprintf("%d context menus not released", counts.Menus))
	}
	if counts.Popups != 0 {
		leaks = append(leaks, fmt.Sprintf("%d popup menus not destroyed", counts.Popups))
	}
	if counts.DoubleFrees != 0 {
		leaks = append(leaks, fmt.Sprintf("%d resources released twice", counts.DoubleFrees))
	}
	if counts.ThreadScopes != 0 {
		leaks = append(leaks, fmt.Sprintf("%d UI thread scopes not left", counts.ThreadScopes))
	}
	if counts.DesktopRelease != 0 {
		leaks = append(leaks, "namespace root released")
	}
	return leaks
}

func (s *Shell) liveIDNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.liveIDs))
	for _, name := range s.liveIDs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
