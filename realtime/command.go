package realtime

import (
	"sort"

	"github.com/comalice/hostanim"
)

// Command is work to run against the host on the tick goroutine
type Command struct {
	Name     string // used in logs
	Priority int
	Apply    func(*hostanim.Host)
}

// commandWithMeta adds sequencing metadata for deterministic ordering
type commandWithMeta struct {
	Command
	SequenceNum uint64
}

// sortCommands orders commands deterministically
func sortCommands(cmds []commandWithMeta) {
	// Stable sort preserves insertion order for equal priorities
	sort.SliceStable(cmds, func(i, j int) bool {
		if cmds[i].Priority != cmds[j].Priority {
			return cmds[i].Priority > cmds[j].Priority
		}
		return cmds[i].SequenceNum < cmds[j].SequenceNum
	})
}
