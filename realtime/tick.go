package realtime

import (
	"go.uber.org/zap"
)

// processTick processes one complete tick
func (rt *Runtime) processTick() {
	// Phase 1: Take this tick's commands in deterministic order
	cmds := rt.collectCommands()

	// Phase 2: Apply them against the host
	rt.applyCommands(cmds)

	// Phase 3: Advance waits, features and the mixer
	rt.host.Update(rt.tickMs)
}

// collectCommands sorts the queue and removes at most maxPerTick commands
// from its front. The remainder stays queued.
func (rt *Runtime) collectCommands() []commandWithMeta {
	rt.batchMu.Lock()
	defer rt.batchMu.Unlock()

	sortCommands(rt.batch)

	n := min(len(rt.batch), rt.maxPerTick)
	cmds := make([]commandWithMeta, n)
	copy(cmds, rt.batch[:n])

	rest := rt.batch[n:]
	rt.batch = make([]commandWithMeta, len(rest), max(cap(rt.batch), rt.maxPerTick))
	copy(rt.batch, rest)

	return cmds
}

// applyCommands runs each command; a panicking command is logged and skipped
func (rt *Runtime) applyCommands(cmds []commandWithMeta) {
	for _, cmd := range cmds {
		func() {
			defer func() {
				if r := recover(); r != nil {
					Logger().Error("panic in command",
						zap.String("host", rt.host.ID()),
						zap.String("command", cmd.Name),
						zap.Uint64("seq", cmd.SequenceNum),
						zap.Any("panic", r))
				}
			}()
			cmd.Apply(rt.host)
		}()
	}
}
