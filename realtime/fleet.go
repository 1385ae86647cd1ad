package realtime

import (
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/comalice/hostanim"
	"go.uber.org/zap"
)

// Fleet updates many hosts per frame on a bounded pool of reusable workers.
// Each host is updated by exactly one worker per frame, so hosts never see
// concurrent calls; hosts must not share features or mixers.
type Fleet struct {
	mu    sync.RWMutex
	hosts map[string]*hostanim.Host
	order []string

	// updateMu keeps frames from overlapping
	updateMu sync.Mutex
	pool     worker.DynamicWorkerPool
	taskID   int
}

// NewFleet creates a fleet backed by up to workers goroutines.
func NewFleet(workers int) *Fleet {
	if workers <= 0 {
		workers = 1
	}
	return &Fleet{
		hosts: make(map[string]*hostanim.Host),
		pool:  worker.NewDynamicWorkerPool(workers, 256, 1*time.Second),
	}
}

// Add registers h under its ID. A host with the same ID is not replaced.
func (f *Fleet) Add(h *hostanim.Host) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.hosts[h.ID()]; exists {
		Logger().Warn("host already in fleet", zap.String("host", h.ID()))
		return false
	}
	f.hosts[h.ID()] = h
	f.order = append(f.order, h.ID())
	return true
}

// Remove unregisters a host without discarding it.
func (f *Fleet) Remove(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.hosts[id]; !exists {
		return false
	}
	delete(f.hosts, id)
	f.order = slices.DeleteFunc(f.order, func(s string) bool { return s == id })
	return true
}

func (f *Fleet) Host(id string) (*hostanim.Host, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	h, ok := f.hosts[id]
	return h, ok
}

// IDs lists host IDs in insertion order
func (f *Fleet) IDs() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.order)
}

func (f *Fleet) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.order)
}

// Update advances every host by deltaMs and returns once all are done.
func (f *Fleet) Update(deltaMs float64) {
	f.updateMu.Lock()
	defer f.updateMu.Unlock()

	f.mu.RLock()
	hosts := make([]*hostanim.Host, 0, len(f.order))
	for _, id := range f.order {
		hosts = append(hosts, f.hosts[id])
	}
	f.mu.RUnlock()

	// per-frame barrier
	var wg sync.WaitGroup
	for _, h := range hosts {
		wg.Add(1)
		host := h
		id := f.taskID
		f.taskID++
		f.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				defer func() {
					if r := recover(); r != nil {
						Logger().Error("panic in host update",
							zap.String("host", host.ID()),
							zap.Any("panic", r))
					}
				}()
				host.Update(deltaMs)
				return nil, nil
			},
		})
	}
	wg.Wait()
}
