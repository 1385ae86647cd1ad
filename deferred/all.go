package deferred

// All composes items into a single Deferred.
//
// The aggregate resolves with the ordered input values once every input has
// resolved. The first input to cancel or reject settles the aggregate the
// same way with that input's value or error. Whenever the aggregate settles,
// by any path including a direct Cancel or Resolve on it, every input that is
// still pending is settled the same way.
func All(items []Awaitable, opts ...Option[any]) *Deferred[any] {
	return join(items, func(values []any) any { return values }, opts)
}

// Join is All for callers that only care about completion. Cancel and
// reject propagate exactly as in All.
func Join(items []Awaitable, opts ...Option[struct{}]) *Signal {
	return join(items, func([]any) struct{} { return struct{}{} }, opts)
}

func join[T any](items []Awaitable, collect func([]any) T, opts []Option[T]) *Deferred[T] {
	inputs := make([]Awaitable, 0, len(items))
	for _, it := range items {
		if it != nil {
			inputs = append(inputs, it)
		}
	}

	result := &Deferred[T]{}
	result.propagate = append(result.propagate, func(s Status, v any, err error) {
		for _, it := range inputs {
			if it.Status() == StatusPending {
				it.settle(s, v, err)
			}
		}
	})
	for _, opt := range opts {
		opt(result)
	}

	values := make([]any, len(inputs))
	remaining := len(inputs)
	if remaining == 0 {
		result.Resolve(collect(values))
		return result
	}

	for i, it := range inputs {
		it.onSettled(func() {
			if result.status != StatusPending {
				return
			}
			switch it.Status() {
			case StatusResolved:
				values[i] = it.result()
				remaining--
				if remaining == 0 {
					result.Resolve(collect(values))
				}
			case StatusCancelled:
				result.settle(StatusCancelled, it.result(), nil)
			case StatusRejected:
				result.settle(StatusRejected, nil, it.Err())
			}
		})
		if result.status != StatusPending {
			break
		}
	}
	return result
}
