package workspace

// ZOrder returns tile ids from bottom to top.
func (w *Workspace) ZOrder() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sortedOrderLocked()
}

// ZIndex returns the stacking index of id: its recency rank, plus
// NavigateBonus for Navigate tiles. Unknown ids return -1.
func (w *Workspace) ZIndex(id string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.zIndexLocked(id)
}

func (w *Workspace) zIndexLocked(id string) int {
	for i, o := range w.order {
		if o != id {
			continue
		}
		if t, ok := w.cat.Lookup(id); ok && t.Action.IsNavigate() {
			return i + NavigateBonus
		}
		return i
	}
	return -1
}

// Promote moves id to the top of the recency order. Promoting the top tile
// changes nothing.
func (w *Workspace) Promote(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.controllers[id]; !ok {
		return w.tileNotFound(id)
	}
	w.promoteLocked(id)
	return nil
}

func (w *Workspace) promoteLocked(id string) {
	last := len(w.order) - 1
	if last >= 0 && w.order[last] == id {
		return
	}
	for i, o := range w.order {
		if o == id {
			copy(w.order[i:], w.order[i+1:])
			w.order[last] = id
			return
		}
	}
}
