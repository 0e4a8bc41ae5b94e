package workspace

// deferredActivator records the action chosen while the workspace lock is
// held; runPending performs it once the lock is released.
type deferredActivator struct{ w *Workspace }

func (d deferredActivator) Navigate(path string) error {
	act := d.w.opts.Activator
	d.w.pending = func() error { return act.Navigate(path) }
	return nil
}

func (d deferredActivator) OpenExternal(url string) error {
	act := d.w.opts.Activator
	d.w.pending = func() error { return act.OpenExternal(url) }
	return nil
}

func (d deferredActivator) ComposeEmail(addr string) error {
	act := d.w.opts.Activator
	d.w.pending = func() error { return act.ComposeEmail(addr) }
	return nil
}
