package runtime

// Lifecycle is implemented by widgets that need mount/unmount hooks.
type Lifecycle interface {
	Mount()
	Unmount()
}

// Bindable widgets receive app services when attached to a running app.
type Bindable interface {
	Bind(services Services)
}

// Unbindable widgets release app services when removed.
type Unbindable interface {
	Unbind()
}

// Walk calls visit for root and every descendant, parents first.
func Walk(root Widget, visit func(Widget)) {
	if root == nil {
		return
	}
	visit(root)
	if p, ok := root.(ChildProvider); ok {
		for _, child := range p.ChildWidgets() {
			Walk(child, visit)
		}
	}
}

// walkChildrenFirst is Walk in post-order, for teardown.
func walkChildrenFirst(root Widget, visit func(Widget)) {
	if root == nil {
		return
	}
	if p, ok := root.(ChildProvider); ok {
		for _, child := range p.ChildWidgets() {
			walkChildrenFirst(child, visit)
		}
	}
	visit(root)
}

// MountTree mounts root and then its children.
func MountTree(root Widget) {
	Walk(root, func(w Widget) {
		if m, ok := w.(Lifecycle); ok {
			m.Mount()
		}
	})
}

// UnmountTree unmounts children before their parent.
func UnmountTree(root Widget) {
	walkChildrenFirst(root, func(w Widget) {
		if m, ok := w.(Lifecycle); ok {
			m.Unmount()
		}
	})
}

// BindTree hands services to every Bindable widget. Zero services bind
// nothing.
func BindTree(root Widget, services Services) {
	if services.isZero() {
		return
	}
	Walk(root, func(w Widget) {
		if b, ok := w.(Bindable); ok {
			b.Bind(services)
		}
	})
}

// UnbindTree releases services, children first.
func UnbindTree(root Widget) {
	walkChildrenFirst(root, func(w Widget) {
		if u, ok := w.(Unbindable); ok {
			u.Unbind()
		}
	})
}
