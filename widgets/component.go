package widgets

import (
	"github.com/odvcencio/furry-tally/runtime"
	"github.com/odvcencio/furry-tally/state"
)

// Component is embedded by widgets that draw published values. Sources
// registered with Follow are subscribed on the app scheduler each time the
// component is bound and cancelled when it is unbound.
type Component struct {
	Base
	Services runtime.Services
	Subs     state.Subscriptions
	follows  []func()
}

// Bind attaches app services and subscribes every followed source.
func (c *Component) Bind(services runtime.Services) {
	c.Subs.Clear()
	c.Services = services
	c.Subs.SetScheduler(services.Scheduler())
	for _, follow := range c.follows {
		follow()
	}
}

// Unbind cancels subscriptions and drops app services.
func (c *Component) Unbind() {
	c.Subs.Clear()
	c.Services = runtime.Services{}
}

// Bound reports whether the component is attached to an app.
func (c *Component) Bound() bool {
	return c.Services != (runtime.Services{})
}

// Invalidate requests a render pass.
func (c *Component) Invalidate() {
	c.Services.Invalidate()
}

// Follow arranges for fn to receive src's values on the app goroutine
// whenever c is bound. Each delivery requests a render.
func Follow[T any](c *Component, src state.Readable[T], fn func(T)) {
	if src == nil || fn == nil {
		return
	}
	c.follows = append(c.follows, func() {
		Observe(c, src, fn)
	})
}

// Observe subscribes fn to src on the component's current scheduler and
// requests a render after each delivery.
func Observe[T any](c *Component, src state.Readable[T], fn func(T)) state.Subscription {
	return state.Observe(&c.Subs, src, func(v T) {
		fn(v)
		c.Invalidate()
	})
}
