package silo

// Hooks holds optional observability callbacks invoked by every Manager
// as entities and components come and go. All fields may be left nil.
// This is silo's only logging surface: it never logs on its own behalf,
// the same way the teacher library never imports a logger and instead
// exposes table.TableEvents for callers to wire in their own.
type Hooks struct {
	OnEntityCreated    func(EntityId)
	OnEntityDestroyed  func(EntityId)
	OnComponentAdded   func(EntityId, ComponentTypeID)
	OnComponentRemoved func(EntityId, ComponentTypeID)
}

// Config holds process-wide configuration for silo. Set it once during
// startup, before constructing Managers.
var Config config = config{}

type config struct {
	hooks Hooks
}

// SetHooks installs the observability callbacks used by all Managers.
func (c *config) SetHooks(h Hooks) {
	c.hooks = h
}

func (c *config) entityCreated(id EntityId) {
	if c.hooks.OnEntityCreated != nil {
		c.hooks.OnEntityCreated(id)
	}
}

func (c *config) entityDestroyed(id EntityId) {
	if c.hooks.OnEntityDestroyed != nil {
		c.hooks.OnEntityDestroyed(id)
	}
}

func (c *config) componentAdded(id EntityId, t ComponentTypeID) {
	if c.hooks.OnComponentAdded != nil {
		c.hooks.OnComponentAdded(id, t)
	}
}

func (c *config) componentRemoved(id EntityId, t ComponentTypeID) {
	if c.hooks.OnComponentRemoved != nil {
		c.hooks.OnComponentRemoved(id, t)
	}
}
