package session

// Context is the process-wide, in-memory holder of the active session and
// of the transient registration state between sign-up and finalize.
//
// It is not a source of truth (the persistent store is) and must be
// rehydrated from the Manager at startup before any command reads it.
// Command handlers run sequentially on one goroutine, so no locking.
type Context struct {
	current *Session
	pending *PendingRegistration
}

func NewContext() *Context {
	return &Context{}
}

// Session returns the active session, or nil when logged out.
func (c *Context) Session() *Session {
	return c.current
}

func (c *Context) SetSession(s Session) {
	c.current = &s
}

func (c *Context) ClearSession() {
	c.current = nil
}

// Token returns the active session token, or "" when logged out.
// Suitable as the api client's token provider.
func (c *Context) Token() string {
	if c.current == nil {
		return ""
	}
	return c.current.Token
}

// Pending returns the in-flight registration, or nil when none.
func (c *Context) Pending() *PendingRegistration {
	return c.pending
}

func (c *Context) SetPending(p PendingRegistration) {
	c.pending = &p
}

func (c *Context) ClearPending() {
	c.pending = nil
}
