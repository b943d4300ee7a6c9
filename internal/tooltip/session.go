package tooltip

import "gochart/internal/geom"

// Session follows one pointer over the plot. It lives from Enter to Leave;
// each resolution replaces the previous result.
type Session struct {
	cfg    Config
	r      *Resolver
	active bool
	last   *Result
}

// NewSession returns an idle session.
func NewSession(cfg Config) *Session {
	return &Session{cfg: cfg}
}

// SetResolver points the session at a new frame and drops the stale
// result.
func (s *Session) SetResolver(r *Resolver) {
	s.r = r
	s.last = nil
}

// Active reports whether the pointer is inside the chart.
func (s *Session) Active() bool { return s.active }

// Last returns the current result, nil when nothing is shown.
func (s *Session) Last() *Result { return s.last }

// Enter starts the session at p.
func (s *Session) Enter(p geom.Point) *Result {
	s.active = true
	s.last = nil
	if s.cfg.trigger() == OnMouseMove {
		s.last = s.r.Resolve(p)
	}
	return s.last
}

// Move updates the session with a new pointer position.
func (s *Session) Move(p geom.Point) *Result {
	if !s.active {
		return s.Enter(p)
	}
	if s.cfg.trigger() == OnMouseMove {
		s.last = s.r.Resolve(p)
	}
	return s.last
}

// Click resolves at p when the tooltip triggers on click.
func (s *Session) Click(p geom.Point) *Result {
	s.active = true
	if s.cfg.trigger() == OnClick {
		s.last = s.r.Resolve(p)
	}
	return s.last
}

// Show resolves at p whatever the trigger.
func (s *Session) Show(p geom.Point) *Result {
	s.active = true
	s.last = s.r.Resolve(p)
	return s.last
}

// Leave ends the session.
func (s *Session) Leave() {
	s.active = false
	s.last = nil
}
