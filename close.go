package seedforge

// Close stops the search and joins every worker before returning. Safe to
// call more than once.
func (s *Search) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	if s.cancel != nil {
		s.cancel()
	}
	if s.sched != nil {
		return s.sched.Close()
	}
	return nil
}
