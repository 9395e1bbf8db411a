// Package gochan implements typed, closable channels built from mutexes
// and condition variables, plus a Select combinator for waiting on
// several of them at once.
//
// Unlike native Go channels, these channels survive the operations that
// make native channels panic: Close is idempotent, Send on a closed
// channel returns an error instead of panicking, and a closed channel
// can still be drained of its pending values before receives start
// reporting exhaustion.
//
// The main components include:
//
//   - BufferChannel: A capacity-N channel backed by a fixed ring buffer, with blocking and non-blocking send/receive
//   - RendezvousChannel: A zero-capacity channel where Send does not return until a receiver consumes the value, using a ticket protocol for exactly-once handoff
//   - Chan: A unified channel that picks one of the two variants at construction time and adds the subscription hook needed to participate in Select
//   - Select: Tries each (channel, handler) case in order, then blocks on a per-call notification channel and dispatches the first ready case, at most once per call
//   - Reader: A goroutine wrapper that continuously calls a reader function and sends results into a Chan, with error signaling via ClosedChan()
//   - Mapper: Transform and/or filter data between two Chans
//   - Pipe: Connect two Chans with the identity transform
//   - FanIn: Merge multiple Chans into a single output Chan
//   - Reducer: Collect and reduce values from a Chan with configurable time windows
//
// All blocking operations are uninterruptible except by another
// goroutine calling Close; there are no timeouts. Callers must ensure
// no goroutine is still parked inside Send or Receive when a channel
// value is discarded.
package gochan
