// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package incr

import "cogentcore.org/vecdoc/watch"

// OnCompiled implements the compile-actor sink: each successful
// revision is packed as a delta and handed to [Server.Publish].
func (s *Server) OnCompiled(rev *watch.Revision) {
	delta := s.PackDelta(rev.Doc)
	if s.Publish != nil {
		s.Publish(rev.ID, delta)
	}
}
