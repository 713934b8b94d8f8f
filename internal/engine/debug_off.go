//go:build !termgame_debug

package engine

// fatalInvariants makes render invariant violations panic. Build with the
// termgame_debug tag to enable it.
const fatalInvariants = false
