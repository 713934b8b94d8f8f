//go:build termgame_debug

package engine

const fatalInvariants = true
