// Package engine implements the sprite lifecycle, scenes, incremental
// rendering and collision detection of the terminal game engine.
//
// A Sprite starts Abstract, becomes Placed when a Scene takes it and turns
// into a Zombie when killed. Zombies stay in their scene until the kill queue
// is drained at the end of the tick, so passes iterating the scene are never
// disturbed.
//
// Rendering is incremental. Each scene remembers what the terminal shows and
// which sprite drew each cell; a render pass only re-evaluates the cells
// covered by sprites that changed since the last pass and emits a write for
// each cell whose content differs.
package engine
