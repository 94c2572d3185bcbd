// Package widgets holds stateless render primitives: bordered panes, stacks
// and the popup compositor. No key handling or app state lives here.
package widgets
