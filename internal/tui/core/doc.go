// Package core contains the navigation shell: model routing, message
// contracts, the key and command registries and the screen stack.
//
// Concrete tab and screen implementations live in sibling packages and
// plug in through the Tab and Screen interfaces.
package core
