// Package dialogue holds Chad's chirp table: short lines a companion says in
// response to game events.
//
// The table is loaded once and is immutable except for each line's Used
// flag, which the delivering code sets after a line has been said.
package dialogue
