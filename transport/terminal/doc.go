// Package terminal provides a line-oriented terminal host for Hopping Stones.
//
// The host reads one command per line, turns "row col" input into clicks on
// a game service session, and redraws the board after every accepted click.
// Selectable cells are marked with parentheses and the selected stone with
// brackets, so the board stays readable without colour; when the output
// supports it, termenv adds colour on top.
//
// Commands:
//
//	2 3, 2,3, (2,3)   click cell at row 2, column 3
//	reset             start a new game on the same layout
//	history           list the moves played so far
//	help              show the command list
//	quit              leave the game
package terminal
