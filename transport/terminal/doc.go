// Package terminal runs a race game in a terminal with tcell and plays its
// sound effects through beep.
//
// The UI goroutine is the only caller of Game.ProcessAction. Key events are
// polled on a separate goroutine and handed over on a channel, and the field
// is redrawn on a fixed frame ticker while the simulation loop moves enemies
// on its own.
//
// Keys:
//
//	Enter, Space   start
//	Left, Right    switch lane (also h, l)
//	Up             burst (also k)
//	p              pause / resume
//	q, Esc, Ctrl-C terminate
package terminal
