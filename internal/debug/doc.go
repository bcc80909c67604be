// Package debug provides debug logging functionality for trek.
//
// When enabled via the --debug flag, components write grid events, stream
// faults and animation state transitions to a log file, since the terminal
// itself is owned by the running program.
package debug
