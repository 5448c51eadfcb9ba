// @focus: #sys { term }
// Package terminal provides direct control of the controlling tty.
//
// Features:
//   - Raw mode entry with a 100ms single-byte read timeout (VMIN=0, VTIME=1)
//   - Guaranteed restoration through process exit hooks
//   - Window size resolution with a cursor-probing fallback
//   - SIGWINCH detection as a lock-free pending flag
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI sequences.
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal
