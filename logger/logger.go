// This file is part of Pep9.
//
// Pep9 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Pep9 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Pep9.  If not, see <https://www.gnu.org/licenses/>.

package logger

import (
	"fmt"
	"io"
)

// Permission allows a caller to suppress logging conditionally, eg. when
// running inside a fuzz corpus or a hot loop such as onRun().
type Permission interface {
	AllowLogging() bool
}

// Allow is a Permission that always allows logging.
var Allow = allowPermission{}

type allowPermission struct{}

func (allowPermission) AllowLogging() bool { return true }

type entry struct {
	tag    string
	detail string
}

// Log is a fixed-capacity ring buffer of log entries. The zero value is
// not usable; construct with NewLogger.
type Log struct {
	entries  []entry
	capacity int
	next     int
	full     bool
}

// NewLogger creates a Log with room for capacity entries. Once full, the
// oldest entry is overwritten.
func NewLogger(capacity int) *Log {
	if capacity < 1 {
		capacity = 1
	}
	return &Log{
		entries:  make([]entry, capacity),
		capacity: capacity,
	}
}

// Log records an entry if permission allows it. detail is rendered
// according to its underlying type: errors and fmt.Stringers use their
// own string conversion, anything else falls back to the %v verb.
func (l *Log) Log(permission Permission, tag string, detail interface{}) {
	if permission != nil && !permission.AllowLogging() {
		return
	}
	l.push(tag, render(detail))
}

// Logf is Log with printf-style formatting of detail.
func (l *Log) Logf(permission Permission, tag string, detail string, args ...interface{}) {
	if permission != nil && !permission.AllowLogging() {
		return
	}
	l.push(tag, fmt.Sprintf(detail, args...))
}

func render(detail interface{}) string {
	switch v := detail.(type) {
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (l *Log) push(tag, detail string) {
	l.entries[l.next] = entry{tag: tag, detail: detail}
	l.next++
	if l.next == l.capacity {
		l.next = 0
		l.full = true
	}
}

// Clear empties the log.
func (l *Log) Clear() {
	l.next = 0
	l.full = false
}

// ordered returns the entries in insertion order, oldest first.
func (l *Log) ordered() []entry {
	if !l.full {
		return l.entries[:l.next]
	}
	out := make([]entry, 0, l.capacity)
	out = append(out, l.entries[l.next:]...)
	out = append(out, l.entries[:l.next]...)
	return out
}

// Write writes every entry currently in the log to w, oldest first.
func (l *Log) Write(w io.Writer) {
	for _, e := range l.ordered() {
		fmt.Fprintf(w, "%s: %s\n", e.tag, e.detail)
	}
}

// Tail writes at most the last n entries in the log to w, oldest first.
func (l *Log) Tail(w io.Writer, n int) {
	entries := l.ordered()
	if n < len(entries) {
		entries = entries[len(entries)-n:]
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s: %s\n", e.tag, e.detail)
	}
}
