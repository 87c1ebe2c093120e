// Package scratch provides a per-frame byte arena for formatting short
// strings without going through fmt.
package scratch

import (
	"strconv"
	"unicode/utf8"
)

// Arena is a reusable byte buffer. It is not safe for concurrent use; the
// owner resets it once per frame.
type Arena struct {
	buf []byte
}

// New returns an arena with the given initial capacity.
func New(capacity int) *Arena {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Arena{buf: make([]byte, 0, capacity)}
}

// Reset clears the buffer length without freeing memory.
func (a *Arena) Reset() { a.buf = a.buf[:0] }

func (a *Arena) Cap() int { return cap(a.buf) }
func (a *Arena) Len() int { return len(a.buf) }

// Ensure makes room for at least n more bytes.
func (a *Arena) Ensure(n int) {
	if len(a.buf)+n <= cap(a.buf) {
		return
	}
	newCap := cap(a.buf) * 2
	if newCap < len(a.buf)+n {
		newCap = len(a.buf) + n
	}
	nb := make([]byte, len(a.buf), newCap)
	copy(nb, a.buf)
	a.buf = nb
}

// Mark returns a bookmark to later slice the output.
func (a *Arena) Mark() int { return len(a.buf) }

// StringFrom copies the bytes written since mark.
func (a *Arena) StringFrom(mark int) string { return string(a.buf[mark:]) }

// ----- Chainable builder -----

type Builder struct{ a *Arena }

// F returns a builder appending to a.
// Example: m := a.Mark(); a.F().S("fps ").I(fps); s := a.StringFrom(m)
func (a *Arena) F() Builder { return Builder{a} }

func (b Builder) S(s string) Builder {
	b.a.buf = append(b.a.buf, s...)
	return b
}

func (b Builder) R(r rune) Builder {
	b.a.buf = utf8.AppendRune(b.a.buf, r)
	return b
}

func (b Builder) I(v int) Builder {
	b.a.buf = strconv.AppendInt(b.a.buf, int64(v), 10)
	return b
}

// F64 appends a float with prec digits after the decimal point.
func (b Builder) F64(v float64, prec int) Builder {
	b.a.buf = strconv.AppendFloat(b.a.buf, v, 'f', prec, 64)
	return b
}

func (b Builder) Bool(v bool) Builder {
	b.a.buf = strconv.AppendBool(b.a.buf, v)
	return b
}

// ----- Minimal % formatter -----

// Sprintf supports %s %d %u %f (with .prec) %v for bool and %%. Unknown verbs
// are written literally; missing arguments end the output.
func (a *Arena) Sprintf(format string, args ...any) string {
	var ai int
	mark := len(a.buf)
	for i := 0; i < len(format); i++ {
		ch := format[i]
		if ch != '%' {
			a.buf = append(a.buf, ch)
			continue
		}
		if i+1 < len(format) && format[i+1] == '%' {
			a.buf = append(a.buf, '%')
			i++
			continue
		}
		i++
		prec := -1
		if i < len(format) && format[i] == '.' {
			i++
			start := i
			for i < len(format) && format[i] >= '0' && format[i] <= '9' {
				i++
			}
			prec, _ = strconv.Atoi(format[start:i])
		}
		if i >= len(format) || ai >= len(args) {
			break
		}
		switch format[i] {
		case 's':
			a.buf = append(a.buf, toString(args[ai])...)
		case 'd':
			a.buf = strconv.AppendInt(a.buf, toInt64(args[ai]), 10)
		case 'u':
			a.buf = strconv.AppendUint(a.buf, uint64(toInt64(args[ai])), 10)
		case 'f':
			p := 3
			if prec >= 0 {
				p = prec
			}
			a.buf = strconv.AppendFloat(a.buf, toFloat64(args[ai]), 'f', p, 64)
		case 'v':
			if v, ok := args[ai].(bool); ok {
				a.buf = strconv.AppendBool(a.buf, v)
			} else {
				a.buf = append(a.buf, toString(args[ai])...)
			}
		default:
			a.buf = append(a.buf, '%', format[i])
		}
		ai++
	}
	return string(a.buf[mark:])
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	case interface{ String() string }:
		return x.String()
	default:
		return "<unsupported>"
	}
}

func toInt64(v any) int64 {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case uint:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return int64(x)
	default:
		return 0
	}
}

func toFloat64(v any) float64 {
	switch x := v.(type) {
	case float32:
		return float64(x)
	case float64:
		return x
	default:
		return 0
	}
}
