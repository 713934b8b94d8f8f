package ansi

import (
	"io"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/termgame/internal/core"
)

func keys(events []core.Event) []core.Key {
	var out []core.Key
	for _, e := range events {
		out = append(out, e.Key)
	}
	return out
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []core.Key
	}{
		{"arrows", "\x1b[A\x1b[B\x1b[C\x1b[D", []core.Key{core.KeyUp, core.KeyDown, core.KeyRight, core.KeyLeft}},
		{"ss3 arrow", "\x1bOD", []core.Key{core.KeyLeft}},
		{"delete", "\x1b[3~", []core.Key{core.KeyDelete}},
		{"page keys", "\x1b[5~\x1b[6~", []core.Key{core.KeyPageUp, core.KeyPageDown}},
		{"modified arrow", "\x1b[1;5C", []core.Key{core.KeyRight}},
		{"enter", "\r", []core.Key{core.KeyEnter}},
		{"backspace", "\x7f", []core.Key{core.KeyBackspace}},
		{"tab", "\t", []core.Key{core.KeyTab}},
		{"ctrl-c", "\x03", []core.Key{core.KeyCtrlC}},
		{"other control skipped", "\x01a", []core.Key{'a'}},
		{"printable", "w s", []core.Key{'w', core.KeySpace, 's'}},
		{"utf8", "é", []core.Key{'é'}},
		{"double escape", "\x1b\x1bq", []core.Key{core.KeyEscape, core.KeyEscape, 'q'}},
		{"escape then key", "\x1bq", []core.Key{core.KeyEscape, 'q'}},
		{"unknown csi skipped", "\x1b[99Zx", []core.Key{'x'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, n := Decode([]byte(tt.input), false)
			if n != len(tt.input) {
				t.Errorf("Decode(%q) consumed %d bytes, expected %d", tt.input, n, len(tt.input))
			}
			if got := keys(events); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Decode(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDecodeIncomplete(t *testing.T) {
	tests := []struct {
		input    string
		expected []core.Key
		consumed int
	}{
		{"a\x1b", []core.Key{'a'}, 1},
		{"a\x1b[", []core.Key{'a'}, 1},
		{"\x1b[1;", nil, 0},
		{"\x1bO", nil, 0},
		{"\xc3", nil, 0},
	}

	for _, tt := range tests {
		events, n := Decode([]byte(tt.input), false)
		if n != tt.consumed {
			t.Errorf("Decode(%q, false) consumed %d, expected %d", tt.input, n, tt.consumed)
		}
		if got := keys(events); !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("Decode(%q, false) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestDecodeFinalEscape(t *testing.T) {
	events, n := Decode([]byte("\x1b"), true)
	if n != 1 {
		t.Errorf("consumed %d, expected 1", n)
	}
	if got := keys(events); !reflect.DeepEqual(got, []core.Key{core.KeyEscape}) {
		t.Errorf("Decode(ESC, true) = %v, expected [esc]", got)
	}
}

func TestSourcePoll(t *testing.T) {
	src := NewSource(strings.NewReader("\x1b[Aq"))

	var got []core.Key
	deadline := time.Now().Add(2 * time.Second)
	for !src.Closed() && time.Now().Before(deadline) {
		got = append(got, keys(src.Poll())...)
		time.Sleep(time.Millisecond)
	}
	got = append(got, keys(src.Poll())...)

	if !src.Closed() {
		t.Fatal("Closed() = false after the reader hit EOF")
	}
	expected := []core.Key{core.KeyUp, 'q'}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("polled %v, expected %v", got, expected)
	}
}

func TestSourcePollEmpty(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	src := NewSource(r)
	if events := src.Poll(); len(events) != 0 {
		t.Errorf("Poll() = %v with no input, expected nothing", events)
	}
}
