package reader

import "testing"

func TestReader_ConsumeAndPeek(t *testing.T) {
	r := New("{{Foo}}")

	ok, err := r.PeekStr("{{", true, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected peek to match {{")
	}

	ok, err = r.Consume("{{", true, false)
	if err != nil || !ok {
		t.Fatalf("expected consume to succeed, got ok=%v err=%v", ok, err)
	}

	if r.Peek(3) != "Foo" {
		t.Errorf("expected remaining prefix 'Foo', got %q", r.Peek(3))
	}
}

func TestReader_LineStartTracking(t *testing.T) {
	r := New("  * item\nnext")

	if !r.Pos().IsLineStart {
		t.Fatalf("expected IsLineStart at start")
	}

	r.Skip(2) // whitespace keeps is_line_start true
	if !r.Pos().IsLineStart {
		t.Errorf("expected IsLineStart true after leading whitespace")
	}

	r.Skip(1) // '*' clears it
	if r.Pos().IsLineStart {
		t.Errorf("expected IsLineStart false after non-whitespace")
	}

	r.ConsumeUntil(func(b byte) bool { return b == '\n' })
	r.Skip(1) // consume the newline itself
	if !r.Pos().IsLineStart {
		t.Errorf("expected IsLineStart true right after newline")
	}
	if r.Pos().Line != 2 {
		t.Errorf("expected line 2, got %d", r.Pos().Line)
	}
}

func TestReader_SpeculateRestoresOnFailure(t *testing.T) {
	r := New("abc")
	before := r.Snapshot()

	err := r.Speculate(func() error {
		if _, err := r.NextN(2); err != nil {
			return err
		}
		return &EOFError{Pos: r.Pos()}
	})
	if err == nil {
		t.Fatalf("expected failure to propagate")
	}

	after := r.Snapshot()
	if after != before {
		t.Errorf("expected cursor restored to %+v, got %+v", before, after)
	}
}

func TestReader_SpeculateCommitsOnSuccess(t *testing.T) {
	r := New("abc")

	err := r.Speculate(func() error {
		_, err := r.NextN(2)
		return err
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.Peek(1) != "c" {
		t.Errorf("expected cursor to have advanced past 'ab', got %q remaining", r.Peek(3))
	}
}

func TestReader_NestedSpeculateInnerFailureDoesNotDisturbOuter(t *testing.T) {
	r := New("abcdef")

	err := r.Speculate(func() error {
		if _, err := r.NextN(1); err != nil { // consumes 'a'
			return err
		}
		inner := r.Speculate(func() error {
			r.NextN(2) // consumes 'bc'
			return &EOFError{Pos: r.Pos()}
		})
		if inner == nil {
			t.Fatalf("expected inner speculation to fail")
		}
		// outer should still see only 'a' consumed
		if r.Peek(1) != "b" {
			t.Fatalf("inner failure leaked into outer scope, remaining=%q", r.Peek(5))
		}
		_, err := r.NextN(1) // consumes 'b'
		return err
	})
	if err != nil {
		t.Fatalf("unexpected outer error: %v", err)
	}
	if r.Peek(1) != "c" {
		t.Errorf("expected outer to have committed 'ab', remaining=%q", r.Peek(4))
	}
}

func TestReader_EOFOnShortPeek(t *testing.T) {
	r := New("ab")
	_, err := r.PeekStr("abcd", true, false)
	if err == nil {
		t.Fatalf("expected EOF error")
	}
	if _, ok := err.(*EOFError); !ok {
		t.Errorf("expected *EOFError, got %T", err)
	}

	ok, err := r.PeekStr("abcd", true, true)
	if err != nil {
		t.Errorf("expected eofOK to suppress error, got %v", err)
	}
	if ok {
		t.Errorf("expected short prefix not to match")
	}
}
