package core

import "testing"

func TestLedgerChainValidates(t *testing.T) {
	l := NewLedger()
	l.Append(10, EventSoftDrop, 3, "rows=3")
	l.Append(50, EventHardDrop, 8, "rows=4")
	l.Append(90, EventLineClear, 100, "lines=1")

	if !ValidateScoreLedger(l.Events()) {
		t.Error("untouched chain should validate")
	}
}

func TestLedgerDetectsTampering(t *testing.T) {
	l := NewLedger()
	l.Append(10, EventLineClear, 100, "lines=1")
	l.Append(20, EventLineClear, 300, "lines=2")
	l.Append(30, EventLineClear, 500, "lines=3")

	events := make([]ScoreEvent, len(l.Events()))
	copy(events, l.Events())

	// Inflate a point value mid-chain.
	events[1].Points = 9999
	if ValidateScoreLedger(events) {
		t.Error("point mutation should break the chain")
	}

	// Reorder entries.
	copy(events, l.Events())
	events[0], events[2] = events[2], events[0]
	if ValidateScoreLedger(events) {
		t.Error("reordering should break the chain")
	}

	// Drop an entry.
	if ValidateScoreLedger(append([]ScoreEvent{}, l.Events()[1:]...)) {
		t.Error("dropping the first entry should break the chain")
	}
}

func TestLedgerEmptyChainValidates(t *testing.T) {
	if !ValidateScoreLedger(nil) {
		t.Error("empty chain should validate")
	}
	if got := NewLedger().LastHash(); got != chainRoot {
		t.Errorf("empty ledger last hash = %q, want %q", got, chainRoot)
	}
}

func TestScoreDropEvents(t *testing.T) {
	l := NewLedger()
	if got := l.ScoreSoftDrop(1, 3); got != 3 {
		t.Errorf("soft drop 3 rows = %d, want 3", got)
	}
	if got := l.ScoreHardDrop(2, 5); got != 10 {
		t.Errorf("hard drop 5 rows = %d, want 10", got)
	}
	if len(l.Events()) != 2 {
		t.Errorf("event count = %d, want 2", len(l.Events()))
	}
}

func TestScoreLineClearsBaseTable(t *testing.T) {
	tests := []struct {
		lines int
		level int
		want  int
	}{
		{1, 1, 100},
		{2, 1, 300},
		{3, 1, 500},
		{4, 1, 800},
		{2, 3, 900},
	}
	for _, tt := range tests {
		l := NewLedger()
		got := l.ScoreLineClears(ClearContext{
			Frame: 1,
			Lines: tt.lines,
			Level: tt.level,
			Combo: 1,
		})
		if got != tt.want {
			t.Errorf("clear %d lines at level %d = %d, want %d", tt.lines, tt.level, got, tt.want)
		}
	}
}

func TestScoreSpinClear(t *testing.T) {
	l := NewLedger()
	got := l.ScoreLineClears(ClearContext{
		Frame: 1,
		Lines: 1,
		Level: 2,
		Combo: 1,
		Spin:  true,
	})
	if got != 1600 {
		t.Errorf("single spin clear at level 2 = %d, want 1600", got)
	}
	if l.Events()[0].Type != EventSpinClear {
		t.Errorf("event type = %v, want spin_clear", l.Events()[0].Type)
	}
}

func TestScoreBackToBackBonus(t *testing.T) {
	l := NewLedger()
	// Second consecutive four-line clear with a live streak counter.
	got := l.ScoreLineClears(ClearContext{
		Frame:      1,
		Lines:      4,
		Level:      1,
		Combo:      1,
		BackToBack: 1,
	})
	if got != 800+400 {
		t.Errorf("back-to-back four-line clear = %d, want 1200", got)
	}

	// A three-line clear never earns the bonus, streak or not.
	l2 := NewLedger()
	got = l2.ScoreLineClears(ClearContext{
		Frame:      1,
		Lines:      3,
		Level:      1,
		Combo:      1,
		BackToBack: 5,
	})
	if got != 500 {
		t.Errorf("non-difficult clear with streak = %d, want 500", got)
	}
}

func TestScoreComboBonus(t *testing.T) {
	l := NewLedger()
	got := l.ScoreLineClears(ClearContext{
		Frame: 1,
		Lines: 1,
		Level: 2,
		Combo: 3,
	})
	// base 100*2 plus combo 50*3*2.
	if got != 200+300 {
		t.Errorf("combo clear = %d, want 500", got)
	}
}

func TestScorePerfectClearAwardedOnce(t *testing.T) {
	l := NewLedger()
	empty := NewBoard()
	got := l.ScoreLineClears(ClearContext{
		Frame:      1,
		Lines:      2,
		Level:      1,
		Combo:      1,
		BoardAfter: empty,
	})
	if got != 300+1200 {
		t.Errorf("perfect double clear = %d, want 1500", got)
	}

	perfects := 0
	for _, ev := range l.Events() {
		if ev.Type == EventPerfectClear {
			perfects++
		}
	}
	if perfects != 1 {
		t.Errorf("perfect clear events = %d, want 1", perfects)
	}

	// Non-empty board after the clear: no perfect bonus.
	l2 := NewLedger()
	dirty := NewBoard()
	dirty.set(0, BoardHeight-1, Cell(1))
	got = l2.ScoreLineClears(ClearContext{
		Frame:      1,
		Lines:      2,
		Level:      1,
		Combo:      1,
		BoardAfter: dirty,
	})
	if got != 300 {
		t.Errorf("non-perfect double clear = %d, want 300", got)
	}
}
