package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"off":    LevelOff,
		"ERROR":  LevelError,
		"phase":  LevelPhase,
		"DETAIL": LevelDetail,
		"debug":  LevelDebug,
	}
	for s, want := range cases {
		got, err := ParseLevel(s)
		if err != nil {
			t.Errorf("ParseLevel(%q): unexpected error: %v", s, err)
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", s, got, want)
		}
	}
	if _, err := ParseLevel("bogus"); err == nil {
		t.Error("ParseLevel(\"bogus\") should return an error")
	}
}

func TestLevelShouldEmit(t *testing.T) {
	if LevelOff.ShouldEmit(ScopeDriver) {
		t.Error("LevelOff must never emit")
	}
	if !LevelPhase.ShouldEmit(ScopeDriver) || !LevelPhase.ShouldEmit(ScopePass) {
		t.Error("LevelPhase should emit at ScopeDriver and ScopePass")
	}
	if LevelPhase.ShouldEmit(ScopeModule) {
		t.Error("LevelPhase should not emit at ScopeModule")
	}
	if !LevelDebug.ShouldEmit(ScopeNode) {
		t.Error("LevelDebug should emit at every scope")
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]StorageMode{
		"stream": ModeStream,
		"RING":   ModeRing,
		"Both":   ModeBoth,
	}
	for s, want := range cases {
		got, err := ParseMode(s)
		if err != nil {
			t.Errorf("ParseMode(%q): unexpected error: %v", s, err)
		}
		if got != want {
			t.Errorf("ParseMode(%q) = %v, want %v", s, got, want)
		}
	}
	if _, err := ParseMode("bogus"); err == nil {
		t.Error("ParseMode(\"bogus\") should return an error")
	}
}

func TestNewWithLevelOffReturnsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	if tr != Nop {
		t.Error("New with LevelOff should return the Nop tracer")
	}
	if tr.Enabled() {
		t.Error("Nop tracer must report Enabled() == false")
	}
}

func TestNewRingMode(t *testing.T) {
	tr, err := New(Config{Level: LevelDebug, Mode: ModeRing, RingSize: 4})
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	if _, ok := tr.(*RingTracer); !ok {
		t.Fatalf("New with ModeRing should return a *RingTracer, got %T", tr)
	}
	if !tr.Enabled() {
		t.Error("tracer at LevelDebug should be enabled")
	}
}

func TestNewStreamMode(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeStream, Output: &buf})
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	if _, ok := tr.(*StreamTracer); !ok {
		t.Fatalf("New with ModeStream should return a *StreamTracer, got %T", tr)
	}
}

func TestRingTracerEmitAndSnapshotOrdersChronologically(t *testing.T) {
	rt := NewRingTracer(2, LevelDebug)
	rt.Emit(&Event{Kind: KindSpanBegin, Scope: ScopeDriver, Name: "a"})
	rt.Emit(&Event{Kind: KindSpanBegin, Scope: ScopeDriver, Name: "b"})
	rt.Emit(&Event{Kind: KindSpanBegin, Scope: ScopeDriver, Name: "c"})

	snap := rt.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("Snapshot length = %d, want 2 (ring capacity)", len(snap))
	}
	if snap[0].Name != "b" || snap[1].Name != "c" {
		t.Fatalf("Snapshot = [%s, %s], want [b, c] (oldest overwritten)", snap[0].Name, snap[1].Name)
	}
}

func TestRingTracerRespectsLevel(t *testing.T) {
	rt := NewRingTracer(4, LevelPhase)
	rt.Emit(&Event{Kind: KindSpanBegin, Scope: ScopeModule, Name: "too-deep"})
	rt.Emit(&Event{Kind: KindSpanBegin, Scope: ScopePass, Name: "kept"})

	snap := rt.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("Snapshot length = %d, want 1 (ScopeModule filtered by LevelPhase)", len(snap))
	}
	if snap[0].Name != "kept" {
		t.Fatalf("Snapshot[0].Name = %q, want %q", snap[0].Name, "kept")
	}
}

func TestRingTracerDumpWritesFormattedEvents(t *testing.T) {
	rt := NewRingTracer(4, LevelDebug)
	rt.Emit(&Event{Kind: KindSpanBegin, Scope: ScopeDriver, Name: "load"})

	var buf bytes.Buffer
	if err := rt.Dump(&buf, FormatNDJSON); err != nil {
		t.Fatalf("Dump: unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), `"name":"load"`) {
		t.Fatalf("expected the event name in NDJSON output, got: %s", buf.String())
	}
}

func TestStreamTracerEmitWritesTextFormat(t *testing.T) {
	var buf bytes.Buffer
	st := NewStreamTracer(&buf, LevelDebug, FormatText)
	st.Emit(&Event{Kind: KindSpanBegin, Scope: ScopeDriver, Name: "parse", Detail: "ok"})

	out := buf.String()
	if !strings.Contains(out, "parse") {
		t.Fatalf("expected the event name in text output, got: %q", out)
	}
	if !strings.Contains(out, "ok") {
		t.Fatalf("expected the detail in text output, got: %q", out)
	}
}

func TestStreamTracerEmitFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	st := NewStreamTracer(&buf, LevelPhase, FormatText)
	st.Emit(&Event{Kind: KindSpanBegin, Scope: ScopeModule, Name: "too-deep"})

	if buf.Len() != 0 {
		t.Fatalf("expected no output for a scope below the configured level, got: %q", buf.String())
	}
}

func TestStreamTracerNDJSONIsValidJSONPerLine(t *testing.T) {
	var buf bytes.Buffer
	st := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	st.Emit(&Event{Kind: KindPoint, Scope: ScopeDriver, Name: "tick"})

	line := strings.TrimRight(buf.String(), "\n")
	var decoded map[string]any
	if err := json.Unmarshal([]byte(line), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\nline: %s", err, line)
	}
	if decoded["name"] != "tick" {
		t.Fatalf("decoded name = %v, want %q", decoded["name"], "tick")
	}
}

func TestNewStreamModeAutoDetectsFormatFromExtension(t *testing.T) {
	dir := t.TempDir()
	tr, err := New(Config{Level: LevelDebug, Mode: ModeStream, OutputPath: dir + "/out.ndjson"})
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	defer tr.Close()
	st, ok := tr.(*StreamTracer)
	if !ok {
		t.Fatalf("expected a *StreamTracer, got %T", tr)
	}
	if st.format != FormatNDJSON {
		t.Fatalf("format = %v, want FormatNDJSON (auto-detected from .ndjson)", st.format)
	}
}

func TestStreamTracerChromeFormatWrapsEventsInATraceArray(t *testing.T) {
	var buf bytes.Buffer
	st := NewStreamTracer(&buf, LevelDebug, FormatChrome)
	st.Emit(&Event{Kind: KindSpanBegin, Scope: ScopeDriver, Name: "load", GID: 1})
	st.Emit(&Event{Kind: KindSpanEnd, Scope: ScopeDriver, Name: "load", GID: 1, Detail: "ok"})
	if err := st.Close(); err != nil {
		t.Fatalf("Close: unexpected error: %v", err)
	}

	var decoded struct {
		TraceEvents []map[string]any `json:"traceEvents"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not a valid Chrome trace document: %v\n%s", err, buf.String())
	}
	if len(decoded.TraceEvents) != 2 {
		t.Fatalf("traceEvents length = %d, want 2", len(decoded.TraceEvents))
	}
	if decoded.TraceEvents[0]["ph"] != "B" || decoded.TraceEvents[1]["ph"] != "E" {
		t.Fatalf("expected ph B then E, got %v then %v", decoded.TraceEvents[0]["ph"], decoded.TraceEvents[1]["ph"])
	}
}

func TestMultiTracerFansOutToEveryTracer(t *testing.T) {
	ring1 := NewRingTracer(4, LevelDebug)
	ring2 := NewRingTracer(4, LevelDebug)
	mt := NewMultiTracer(LevelDebug, ring1, ring2)

	mt.Emit(&Event{Kind: KindPoint, Scope: ScopeDriver, Name: "fanout"})

	if len(ring1.Snapshot()) != 1 || len(ring2.Snapshot()) != 1 {
		t.Fatal("expected the event to reach both underlying tracers")
	}
	if err := mt.Flush(); err != nil {
		t.Errorf("Flush: unexpected error: %v", err)
	}
	if err := mt.Close(); err != nil {
		t.Errorf("Close: unexpected error: %v", err)
	}
}

func TestNopTracerIsAlwaysDisabledAndSilent(t *testing.T) {
	if Nop.Enabled() {
		t.Error("Nop.Enabled() must be false")
	}
	if Nop.Level() != LevelOff {
		t.Errorf("Nop.Level() = %v, want LevelOff", Nop.Level())
	}
	Nop.Emit(&Event{Name: "ignored"})
	if err := Nop.Flush(); err != nil {
		t.Errorf("Nop.Flush: unexpected error: %v", err)
	}
	if err := Nop.Close(); err != nil {
		t.Errorf("Nop.Close: unexpected error: %v", err)
	}
}

func TestSpanBeginEndOnNopTracerIsSafe(t *testing.T) {
	sp := Begin(Nop, ScopeDriver, "noop", 0)
	if sp.ID() != 0 {
		t.Errorf("Span ID on a disabled tracer should be 0, got %d", sp.ID())
	}
	sp.WithExtra("k", "v")
	if d := sp.End("done"); d != 0 {
		t.Errorf("End on a disabled tracer should report 0 duration, got %v", d)
	}
}

func TestSpanBeginEndEmitsMatchingBeginAndEnd(t *testing.T) {
	rt := NewRingTracer(8, LevelDebug)
	sp := Begin(rt, ScopeDriver, "load", 0)
	if sp.ID() == 0 {
		t.Fatal("expected a nonzero span ID from a live tracer")
	}
	sp.End("finished")

	snap := rt.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected 2 events (begin, end), got %d", len(snap))
	}
	if snap[0].Kind != KindSpanBegin || snap[1].Kind != KindSpanEnd {
		t.Fatalf("expected [begin, end], got [%v, %v]", snap[0].Kind, snap[1].Kind)
	}
	if snap[0].SpanID != snap[1].SpanID {
		t.Fatalf("begin and end must share a span ID: %d != %d", snap[0].SpanID, snap[1].SpanID)
	}
	if snap[1].Detail != "finished" {
		t.Fatalf("end Detail = %q, want %q", snap[1].Detail, "finished")
	}
}

func TestSpanBeginFilteredByLevelReturnsNopSpan(t *testing.T) {
	rt := NewRingTracer(8, LevelPhase)
	sp := Begin(rt, ScopeModule, "too-deep", 0)
	if sp.ID() != 0 {
		t.Fatalf("expected a nop span when the scope is filtered, got ID %d", sp.ID())
	}
	sp.End("")
	if len(rt.Snapshot()) != 0 {
		t.Fatal("expected no events recorded for a scope filtered out by level")
	}
}

func TestContextPropagatesTracerAndSpanContext(t *testing.T) {
	if got := FromContext(nil); got != Nop {
		t.Error("FromContext(nil) should return Nop")
	}
	if got := FromContext(context.Background()); got != Nop {
		t.Error("FromContext with no tracer attached should return Nop")
	}

	rt := NewRingTracer(4, LevelDebug)
	ctx := WithTracer(context.Background(), rt)
	if got := FromContext(ctx); got != rt {
		t.Error("FromContext should return the attached tracer")
	}

	sc := SpanContext{SpanID: 7, GID: 1}
	ctx = WithSpanContext(ctx, sc)
	if got := CurrentSpan(ctx); got != sc {
		t.Errorf("CurrentSpan = %+v, want %+v", got, sc)
	}
	if got := CurrentSpan(context.Background()); got != (SpanContext{}) {
		t.Errorf("CurrentSpan with nothing attached should be zero, got %+v", got)
	}
}

func TestStartHeartbeatNilOrDisabledTracerReturnsNil(t *testing.T) {
	if hb := StartHeartbeat(nil, 0); hb != nil {
		t.Error("StartHeartbeat with a nil tracer should return nil")
	}
	if hb := StartHeartbeat(Nop, 0); hb != nil {
		t.Error("StartHeartbeat with an interval of 0 should return nil")
	}
	var nilHeartbeat *Heartbeat
	nilHeartbeat.Stop() // must not panic
}
