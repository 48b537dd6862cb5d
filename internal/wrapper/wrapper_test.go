package wrapper

import (
	"bytes"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/psantana5/agentdeco/internal/report"
)

var finishedLine = regexp.MustCompile(`^Finished '([^']+)' in (\d+\.\d{4}) secs$`)

func printer(out *bytes.Buffer, name, line string) Target {
	return Target{Name: name, Fn: func(args ...any) (any, error) {
		out.WriteString(line + "\n")
		return len(args), nil
	}}
}

func lines(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
}

func TestTimerReportsElapsedToFourDecimals(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, nil)

	nap := 50 * time.Millisecond
	timed := c.Timer(Target{Name: "monkaS", Fn: func(args ...any) (any, error) {
		time.Sleep(nap)
		return "awake", nil
	}})

	result, err := timed.Call()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result != "awake" {
		t.Errorf("Result = %v, want awake", result)
	}
	if timed.Name != "monkaS" {
		t.Errorf("Timer should keep the target name, got %q", timed.Name)
	}

	m := finishedLine.FindStringSubmatch(strings.TrimSpace(buf.String()))
	if m == nil {
		t.Fatalf("Unexpected timing line %q", buf.String())
	}
	if m[1] != "monkaS" {
		t.Errorf("Timing label = %q, want monkaS", m[1])
	}
	secs, _ := strconv.ParseFloat(m[2], 64)
	if secs < nap.Seconds() || secs > nap.Seconds()+0.5 {
		t.Errorf("Elapsed %v outside [%v, %v]", secs, nap.Seconds(), nap.Seconds()+0.5)
	}

	results := c.Recorder().Results()
	if len(results) != 1 || results[0].Target != "monkaS" {
		t.Errorf("Expected one recorded monkaS result, got %+v", results)
	}
}

func TestTimerPassesArgsAndPropagatesErrors(t *testing.T) {
	var buf bytes.Buffer
	rec := report.NewRecorder()
	c := NewConsole(&buf, rec)

	boom := errors.New("boom")
	var got []any
	timed := c.Timer(Target{Name: "BibleThump", Fn: func(args ...any) (any, error) {
		got = args
		return nil, boom
	}})

	if _, err := timed.Call(15, "x"); !errors.Is(err, boom) {
		t.Fatalf("Expected boom, got %v", err)
	}
	if len(got) != 2 || got[0] != 15 || got[1] != "x" {
		t.Errorf("Args not forwarded: %v", got)
	}
	if buf.Len() != 0 {
		t.Errorf("Failed call should print nothing, got %q", buf.String())
	}
	if rec.Results()[0].Outcome() != "error" {
		t.Error("Failed call should be recorded as error")
	}
}

func TestResidentSleeperPrintsOnceAfterTarget(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, nil)

	wrapped := c.ResidentSleeper(printer(&buf, "gachiBASS", "Billy gachiBASS I am not timed"))
	if _, err := wrapped.Call(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	got := lines(&buf)
	want := []string{"Billy gachiBASS I am not timed", sleeperLine}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Output = %q, want %q", got, want)
	}
	if strings.Count(buf.String(), sleeperLine) != 1 {
		t.Error("Closing line should be printed exactly once")
	}
}

func TestKekwIsTimedUnderItsOwnName(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, nil)

	wrapped := c.Kekw(printer(&buf, "BibleThump", "Help me"))
	n, err := wrapped.Call(15)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if n != 1 {
		t.Errorf("Result = %v, want 1", n)
	}

	got := lines(&buf)
	if len(got) != 3 {
		t.Fatalf("Expected 3 lines, got %q", got)
	}
	if got[0] != kekwLine || got[1] != "Help me" {
		t.Errorf("Unexpected order: %q", got)
	}
	m := finishedLine.FindStringSubmatch(got[2])
	if m == nil || m[1] != KekwName {
		t.Errorf("Timing line should name %q, got %q", KekwName, got[2])
	}
}
