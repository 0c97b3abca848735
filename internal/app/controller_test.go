package app_test

import (
	"bytes"
	"context"
	"math/rand"
	"regexp"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"battleship-ai/internal/ai"
	"battleship-ai/internal/app"
	"battleship-ai/internal/game"
)

var coordRe = regexp.MustCompile(`^[A-J]([1-9]|10)$`)

type fakeAttestation struct {
	shots    []game.Point
	revealed int
}

func (f *fakeAttestation) Attest(p game.Point) { f.shots = append(f.shots, p) }
func (f *fakeAttestation) Reveal()             { f.revealed++ }

// ownBoard holds a destroyer at A1-A2 and a single at J10.
func ownBoard(t *testing.T) *game.Board {
	t.Helper()
	b := game.NewBoard()
	if err := b.Place("D0", 2, game.Horizontal, game.Point{X: 0, Y: 0}); err != nil {
		t.Fatal(err)
	}
	if err := b.Place("E0", 1, game.Horizontal, game.Point{X: 9, Y: 9}); err != nil {
		t.Fatal(err)
	}
	return b
}

func newController(t *testing.T, out *bytes.Buffer, opts ...app.Option) (*app.Controller, *ai.Engine) {
	t.Helper()
	e := ai.New(game.NewOpponentBoard(game.Fleet), rand.New(rand.NewSource(11)), zerolog.Nop())
	c := app.NewController(ownBoard(t), e, out, zerolog.Nop(), opts...)
	return c, e
}

func lines(buf *bytes.Buffer) []string {
	s := strings.TrimSuffix(buf.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func mustHandle(t *testing.T, c *app.Controller, line string) {
	t.Helper()
	if err := c.Handle(line); err != nil {
		t.Fatalf("handle %q: %v", line, err)
	}
}

func TestController_StartRendersBoard(t *testing.T) {
	var out bytes.Buffer
	c, _ := newController(t, &out)
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	ls := lines(&out)
	if want, have := game.BoardSize, len(ls); want != have {
		t.Fatalf("unexpected line count: want=%d, have=%d", want, have)
	}
	if want, have := "XX........", ls[0]; want != have {
		t.Errorf("unexpected first row: want=%q, have=%q", want, have)
	}
	if want, have := ".........X", ls[9]; want != have {
		t.Errorf("unexpected last row: want=%q, have=%q", want, have)
	}
}

func TestController_Handshake(t *testing.T) {
	var out bytes.Buffer
	c, _ := newController(t, &out)
	for _, line := range []string{"", "2", "yes", "01"} {
		mustHandle(t, c, line)
		if want, have := app.Starting, c.State(); want != have {
			t.Errorf("%q: unexpected state: want=%s, have=%s", line, want, have)
		}
	}
	if out.Len() != 0 {
		t.Errorf("invalid tokens produced output: %q", out.String())
	}

	mustHandle(t, c, "0")
	if want, have := app.Waiting, c.State(); want != have {
		t.Errorf("unexpected state: want=%s, have=%s", want, have)
	}
	if out.Len() != 0 {
		t.Errorf("waiting side fired: %q", out.String())
	}
}

func TestController_RespondToAttacks(t *testing.T) {
	var out bytes.Buffer
	fa := &fakeAttestation{}
	c, _ := newController(t, &out, app.WithAttestation(fa))
	mustHandle(t, c, "0")

	// a malformed coordinate changes nothing
	mustHandle(t, c, "K11")
	if out.Len() != 0 || c.State() != app.Waiting {
		t.Fatalf("malformed line had an effect: state=%s, out=%q", c.State(), out.String())
	}

	mustHandle(t, c, "c5")
	ls := lines(&out)
	if len(ls) != 2 || ls[0] != "miss" || !coordRe.MatchString(ls[1]) {
		t.Fatalf("unexpected output: %q", ls)
	}
	if want, have := app.Playing, c.State(); want != have {
		t.Errorf("unexpected state: want=%s, have=%s", want, have)
	}
	if want, have := 1, len(fa.shots); want != have {
		t.Errorf("unexpected attestations: want=%d, have=%d", want, have)
	}
}

func TestController_OwnFleetExhausted(t *testing.T) {
	var out bytes.Buffer
	fa := &fakeAttestation{}
	c, _ := newController(t, &out, app.WithAttestation(fa))
	mustHandle(t, c, "0")

	want := []string{"hit"}
	mustHandle(t, c, "A1")
	mustHandle(t, c, "miss") // result of the shot we fired back
	want = append(want, lines(&out)[1], "hit, sunk")
	mustHandle(t, c, "a2")
	mustHandle(t, c, "miss")
	want = append(want, lines(&out)[3], "hit, sunk, end")
	mustHandle(t, c, "J10")

	ls := lines(&out)
	if len(ls) != len(want) {
		t.Fatalf("unexpected output: want=%q, have=%q", want, ls)
	}
	for i := range want {
		if want[i] != ls[i] {
			t.Errorf("line %d: want=%q, have=%q", i, want[i], ls[i])
		}
	}
	if want, have := app.End, c.State(); want != have {
		t.Errorf("unexpected state: want=%s, have=%s", want, have)
	}
	if want, have := 1, fa.revealed; want != have {
		t.Errorf("unexpected reveals: want=%d, have=%d", want, have)
	}
}

func TestController_Scenario(t *testing.T) {
	var out bytes.Buffer
	c, e := newController(t, &out)

	mustHandle(t, c, "1")
	if want, have := app.Playing, c.State(); want != have {
		t.Fatalf("unexpected state: want=%s, have=%s", want, have)
	}
	ls := lines(&out)
	if len(ls) != 1 || !coordRe.MatchString(ls[0]) {
		t.Fatalf("unexpected attack: %q", ls)
	}

	// a malformed report is dropped
	mustHandle(t, c, "splash")
	if want, have := app.Playing, c.State(); want != have {
		t.Fatalf("unexpected state: want=%s, have=%s", want, have)
	}

	// turns strictly alternate: after our result the opponent attacks, and
	// answering that attack is what puts us back in Playing
	mustHandle(t, c, "miss")
	if want, have := app.Waiting, c.State(); want != have {
		t.Errorf("unexpected state after miss: want=%s, have=%s", want, have)
	}
	if want, have := ai.Search, e.Mode(); want != have {
		t.Errorf("unexpected mode after miss: want=%s, have=%s", want, have)
	}

	mustHandle(t, c, "E5")
	if want, have := app.Playing, c.State(); want != have {
		t.Errorf("unexpected state after answering: want=%s, have=%s", want, have)
	}
	mustHandle(t, c, "HIT")
	if want, have := ai.Target, e.Mode(); want != have {
		t.Errorf("unexpected mode after hit: want=%s, have=%s", want, have)
	}

	mustHandle(t, c, "E6")
	ls = lines(&out)
	if want, have := "miss", ls[len(ls)-2]; want != have {
		t.Errorf("unexpected response: want=%q, have=%q", want, have)
	}
	mustHandle(t, c, "hit, sunk")
	if want, have := ai.Search, e.Mode(); want != have {
		t.Errorf("unexpected mode after sunk: want=%s, have=%s", want, have)
	}
	if tr := e.Track(); len(tr.Hits) != 0 {
		t.Errorf("track not cleared: %+v", tr)
	}
	if _, ok := e.Opponent().Ship("D0"); ok {
		t.Error("sunk destroyer still tracked")
	}
	if want, have := app.Waiting, c.State(); want != have {
		t.Errorf("unexpected state: want=%s, have=%s", want, have)
	}
}

func TestController_Run(t *testing.T) {
	var out bytes.Buffer
	c, _ := newController(t, &out)

	in := strings.NewReader("hello\n1\nmiss\nB3\nhit, sunk, end\nA1\n")
	if err := c.Run(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want, have := app.End, c.State(); want != have {
		t.Errorf("unexpected state: want=%s, have=%s", want, have)
	}

	ls := lines(&out)
	// board, attack, "miss" for B3, attack
	if want, have := game.BoardSize+3, len(ls); want != have {
		t.Fatalf("unexpected line count: want=%d, have=%d (%q)", want, have, ls)
	}
	tail := ls[game.BoardSize:]
	if !coordRe.MatchString(tail[0]) || tail[1] != "miss" || !coordRe.MatchString(tail[2]) {
		t.Errorf("unexpected transcript: %q", tail)
	}
}

func TestController_RunCancelled(t *testing.T) {
	var out bytes.Buffer
	c, _ := newController(t, &out)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Run(ctx, strings.NewReader("1\n")); err == nil {
		t.Error("expected context error")
	}
}
