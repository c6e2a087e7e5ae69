package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/SeamusWaldron/cubesim/internal/cube"
	"github.com/SeamusWaldron/cubesim/internal/history"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "cubesim.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

var size3 = cube.Size{W: 3, H: 3, D: 3}

func TestOpenAppliesSchema(t *testing.T) {
	db := openTemp(t)
	v, err := db.CurrentVersion()
	if err != nil {
		t.Fatal(err)
	}
	if v != 1 {
		t.Errorf("schema version = %d, want 1", v)
	}

	// Reopening must not reapply the migration.
	path := db.Path()
	db.Close()
	again, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer again.Close()
	if v, _ := again.CurrentVersion(); v != 1 {
		t.Errorf("version after reopen = %d", v)
	}
}

func TestSessionLifecycle(t *testing.T) {
	db := openTemp(t)
	repo := NewSessionRepository(db)

	id, err := repo.Create(size3, "fast", "warmup")
	if err != nil {
		t.Fatal(err)
	}

	s, err := repo.Get(id)
	if err != nil || s == nil {
		t.Fatalf("Get = %v, %v", s, err)
	}
	if s.Size != size3 || s.Speed != "fast" {
		t.Errorf("session = %+v", s)
	}
	if s.Notes == nil || *s.Notes != "warmup" {
		t.Errorf("notes = %v", s.Notes)
	}
	if s.EndedAt != nil || s.Duration() != 0 {
		t.Error("new session should be open")
	}

	if err := repo.SetScramble(id, "x0 y1'"); err != nil {
		t.Fatal(err)
	}
	if err := repo.End(id); err != nil {
		t.Fatal(err)
	}

	s, _ = repo.Get(id)
	if s.ScrambleText == nil || *s.ScrambleText != "x0 y1'" {
		t.Errorf("scramble = %v", s.ScrambleText)
	}
	if s.EndedAt == nil || s.EndedAt.Before(s.StartedAt) {
		t.Errorf("ended = %v, started = %v", s.EndedAt, s.StartedAt)
	}
}

func TestGetUnknownSession(t *testing.T) {
	repo := NewSessionRepository(openTemp(t))

	s, err := repo.Get("missing")
	if err != nil || s != nil {
		t.Errorf("Get = %v, %v; want nil, nil", s, err)
	}
	if err := repo.End("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("End = %v, want ErrSessionNotFound", err)
	}
	l, err := repo.Latest()
	if err != nil || l != nil {
		t.Errorf("Latest on empty db = %v, %v", l, err)
	}
}

func TestFindByPrefix(t *testing.T) {
	db := openTemp(t)
	repo := NewSessionRepository(db)

	for _, id := range []string{"aaaa-1111", "aaaa-2222", "bbbb-3333"} {
		_, err := db.Exec(`INSERT INTO sessions (session_id, started_at, width, height, depth, speed)
			VALUES (?, ?, 3, 3, 3, 'normal')`, id, time.Now().UTC().Format(timeLayout))
		if err != nil {
			t.Fatal(err)
		}
	}

	s, err := repo.Find("bbbb")
	if err != nil || s == nil || s.SessionID != "bbbb-3333" {
		t.Errorf("Find(bbbb) = %v, %v", s, err)
	}
	s, err = repo.Find("aaaa-2222")
	if err != nil || s == nil || s.SessionID != "aaaa-2222" {
		t.Errorf("Find exact = %v, %v", s, err)
	}
	if _, err := repo.Find("aaaa"); !errors.Is(err, ErrAmbiguousID) {
		t.Errorf("Find(aaaa) err = %v, want ErrAmbiguousID", err)
	}
	if s, err := repo.Find("cccc"); s != nil || err != nil {
		t.Errorf("Find(cccc) = %v, %v", s, err)
	}
}

func TestListNewestFirst(t *testing.T) {
	repo := NewSessionRepository(openTemp(t))

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := repo.Create(size3, "normal", "")
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
	}

	list, err := repo.List(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[0].SessionID != ids[2] || list[1].SessionID != ids[1] {
		t.Errorf("order = %s, %s", list[0].SessionID, list[1].SessionID)
	}

	latest, _ := repo.Latest()
	if latest == nil || latest.SessionID != ids[2] {
		t.Errorf("Latest = %v", latest)
	}
}

func TestMoveBatchRoundTrip(t *testing.T) {
	db := openTemp(t)
	sessions := NewSessionRepository(db)
	moves := NewMoveRepository(db)

	id, _ := sessions.Create(size3, "normal", "")
	seq, _ := cube.ParseMoves("x0 y2' z1")
	at := time.UnixMilli(1_700_000_000_000)

	entries := make([]Entry, len(seq))
	for i, m := range seq {
		entries[i] = Entry{Move: m, Origin: history.OriginScramble, Time: at.Add(time.Duration(i) * time.Second)}
	}
	if err := moves.CreateBatch(id, entries, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := moves.Create(id, 3, Entry{Move: seq[0].Inverse(), Origin: history.OriginUndo, Time: at}); err != nil {
		t.Fatal(err)
	}

	records, err := moves.GetBySession(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 4 {
		t.Fatalf("records = %d, want 4", len(records))
	}
	if records[1].Notation != "y2'" || records[1].Origin != "scramble" || records[1].TsMs != at.UnixMilli()+1000 {
		t.Errorf("record 1 = %+v", records[1])
	}
	if history.ParseOrigin(records[3].Origin) != history.OriginUndo {
		t.Errorf("record 3 origin = %q", records[3].Origin)
	}

	back, err := ToMoves(records)
	if err != nil {
		t.Fatal(err)
	}
	want := append(append([]cube.Move{}, seq...), seq[0].Inverse())
	for i := range want {
		if back[i] != want[i] {
			t.Errorf("move %d = %v, want %v", i, back[i], want[i])
		}
	}

	if n, _ := moves.Count(id); n != 4 {
		t.Errorf("Count = %d", n)
	}
	if n, _ := moves.NextIndex(id); n != 4 {
		t.Errorf("NextIndex = %d", n)
	}
}

func TestBatchRollsBackOnDuplicateIndex(t *testing.T) {
	db := openTemp(t)
	id, _ := NewSessionRepository(db).Create(size3, "normal", "")
	moves := NewMoveRepository(db)

	m := cube.Move{Axis: cube.X, Dir: cube.CCW}
	if _, err := moves.Create(id, 1, Entry{Move: m}); err != nil {
		t.Fatal(err)
	}
	err := moves.CreateBatch(id, []Entry{{Move: m}, {Move: m}}, 0)
	if err == nil {
		t.Fatal("batch overlapping index 1 should fail")
	}
	if n, _ := moves.Count(id); n != 1 {
		t.Errorf("Count after rollback = %d, want 1", n)
	}
}

func TestDeleteCascadesToMoves(t *testing.T) {
	db := openTemp(t)
	sessions := NewSessionRepository(db)
	moves := NewMoveRepository(db)

	id, _ := sessions.Create(size3, "normal", "")
	moves.Create(id, 0, Entry{Move: cube.Move{Axis: cube.Z, Layer: 2, Dir: cube.CW}})

	if err := sessions.Delete(id); err != nil {
		t.Fatal(err)
	}
	if n, _ := moves.Count(id); n != 0 {
		t.Errorf("moves left after delete = %d", n)
	}
}

func TestRecordRejectsBadDirection(t *testing.T) {
	r := MoveRecord{Axis: "x", Dir: 0}
	if _, err := r.Move(); !errors.Is(err, cube.ErrInvalidDirection) {
		t.Errorf("err = %v", err)
	}
	r = MoveRecord{Axis: "w", Dir: 1}
	if _, err := r.Move(); !errors.Is(err, cube.ErrInvalidAxis) {
		t.Errorf("err = %v", err)
	}
}

func TestJournal(t *testing.T) {
	db := openTemp(t)
	j, err := NewJournal(db, cube.Size{W: 2, H: 2, D: 2}, "slow", "")
	if err != nil {
		t.Fatal(err)
	}

	scramble := []cube.Move{{Axis: cube.X, Dir: cube.CCW}, {Axis: cube.Y, Layer: 1, Dir: cube.CW}}
	for _, m := range scramble {
		if err := j.Record(m, history.OriginScramble); err != nil {
			t.Fatal(err)
		}
	}
	j.SetScramble(scramble)
	j.Record(scramble[1].Inverse(), history.OriginUndo)
	if err := j.End(); err != nil {
		t.Fatal(err)
	}
	if j.Len() != 3 {
		t.Errorf("Len = %d", j.Len())
	}

	s, _ := NewSessionRepository(db).Get(j.SessionID())
	if s == nil || s.ScrambleText == nil || *s.ScrambleText != "x0 y1'" {
		t.Fatalf("session = %+v", s)
	}
	if s.EndedAt == nil {
		t.Error("journal End should close the session")
	}
	records, _ := NewMoveRepository(db).GetBySession(j.SessionID())
	if len(records) != 3 || records[2].Notation != "y1" {
		t.Errorf("records = %+v", records)
	}
}
