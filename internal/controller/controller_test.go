package controller

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/idilsaglam/tasklist/internal/logging"
	"github.com/idilsaglam/tasklist/internal/model"
	"github.com/idilsaglam/tasklist/internal/store"
	"github.com/idilsaglam/tasklist/internal/view"
)

// recorder counts renders and keeps the last view.
type recorder struct {
	n    int
	last view.View
}

func (r *recorder) Render(v view.View) { r.n++; r.last = v }

// countingStore wraps Memory and counts writes.
type countingStore struct {
	store.Memory
	sets int
}

func (s *countingStore) Set(key string, value []byte) error {
	s.sets++
	return s.Memory.Set(key, value)
}

type brokenStore struct{ err error }

func (s brokenStore) Get(string) ([]byte, error) { return nil, s.err }
func (s brokenStore) Set(string, []byte) error   { return s.err }

func seqIDs() func() string {
	n := 0
	return func() string { n++; return fmt.Sprintf("t%d", n) }
}

func newTestController(t *testing.T, s store.Store) (*Controller, *recorder) {
	t.Helper()
	r := &recorder{}
	c := New(s, WithRenderer(r), WithIDGenerator(seqIDs()))
	return c, r
}

func texts(ts []model.Task) []string {
	var out []string
	for _, t := range ts {
		out = append(out, t.Text)
	}
	return out
}

func TestInitializeRendersEmpty(t *testing.T) {
	_, r := newTestController(t, store.NewMemory())
	if r.n != 1 {
		t.Fatalf("renders = %d, want 1", r.n)
	}
	if !r.last.Empty() || r.last.Summary != "0 tasks • 0 done" {
		t.Errorf("initial view = %+v", r.last)
	}
}

func TestInitializeFromStore(t *testing.T) {
	s := store.NewMemory()
	_ = s.Set(store.DefaultKey, []byte(`[{"id":"a","text":"Buy milk","done":true}]`))
	c, r := newTestController(t, s)
	if got := c.Tasks(); len(got) != 1 || got[0].ID != "a" || !got[0].Done {
		t.Fatalf("tasks = %+v", got)
	}
	if r.last.Summary != "1 task • 1 done" {
		t.Errorf("summary = %q", r.last.Summary)
	}
}

func TestInitializeCorruptLogsWarning(t *testing.T) {
	s := store.NewMemory()
	_ = s.Set(store.DefaultKey, []byte(`{not json`))
	var logs bytes.Buffer
	c := New(s, WithLogger(logging.New(&logs, "warn")))
	if len(c.Tasks()) != 0 {
		t.Fatalf("expected empty list, got %+v", c.Tasks())
	}
	if !strings.Contains(logs.String(), "could not parse tasks") {
		t.Errorf("warning not logged: %q", logs.String())
	}
}

func TestInitializeMissingKeyIsSilent(t *testing.T) {
	var logs bytes.Buffer
	New(store.NewMemory(), WithLogger(logging.New(&logs, "debug")))
	if logs.Len() != 0 {
		t.Errorf("unexpected log output: %q", logs.String())
	}
}

func TestStoreFailuresAreSwallowed(t *testing.T) {
	var logs bytes.Buffer
	r := &recorder{}
	c := New(brokenStore{errors.New("disk on fire")}, WithLogger(logging.New(&logs, "warn")), WithRenderer(r))
	if !c.Add("still works") {
		t.Fatal("add rejected")
	}
	if len(c.Tasks()) != 1 {
		t.Fatal("in-memory list not updated")
	}
	if r.last.Total != 1 {
		t.Errorf("view not rendered after failed save: %+v", r.last)
	}
	out := logs.String()
	if !strings.Contains(out, "could not read tasks") || !strings.Contains(out, "could not save tasks") {
		t.Errorf("expected read and save warnings, got %q", out)
	}
}

func TestScenario(t *testing.T) {
	s := store.NewMemory()
	c, r := newTestController(t, s)

	c.Add("Buy milk")
	if got := texts(c.Tasks()); len(got) != 1 || got[0] != "Buy milk" || c.Tasks()[0].Done {
		t.Fatalf("after first add: %+v", c.Tasks())
	}
	if r.last.Summary != "1 task • 0 done" {
		t.Errorf("summary = %q", r.last.Summary)
	}

	c.Add("Walk dog")
	if got := strings.Join(texts(c.Tasks()), ","); got != "Walk dog,Buy milk" {
		t.Fatalf("order = %s", got)
	}
	if r.last.Summary != "2 tasks • 0 done" {
		t.Errorf("summary = %q", r.last.Summary)
	}

	milk := c.Tasks()[1].ID
	c.Toggle(milk)
	if r.last.Summary != "2 tasks • 1 done" {
		t.Errorf("summary = %q", r.last.Summary)
	}

	c.ClearCompleted()
	if got := c.Tasks(); len(got) != 1 || got[0].Text != "Walk dog" || got[0].Done {
		t.Fatalf("after clear: %+v", got)
	}
	if r.last.Summary != "1 task • 0 done" {
		t.Errorf("summary = %q", r.last.Summary)
	}

	// the persisted copy matches memory
	b, err := s.Get(store.DefaultKey)
	if err != nil {
		t.Fatal(err)
	}
	persisted, err := model.Decode(b)
	if err != nil {
		t.Fatal(err)
	}
	if len(persisted) != 1 || persisted[0] != c.Tasks()[0] {
		t.Errorf("persisted = %+v", persisted)
	}
}

func TestAddTrimsAndRejectsBlank(t *testing.T) {
	s := &countingStore{}
	c, r := newTestController(t, s)
	for _, in := range []string{"", "   ", "\t\n"} {
		if c.Add(in) {
			t.Errorf("Add(%q) accepted", in)
		}
	}
	if len(c.Tasks()) != 0 || s.sets != 0 || r.n != 1 {
		t.Fatalf("blank add had side effects: tasks=%d sets=%d renders=%d", len(c.Tasks()), s.sets, r.n)
	}
	c.Add("  padded  ")
	if c.Tasks()[0].Text != "padded" {
		t.Errorf("text = %q", c.Tasks()[0].Text)
	}
}

func TestAddSkipsCollidingIDs(t *testing.T) {
	ids := []string{"same", "same", "other"}
	c := New(store.NewMemory(), WithIDGenerator(func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}))
	c.Add("one")
	c.Add("two")
	got := c.Tasks()
	if got[0].ID != "other" || got[1].ID != "same" {
		t.Errorf("ids = %s, %s", got[0].ID, got[1].ID)
	}
}

func TestAddFallsBackWhenGeneratorRepeats(t *testing.T) {
	c := New(store.NewMemory(), WithIDGenerator(func() string { return "fixed" }))
	c.Add("one")
	c.Add("two")
	got := c.Tasks()
	if len(got) != 2 || got[0].ID == got[1].ID {
		t.Fatalf("ids = %q, %q", got[0].ID, got[1].ID)
	}
	if got[1].ID != "fixed" {
		t.Errorf("first id = %q, want fixed", got[1].ID)
	}
}

func TestInitializeReIDsDuplicates(t *testing.T) {
	s := store.NewMemory()
	_ = s.Set(store.DefaultKey, []byte(`[
		{"id":"a","text":"first","done":false},
		{"id":"a","text":"second","done":true},
		{"id":"t1","text":"third","done":false}
	]`))
	var logs bytes.Buffer
	c := New(s, WithLogger(logging.New(&logs, "warn")), WithIDGenerator(seqIDs()))

	got := c.Tasks()
	if len(got) != 3 {
		t.Fatalf("tasks = %+v", got)
	}
	if got[0].ID != "a" || got[1].ID == "a" || got[1].ID == "t1" {
		t.Errorf("ids = %q %q %q", got[0].ID, got[1].ID, got[2].ID)
	}
	if got[1].Text != "second" || !got[1].Done {
		t.Errorf("duplicate lost its data: %+v", got[1])
	}
	if !strings.Contains(logs.String(), "duplicate task id") {
		t.Errorf("warning not logged: %q", logs.String())
	}

	c.Remove("a")
	for _, tk := range c.Tasks() {
		if tk.ID == "a" {
			t.Fatalf("id a survived Remove: %+v", c.Tasks())
		}
	}
	if len(c.Tasks()) != 2 {
		t.Errorf("remove dropped %d tasks", 3-len(c.Tasks()))
	}
}

func TestDefaultIDsAreUnique(t *testing.T) {
	c := New(store.NewMemory())
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		c.Add("x")
	}
	for _, tk := range c.Tasks() {
		if seen[tk.ID] {
			t.Fatalf("duplicate id %s", tk.ID)
		}
		seen[tk.ID] = true
	}
}

func TestUnknownIDStillPersistsAndRenders(t *testing.T) {
	s := &countingStore{}
	c, r := newTestController(t, s)
	c.Add("a")
	before := c.Tasks()
	sets, renders := s.sets, r.n
	if c.Toggle("nope") || c.Remove("nope") {
		t.Fatal("unknown id reported found")
	}
	if fmt.Sprint(c.Tasks()) != fmt.Sprint(before) {
		t.Errorf("list changed: %+v", c.Tasks())
	}
	if s.sets != sets+2 || r.n != renders+2 {
		t.Errorf("sets=%d renders=%d", s.sets-sets, r.n-renders)
	}
}

func TestClearAll(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		s := &countingStore{}
		c, r := newTestController(t, s)
		c.Add("keep me")
		sets, renders := s.sets, r.n
		var asked string
		ok := c.ClearAll(ConfirmFunc(func(p string) bool { asked = p; return false }))
		if ok || len(c.Tasks()) != 1 {
			t.Fatal("declined clear changed the list")
		}
		if asked != ClearAllPrompt {
			t.Errorf("prompt = %q", asked)
		}
		if s.sets != sets || r.n != renders {
			t.Error("declined clear persisted or rendered")
		}
	})
	t.Run("nil confirmer", func(t *testing.T) {
		c, _ := newTestController(t, store.NewMemory())
		c.Add("x")
		if c.ClearAll(nil) || len(c.Tasks()) != 1 {
			t.Fatal("nil confirmer cleared the list")
		}
	})
	t.Run("confirmed", func(t *testing.T) {
		s := store.NewMemory()
		c, r := newTestController(t, s)
		c.Add("a")
		c.Add("b")
		if !c.ClearAll(Answered(true)) {
			t.Fatal("confirmed clear refused")
		}
		if len(c.Tasks()) != 0 || !r.last.Empty() {
			t.Fatalf("list not emptied: %+v", c.Tasks())
		}
		b, _ := s.Get(store.DefaultKey)
		if got, _ := model.Decode(b); len(got) != 0 {
			t.Errorf("persisted = %+v", got)
		}
	})
}

func TestReload(t *testing.T) {
	s := store.NewMemory()
	c, _ := newTestController(t, s)
	c.Add("local")
	_ = s.Set(store.DefaultKey, []byte(`[{"id":"x","text":"external","done":false}]`))
	c.Reload()
	if got := c.Tasks(); len(got) != 1 || got[0].Text != "external" {
		t.Errorf("after reload: %+v", got)
	}
}

func TestWithKey(t *testing.T) {
	s := store.NewMemory()
	c := New(s, WithKey("other"))
	c.Add("x")
	if _, err := s.Get(store.DefaultKey); !errors.Is(err, store.ErrNotFound) {
		t.Error("wrote to default key")
	}
	if _, err := s.Get("other"); err != nil {
		t.Errorf("custom key not written: %v", err)
	}
}

func TestRenderEscapesMarkup(t *testing.T) {
	c, _ := newTestController(t, store.NewMemory())
	c.Add("<b>hi</b>")
	var buf bytes.Buffer
	if err := view.RenderHTML(&buf, c.Render(), view.PageOptions{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "&lt;b&gt;hi&lt;/b&gt;") || strings.Contains(buf.String(), "<b>hi</b>") {
		t.Errorf("markup not escaped:\n%s", buf.String())
	}
}

func TestTasksReturnsCopy(t *testing.T) {
	c, _ := newTestController(t, store.NewMemory())
	c.Add("a")
	got := c.Tasks()
	got[0].Text = "mutated"
	if c.Tasks()[0].Text != "a" {
		t.Error("Tasks exposed internal slice")
	}
}

// TestActionsProperties drives random action sequences and checks the
// list, its persisted copy and the rendered view agree after each step.
func TestActionsProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := store.NewMemory()
		r := &recorder{}
		c := New(s, WithRenderer(r), WithIDGenerator(seqIDs()))

		t.Repeat(map[string]func(*rapid.T){
			"add": func(t *rapid.T) {
				text := rapid.StringMatching(`[ a-z<>&]{0,12}`).Draw(t, "text")
				before := len(c.Tasks())
				added := c.Add(text)
				_, nonBlank := model.NormalizeText(text)
				if added != nonBlank {
					t.Fatalf("Add(%q) = %v", text, added)
				}
				want := before
				if nonBlank {
					want++
					if c.Tasks()[0].Text != strings.TrimSpace(text) {
						t.Fatalf("newest task is not first")
					}
				}
				if len(c.Tasks()) != want {
					t.Fatalf("len = %d, want %d", len(c.Tasks()), want)
				}
			},
			"toggle": func(t *rapid.T) {
				ts := c.Tasks()
				if len(ts) == 0 {
					t.Skip("nothing to toggle")
				}
				i := rapid.IntRange(0, len(ts)-1).Draw(t, "i")
				c.Toggle(ts[i].ID)
				if got := c.Tasks()[i]; got.ID != ts[i].ID || got.Done == ts[i].Done {
					t.Fatalf("toggle did not flip %+v", ts[i])
				}
			},
			"remove": func(t *rapid.T) {
				ts := c.Tasks()
				if len(ts) == 0 {
					t.Skip("nothing to remove")
				}
				i := rapid.IntRange(0, len(ts)-1).Draw(t, "i")
				c.Remove(ts[i].ID)
				if len(c.Tasks()) != len(ts)-1 {
					t.Fatalf("remove changed length by %d", len(ts)-len(c.Tasks()))
				}
			},
			"clearCompleted": func(t *rapid.T) {
				c.ClearCompleted()
				for _, x := range c.Tasks() {
					if x.Done {
						t.Fatalf("done task survived clear: %+v", x)
					}
				}
			},
			"": func(t *rapid.T) {
				ts := c.Tasks()
				seen := map[string]bool{}
				for _, x := range ts {
					if seen[x.ID] {
						t.Fatalf("duplicate id %s", x.ID)
					}
					seen[x.ID] = true
				}
				b, err := s.Get(store.DefaultKey)
				if err == nil {
					persisted, err := model.Decode(b)
					if err != nil {
						t.Fatalf("persisted copy unreadable: %v", err)
					}
					if fmt.Sprint(persisted) != fmt.Sprint(ts) {
						t.Fatalf("persisted %+v != memory %+v", persisted, ts)
					}
				}
				total, done := model.Stats(ts)
				if r.last.Total != total || r.last.Done != done || r.last.Summary != view.Summary(total, done) {
					t.Fatalf("view %+v out of step with %d/%d", r.last, total, done)
				}
			},
		})
	})
}
