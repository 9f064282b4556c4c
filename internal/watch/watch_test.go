package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/f3rmion/emojify/internal/dictionary"
	"github.com/f3rmion/emojify/internal/emojify"
	"github.com/f3rmion/emojify/internal/logging"
	"github.com/f3rmion/emojify/internal/translate"
)

type reload struct {
	path string
	d    *dictionary.Dictionary
	err  error
}

func startWatcher(t *testing.T, path string, session *translate.Session) (*Watcher, <-chan reload) {
	t.Helper()

	reloads := make(chan reload, 8)
	w := New(path, session, logging.Discard())
	w.SetDebounce(20 * time.Millisecond)
	w.OnReload = func(path string, d *dictionary.Dictionary, err error) {
		reloads <- reload{path, d, err}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("Run() error = %v", err)
		}
	})

	// Give the watcher time to register before the test writes.
	time.Sleep(100 * time.Millisecond)
	return w, reloads
}

func waitReload(t *testing.T, reloads <-chan reload) reload {
	t.Helper()
	select {
	case r := <-reloads:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
	return reload{}
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emoji.json")
	writeFile(t, path, `{"🔥": {"def": "fire"}}`)

	d, err := dictionary.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	session := translate.NewSession(translate.MustNew(dictionary.Compile(d)))
	_, reloads := startWatcher(t, path, session)

	writeFile(t, path, `{"🌊": {"def": "fire"}}`)

	r := waitReload(t, reloads)
	if r.err != nil {
		t.Fatalf("reload error = %v", r.err)
	}
	if got, _ := session.Translate(emojify.TextToEmoji, "fire"); got != "🌊" {
		t.Errorf("Translate() after reload = %q, want 🌊", got)
	}
}

func TestWatcherKeepsTranslatorOnBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emoji.json")
	writeFile(t, path, `{"🔥": {"def": "fire"}}`)

	d, err := dictionary.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	session := translate.NewSession(translate.MustNew(dictionary.Compile(d)))
	before := session.Translator()
	_, reloads := startWatcher(t, path, session)

	writeFile(t, path, `{"🔥": {"context": {}}}`)

	r := waitReload(t, reloads)
	if r.err == nil {
		t.Fatal("reload error = nil, want missing definition")
	}
	if session.Translator() != before {
		t.Error("translator replaced after failed reload")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "emoji.json")
	writeFile(t, path, `{"🔥": {"def": "fire"}}`)

	d, _ := dictionary.LoadFile(path)
	session := translate.NewSession(translate.MustNew(dictionary.Compile(d)))
	_, reloads := startWatcher(t, path, session)

	writeFile(t, filepath.Join(dir, "notes.txt"), "unrelated")

	select {
	case r := <-reloads:
		t.Errorf("unexpected reload: %+v", r)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherRetarget(t *testing.T) {
	first := filepath.Join(t.TempDir(), "first.json")
	second := filepath.Join(t.TempDir(), "second.json")
	writeFile(t, first, `{"🔥": {"def": "fire"}}`)
	writeFile(t, second, `{"🌊": {"def": "wave"}}`)

	d, err := dictionary.LoadFile(first)
	if err != nil {
		t.Fatal(err)
	}
	session := translate.NewSession(translate.MustNew(dictionary.Compile(d)))
	w, reloads := startWatcher(t, first, session)

	w.Retarget(second)
	if w.Path() != second {
		t.Errorf("Path() = %q, want %q", w.Path(), second)
	}
	time.Sleep(100 * time.Millisecond)

	writeFile(t, first, `{"🍕": {"def": "fire"}}`)
	select {
	case r := <-reloads:
		t.Fatalf("reload of the previous file: %+v", r)
	case <-time.After(300 * time.Millisecond):
	}
	if got, _ := session.Translate(emojify.TextToEmoji, "fire"); got != "🔥" {
		t.Errorf("Translate() = %q, want 🔥", got)
	}

	writeFile(t, second, `{"🌊": {"def": "surf"}}`)
	r := waitReload(t, reloads)
	if r.err != nil || r.path != second {
		t.Fatalf("reload = %+v, want %s", r, second)
	}
	if got, _ := session.Translate(emojify.TextToEmoji, "surf"); got != "🌊" {
		t.Errorf("Translate() after reload = %q, want 🌊", got)
	}
}
