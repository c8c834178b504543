package statestore

import (
	"bytes"
	"errors"
	"testing"
)

func testStoreRoundTrip(t *testing.T, s Store) {
	t.Helper()
	if err := s.Save("configurator", "sess-1", []byte(`{"family":"portail"}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	b, ok, err := s.Load("configurator", "sess-1")
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(b, []byte(`{"family":"portail"}`)) {
		t.Fatalf("blob corrupted: %s", b)
	}

	// espaces de nommage isolés
	if _, ok, _ := s.Load("quote-request", "sess-1"); ok {
		t.Fatal("namespaces must be isolated")
	}

	if err := s.Delete("configurator", "sess-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.Load("configurator", "sess-1"); ok {
		t.Fatal("blob survived delete")
	}
	// delete d'une clé absente: pas d'erreur
	if err := s.Delete("configurator", "inconnu"); err != nil {
		t.Fatalf("deleting a missing key must be a no-op: %v", err)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	testStoreRoundTrip(t, NewMemoryStore())
}

func TestFileStoreRoundTrip(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	testStoreRoundTrip(t, fs)
}

func TestMemoryStoreCopiesBlobs(t *testing.T) {
	s := NewMemoryStore()
	data := []byte(`{"a":1}`)
	if err := s.Save("ns", "k", data); err != nil {
		t.Fatalf("save: %v", err)
	}
	data[2] = 'X' // mutation côté appelant
	b, _, _ := s.Load("ns", "k")
	if !bytes.Equal(b, []byte(`{"a":1}`)) {
		t.Fatalf("store shares memory with the caller: %s", b)
	}
	b[2] = 'Y'
	b2, _, _ := s.Load("ns", "k")
	if !bytes.Equal(b2, []byte(`{"a":1}`)) {
		t.Fatalf("loaded blob aliases the stored one: %s", b2)
	}
}

func TestFileStoreRejectsTraversal(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := fs.Save("../etc", "passwd", []byte("x")); !errors.Is(err, errBadName) {
		t.Fatalf("namespace traversal not rejected: %v", err)
	}
	if err := fs.Save("ns", "../../x", []byte("x")); !errors.Is(err, errBadName) {
		t.Fatalf("key traversal not rejected: %v", err)
	}
	if _, _, err := fs.Load("a.b", "k"); !errors.Is(err, errBadName) {
		t.Fatalf("dotted namespace not rejected: %v", err)
	}
}
