package rdf

import "testing"

func TestDescriptionAddDedup(t *testing.T) {
	d, err := NewDescription("http://example.org/s")
	if err != nil {
		t.Fatal(err)
	}
	d, err = d.Add("http://example.org/p", "http://example.org/o")
	if err != nil {
		t.Fatal(err)
	}
	d, err = d.Add("http://example.org/p", "http://example.org/o")
	if err != nil {
		t.Fatal(err)
	}
	objs, ok := d.Fetch("http://example.org/p")
	if !ok || len(objs) != 1 {
		t.Fatalf("expected 1 deduplicated object, got %v", objs)
	}
}

func TestDescriptionPutReplaces(t *testing.T) {
	d, err := NewDescription("http://example.org/s", PredObj{
		P: MustIRI("http://example.org/p"),
		O: []Term{MustIRI("http://example.org/o1")},
	})
	if err != nil {
		t.Fatal(err)
	}
	d, err = d.Put("http://example.org/p", "http://example.org/o2")
	if err != nil {
		t.Fatal(err)
	}
	objs, ok := d.Fetch("http://example.org/p")
	if !ok || len(objs) != 1 {
		t.Fatalf("expected Put to replace, got %v", objs)
	}
	if objs[0] != Term(MustIRI("http://example.org/o2")) {
		t.Fatalf("expected replaced object o2, got %v", objs[0])
	}
}

func TestDescriptionImmutability(t *testing.T) {
	d, err := NewDescription("http://example.org/s")
	if err != nil {
		t.Fatal(err)
	}
	d2, err := d.Add("http://example.org/p", "http://example.org/o")
	if err != nil {
		t.Fatal(err)
	}
	if !d.IsEmpty() {
		t.Fatal("original Description must remain unmodified after Add")
	}
	if d2.IsEmpty() {
		t.Fatal("new Description must carry the added triple")
	}
}

func TestNewDescriptionWrongSubjectSilentlyDropped(t *testing.T) {
	d, err := NewDescription("http://example.org/s", Triple{
		S: MustIRI("http://example.org/other"),
		P: MustIRI("http://example.org/p"),
		O: MustIRI("http://example.org/o"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if !d.IsEmpty() {
		t.Fatal("triple seeded with a different subject should be silently dropped")
	}
}
