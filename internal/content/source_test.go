package content

import (
	"context"
	"testing"
	"testing/fstest"

	"argentvault/web"
)

func TestFSSourceDecodes(t *testing.T) {
	fsys := fstest.MapFS{
		TopicsFile: {Data: []byte(`[{"icon":"a.svg","title":"Budgeting","description":"d","difficulty":"Beginner","time":5}]`)},
		TipsFile:   {Data: []byte(`[{"title":"Save","content":"c","category":"Saving","action":"Do it"}]`)},
		PlacesFile: {Data: []byte(`[{"name":"Freedom Park","address":{"street":"Black Gold Dr","city":"Lasg"}}]`)},
	}
	src := NewFSSource(fsys)
	ctx := context.Background()

	topics, err := src.Topics(ctx)
	if err != nil || len(topics) != 1 || topics[0].Minutes != 5 {
		t.Fatalf("topics: %+v %v", topics, err)
	}
	tips, err := src.Tips(ctx)
	if err != nil || tips[0].Action != "Do it" {
		t.Fatalf("tips: %+v %v", tips, err)
	}
	places, err := src.Places(ctx)
	if err != nil || places[0].Address.City != "Lasg" {
		t.Fatalf("places: %+v %v", places, err)
	}
}

func TestFSSourceErrors(t *testing.T) {
	src := NewFSSource(fstest.MapFS{TopicsFile: {Data: []byte(`{broken`)}})
	ctx := context.Background()

	if _, err := src.Topics(ctx); err == nil {
		t.Fatal("expected decode error")
	}
	if _, err := src.Tips(ctx); err == nil {
		t.Fatal("expected missing file error")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := NewFSSource(web.DataFS).Places(cancelled); err == nil {
		t.Fatal("expected context error")
	}
}

func TestEmbeddedContent(t *testing.T) {
	src := NewFSSource(web.DataFS)
	ctx := context.Background()

	places, err := src.Places(ctx)
	if err != nil || len(places) != 8 {
		t.Fatalf("expected 8 places, got %d (%v)", len(places), err)
	}
	for _, p := range places {
		if p.Name == "" || p.Image == "" || p.Address.City != "Lasg" {
			t.Fatalf("incomplete place %+v", p)
		}
	}
	if topics, err := src.Topics(ctx); err != nil || len(topics) == 0 {
		t.Fatalf("topics: %v", err)
	}
	if tips, err := src.Tips(ctx); err != nil || len(tips) == 0 {
		t.Fatalf("tips: %v", err)
	}
}
