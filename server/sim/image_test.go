package sim

import (
	"reflect"
	"testing"

	"github.com/automoto/hookshot/config"
	"github.com/automoto/hookshot/shared/gamemath"
	"github.com/automoto/hookshot/shared/messages"
	"github.com/automoto/hookshot/shared/protocol"
)

func TestImageRoundTripMatchesInMemoryStep(t *testing.T) {
	s := newTestState(t)
	s.World = World{
		Radius:      1500,
		Holes:       []Hole{{Loc: gamemath.V(300, -200), Radius: 120, Color: "#1b1b1b"}},
		SpawnPoints: []gamemath.Vec2{gamemath.V(10, 10)},
	}
	addTestPlayer(s, "a", 0, 0)
	addTestPlayer(s, "b", 100, 0)
	addTestPlayer(s, "c", 400, 300)

	s.ThrowHook("a", gamemath.V(1, 0))
	s.ThrowHook("c", gamemath.V(-1, -1))
	for i := 0; i < 12; i++ {
		s.Step(testDt)
	}

	data, err := protocol.EncodeImage(s.Image())
	if err != nil {
		t.Fatal(err)
	}
	img, err := protocol.DecodeImage(data)
	if err != nil {
		t.Fatal(err)
	}
	restored, err := Restore(s.Config(), img)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		s.Step(testDt)
		restored.Step(testDt)
		if got, want := restored.Image(), s.Image(); !reflect.DeepEqual(got, want) {
			t.Fatalf("step %d diverged:\n got %+v\nwant %+v", i, got, want)
		}
	}
}

func TestImageMarksTrackingHooks(t *testing.T) {
	s := newTestState(t)
	addTestPlayer(s, "a", 0, 0)
	addTestPlayer(s, "b", 100, 0)

	id, _ := s.ThrowHook("a", gamemath.V(1, 0))
	h, _ := s.Hook(id)
	stepUntil(t, s, 50, func() bool { return h.To == "b" })

	img := s.Image()
	if len(img.Hooks) != 1 {
		t.Fatalf("hooks = %d, want 1", len(img.Hooks))
	}
	if hi := img.Hooks[0]; hi.HasVel || hi.To != "b" || hi.From != "a" {
		t.Errorf("hook image = %+v", hi)
	}
}

func TestRestoreRejectsDanglingReferences(t *testing.T) {
	tests := []struct {
		name string
		img  messages.ServerImage
	}{
		{
			name: "unknown owner",
			img: messages.ServerImage{
				Hooks: []messages.HookImage{{ID: "h", From: "ghost", HasVel: true}},
			},
		},
		{
			name: "unknown target",
			img: messages.ServerImage{
				Players: []messages.PlayerImage{{ID: "a"}},
				Hooks:   []messages.HookImage{{ID: "h", From: "a", To: "ghost"}},
			},
		},
		{
			name: "duplicate player",
			img: messages.ServerImage{
				Players: []messages.PlayerImage{{ID: "a"}, {ID: "a"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Restore(config.Default(), tt.img); err == nil {
				t.Error("expected error")
			}
		})
	}
}
