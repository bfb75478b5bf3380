package sim

import (
	"math"
	"testing"

	"github.com/automoto/hookshot/config"
	"github.com/automoto/hookshot/shared/gamemath"
	"github.com/automoto/hookshot/shared/messages"
	"github.com/automoto/hookshot/shared/netconfig"
)

func TestThrowVelocityIncludesThrowerSpeed(t *testing.T) {
	s := newTestState(t)
	p := addTestPlayer(s, "a", 0, 0)
	p.Vel = gamemath.V(0.1, 0)

	id, ok := s.ThrowHook("a", gamemath.V(1, 0))
	if !ok {
		t.Fatal("throw rejected")
	}
	h, _ := s.Hook(id)
	if !h.Vel.ApproxEqual(gamemath.V(0.3, 0), 1e-12) {
		t.Errorf("vel = %+v, want (0.3, 0)", *h.Vel)
	}
	if !h.Loc.Equal(gamemath.V(s.Config().Player.Radius, 0)) {
		t.Errorf("loc = %+v, want edge of thrower", h.Loc)
	}
	if !h.WaitTillExit.Has("a") {
		t.Error("thrower not in wait set")
	}
	if h.State() != netconfig.HookFlying {
		t.Errorf("state = %v, want flying", h.State())
	}
}

func TestThrowRejections(t *testing.T) {
	s := newTestState(t)
	addTestPlayer(s, "a", 0, 0)
	addTestPlayer(s, "b", 500, 0)

	tests := []struct {
		name string
		id   string
		aim  gamemath.Vec2
	}{
		{"zero aim", "b", gamemath.Zero},
		{"nan aim", "b", gamemath.V(math.NaN(), 1)},
		{"infinite aim", "b", gamemath.V(math.Inf(1), 0)},
		{"unknown player", "ghost", gamemath.V(1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := s.ThrowHook(tt.id, tt.aim); ok {
				t.Error("throw accepted")
			}
		})
	}

	if _, ok := s.ThrowHook("a", gamemath.V(0, 1)); !ok {
		t.Fatal("first throw rejected")
	}
	if _, ok := s.ThrowHook("a", gamemath.V(0, 1)); ok {
		t.Error("second throw accepted")
	}
	info, _ := s.Info("a")
	if info.Hooks.Owned.Size() != 1 || s.NumHooks() != 1 {
		t.Errorf("owned = %d, hooks = %d, want 1 and 1", info.Hooks.Owned.Size(), s.NumHooks())
	}
}

func TestHookAttachesAndTracks(t *testing.T) {
	s := newTestState(t)
	addTestPlayer(s, "a", 0, 0)
	b := addTestPlayer(s, "b", 100, 0)

	id, _ := s.ThrowHook("a", gamemath.V(1, 0))
	h, _ := s.Hook(id)
	stepUntil(t, s, 50, func() bool { return h.To == "b" })

	if h.Vel != nil {
		t.Errorf("attached hook still has velocity %+v", *h.Vel)
	}
	if h.State() != netconfig.HookTracking {
		t.Errorf("state = %v, want tracking", h.State())
	}
	if !h.Loc.Equal(b.Loc) {
		t.Errorf("hook at %+v, want snapped to %+v", h.Loc, b.Loc)
	}
	info, _ := s.Info("b")
	if !info.Hooks.Attached.Has(id) {
		t.Error("hook missing from target's attached set")
	}

	b.Loc = gamemath.V(120, 30)
	s.Step(testDt)
	if !h.Loc.Equal(b.Loc) {
		t.Errorf("hook at %+v, want to follow target to %+v", h.Loc, b.Loc)
	}
}

func TestReelPullsTargetAndCompletes(t *testing.T) {
	s := newTestState(t)
	addTestPlayer(s, "a", 0, 0)
	b := addTestPlayer(s, "b", 100, 0)
	cfg := s.Config()

	id, _ := s.ThrowHook("a", gamemath.V(1, 0))
	h, _ := s.Hook(id)
	stepUntil(t, s, 50, func() bool { return h.To == "b" })

	if !s.ReelHooks("a") {
		t.Fatal("reel rejected")
	}
	if s.ReelHooks("a") {
		t.Error("reel accepted during cooldown")
	}
	if h.State() != netconfig.HookReeling {
		t.Errorf("state = %v, want reeling", h.State())
	}
	if !h.Vel.ApproxEqual(gamemath.V(-cfg.Hook.ReelMinSpeed, 0), 1e-12) {
		t.Errorf("reel vel = %+v, want min speed toward owner", *h.Vel)
	}
	binfo, _ := s.Info("b")
	if binfo.Hooks.FollowHook != id {
		t.Errorf("follow hook = %q, want %q", binfo.Hooks.FollowHook, id)
	}
	ainfo, _ := s.Info("a")
	if ainfo.Hooks.ReelCooldown != cfg.Hook.ReelCooldown {
		t.Errorf("cooldown = %v, want %v", ainfo.Hooks.ReelCooldown, cfg.Hook.ReelCooldown)
	}

	stepUntil(t, s, 200, func() bool {
		if hk, ok := s.Hook(id); ok {
			if d := gamemath.Distance(b.Loc, hk.Loc); d > cfg.Player.FollowRadius+1e-9 {
				t.Fatalf("target %v from reeling hook, want at most %v", d, cfg.Player.FollowRadius)
			}
		}
		return s.NumHooks() == 0
	})

	if b.Loc.X >= 100 {
		t.Errorf("target not pulled: %+v", b.Loc)
	}
	if binfo.Hooks.FollowHook != "" || binfo.Hooks.Attached.Size() != 0 {
		t.Errorf("target still linked: %+v", binfo.Hooks)
	}
	if ainfo.Hooks.ReelCooldown != 0 {
		t.Errorf("cooldown = %v, want cleared once all hooks are back", ainfo.Hooks.ReelCooldown)
	}
}

func TestReelRejectedWithoutHooks(t *testing.T) {
	s := newTestState(t)
	addTestPlayer(s, "a", 0, 0)

	if s.ReelHooks("a") {
		t.Error("reel accepted with no hooks")
	}
	if s.ReelHooks("ghost") {
		t.Error("reel accepted for unknown player")
	}
}

func TestSelfRetrieval(t *testing.T) {
	s := newTestState(t)
	addTestPlayer(s, "a", 0, 0)

	id, _ := s.ThrowHook("a", gamemath.V(1, 0))
	h, _ := s.Hook(id)
	stepUntil(t, s, 50, func() bool { return h.WaitTillExit.Size() == 0 })

	if !s.ReelHooks("a") {
		t.Fatal("reel rejected")
	}
	if h.State() != netconfig.HookResetting {
		t.Fatalf("state = %v, want resetting", h.State())
	}
	if !h.Vel.ApproxEqual(gamemath.V(-s.Config().Hook.ResetSpeed, 0), 1e-12) {
		t.Errorf("reset vel = %+v", *h.Vel)
	}

	stepUntil(t, s, 100, func() bool { return s.NumHooks() == 0 })

	info, _ := s.Info("a")
	if info.Hooks.Owned.Size() != 0 {
		t.Errorf("owned = %v, want empty", info.Hooks.Owned.List())
	}
	if info.Hooks.ReelCooldown != 0 {
		t.Errorf("cooldown = %v, want cleared", info.Hooks.ReelCooldown)
	}
	if _, ok := s.ThrowHook("a", gamemath.V(1, 0)); !ok {
		t.Error("could not throw again after retrieval")
	}
}

func TestMutualHooksCancel(t *testing.T) {
	s := newTestState(t)
	addTestPlayer(s, "a", 0, 0)
	addTestPlayer(s, "b", 200, 0)

	s.ThrowHook("a", gamemath.V(1, 0))
	s.ThrowHook("b", gamemath.V(-1, 0))

	for i := 0; i < 100 && s.NumHooks() > 0; i++ {
		s.Step(testDt)
		checkInvariants(t, s)
		if s.NumHooks() == 1 {
			t.Fatalf("tick %d: only one hook removed", i)
		}
	}
	if s.NumHooks() != 0 {
		t.Fatalf("hooks = %d, want 0", s.NumHooks())
	}
	for _, id := range []string{"a", "b"} {
		info, _ := s.Info(id)
		if info.Hooks.Owned.Size() != 0 || info.Hooks.Attached.Size() != 0 {
			t.Errorf("player %s still linked: owned %v attached %v",
				id, info.Hooks.Owned.List(), info.Hooks.Attached.List())
		}
	}
}

func TestCutoffDetachesAndResets(t *testing.T) {
	s := newTestState(t)
	a := addTestPlayer(s, "a", 0, 0)
	addTestPlayer(s, "b", 100, 0)

	id, _ := s.ThrowHook("a", gamemath.V(1, 0))
	h, _ := s.Hook(id)
	stepUntil(t, s, 50, func() bool { return h.To == "b" })

	a.Loc = gamemath.V(-700, 0)
	s.Step(testDt)
	checkInvariants(t, s)

	if h.To != "" || !h.IsResetting {
		t.Fatalf("hook = %+v, want detached and resetting", h)
	}
	if !h.WaitTillExit.Has("b") {
		t.Error("former target not guarded against re-attach")
	}
	if h.Vel == nil || h.Vel.X >= 0 {
		t.Errorf("hook not heading home: %+v", h.Vel)
	}
	info, _ := s.Info("b")
	if info.Hooks.Attached.Size() != 0 {
		t.Errorf("target attached = %v, want empty", info.Hooks.Attached.List())
	}
}

func TestResettingHookCanReattach(t *testing.T) {
	img := messages.ServerImage{
		Players: []messages.PlayerImage{
			{ID: "a", X: 0, Y: 0},
			{ID: "b", X: 150, Y: 0},
		},
		Hooks: []messages.HookImage{
			{ID: "h", From: "a", X: 200, Y: 0, VelX: -0.5, HasVel: true, IsResetting: true},
		},
	}
	s, err := Restore(config.Default(), img)
	if err != nil {
		t.Fatal(err)
	}
	h, _ := s.Hook("h")

	stepUntil(t, s, 10, func() bool { return h.To == "b" })
	if h.IsResetting {
		t.Error("attach did not clear resetting")
	}
}

func TestLeaveCascade(t *testing.T) {
	img := messages.ServerImage{
		Players: []messages.PlayerImage{
			{ID: "a", X: 0, Y: 0},
			{ID: "b", X: 300, Y: 0},
			{ID: "c", X: 600, Y: 0},
		},
		Hooks: []messages.HookImage{
			// a reels b
			{ID: "h1", From: "a", To: "b", X: 300, Y: 0, VelX: -0.08, HasVel: true},
			{ID: "h2", From: "a", X: 100, Y: 100, VelX: 0.2, HasVel: true, WaitTillExit: []string{"b"}},
			// c's hook tracks a
			{ID: "h3", From: "c", To: "a", X: 0, Y: 0},
			{ID: "h4", From: "b", X: 5, Y: 5, VelX: -0.2, HasVel: true, WaitTillExit: []string{"a"}},
		},
	}
	s, err := Restore(config.Default(), img)
	if err != nil {
		t.Fatal(err)
	}
	checkInvariants(t, s)

	if !s.Leave("a") {
		t.Fatal("leave failed")
	}
	if s.Leave("a") {
		t.Error("second leave succeeded")
	}
	checkInvariants(t, s)

	if _, ok := s.Player("a"); ok {
		t.Error("player still present")
	}
	for _, id := range []string{"h1", "h2"} {
		if _, ok := s.Hook(id); ok {
			t.Errorf("owned hook %s survived", id)
		}
	}
	b, _ := s.Info("b")
	if b.Hooks.Attached.Size() != 0 || b.Hooks.FollowHook != "" {
		t.Errorf("b still linked to deleted hooks: %+v", b.Hooks)
	}

	h3, ok := s.Hook("h3")
	if !ok {
		t.Fatal("attached hook deleted")
	}
	if h3.To != "" || !h3.IsResetting || h3.Vel == nil || h3.Vel.X <= 0 {
		t.Errorf("h3 = %+v, want resetting toward its owner", h3)
	}
	if h3.WaitTillExit.Size() != 0 {
		t.Errorf("h3 wait set = %v, want empty", h3.WaitTillExit.List())
	}
	h4, _ := s.Hook("h4")
	if h4.WaitTillExit.Has("a") {
		t.Error("departed player left in wait set")
	}
}
