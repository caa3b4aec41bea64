package collision

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func newTestWorld(t *testing.T, colliders ...Collider) *World {
	t.Helper()
	w := NewWorld(nil)
	for _, c := range colliders {
		if err := w.AddCollider(c); err != nil {
			t.Fatalf("add collider %q: %v", c.Name, err)
		}
	}
	return w
}

func TestCapsuleTraceRespectsProfile(t *testing.T) {
	start := mgl64.Vec3{0, 0, 50}
	end := mgl64.Vec3{33, 0, 50}

	cases := []struct {
		name     string
		profiles []string
		wantHit  bool
	}{
		{"ledge_tagged", []string{ProfileLedge}, true},
		{"ledge_and_world", []string{ProfileBlockAll, ProfileLedge}, true},
		{"untagged", nil, false},
		{"world_only", []string{ProfileBlockAll}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := newTestWorld(t, Collider{
				Name:        "Wall",
				Center:      mgl64.Vec3{40, 0, 100},
				HalfExtents: mgl64.Vec3{10, 50, 50},
				Profiles:    c.profiles,
			})

			hit, res := w.CapsuleTraceSingleByProfile(CapsuleQuery(start, end, 22, 100, ProfileLedge))
			if hit != c.wantHit || res.Hit != c.wantHit {
				t.Fatalf("expected hit=%v, got %v (result %+v)", c.wantHit, hit, res)
			}
			if !c.wantHit {
				return
			}
			if res.Actor != "Wall" {
				t.Fatalf("expected actor Wall, got %q", res.Actor)
			}
			if !res.ImpactNormal.ApproxEqual(mgl64.Vec3{-1, 0, 0}) {
				t.Fatalf("expected normal -X, got %v", res.ImpactNormal)
			}
			if !res.ImpactPoint.ApproxEqual(mgl64.Vec3{30, 0, 50}) {
				t.Fatalf("expected impact point on the near face, got %v", res.ImpactPoint)
			}
			if !res.Location.ApproxEqual(mgl64.Vec3{8, 0, 50}) {
				t.Fatalf("expected capsule center at x=8, got %v", res.Location)
			}
		})
	}
}

func TestLineTraceDownward(t *testing.T) {
	w := newTestWorld(t,
		Collider{Name: "Ledge", Center: mgl64.Vec3{50, 0, 90}, HalfExtents: mgl64.Vec3{20, 20, 10}, Profiles: []string{ProfileLedge}},
		Collider{Name: "Floor", Center: mgl64.Vec3{50, 0, -10}, HalfExtents: mgl64.Vec3{200, 200, 10}, Profiles: []string{ProfileBlockAll}},
	)

	tests := []struct {
		name       string
		start, end mgl64.Vec3
		profile    string
		wantHit    bool
		wantZ      float64
		wantActor  string
	}{
		{"hits_ledge_top", mgl64.Vec3{50, 0, 160}, mgl64.Vec3{50, 0, 80}, ProfileLedge, true, 100, "Ledge"},
		{"misses_beside_ledge", mgl64.Vec3{120, 0, 160}, mgl64.Vec3{120, 0, 80}, ProfileLedge, false, 0, ""},
		{"floor_ignored_by_ledge_profile", mgl64.Vec3{120, 0, 50}, mgl64.Vec3{120, 0, -50}, ProfileLedge, false, 0, ""},
		{"floor_by_world_profile", mgl64.Vec3{120, 0, 50}, mgl64.Vec3{120, 0, -50}, ProfileBlockAll, true, 0, "Floor"},
		{"too_short", mgl64.Vec3{50, 0, 160}, mgl64.Vec3{50, 0, 120}, ProfileLedge, false, 0, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hit, res := w.LineTraceSingleByProfile(LineQuery(tc.start, tc.end, tc.profile))
			if hit != tc.wantHit {
				t.Fatalf("expected hit=%v, got %v", tc.wantHit, hit)
			}
			if !hit {
				if res.Time != 1 || !res.Location.ApproxEqual(tc.end) {
					t.Fatalf("miss should end at the trace end, got %+v", res)
				}
				return
			}
			if !mgl64.FloatEqual(res.ImpactPoint.Z(), tc.wantZ) {
				t.Fatalf("expected impact z %v, got %v", tc.wantZ, res.ImpactPoint.Z())
			}
			if res.Actor != tc.wantActor {
				t.Fatalf("expected actor %q, got %q", tc.wantActor, res.Actor)
			}
			if !res.ImpactNormal.ApproxEqual(mgl64.Vec3{0, 0, 1}) {
				t.Fatalf("expected up normal, got %v", res.ImpactNormal)
			}
		})
	}
}

func TestTraceClosestHitWins(t *testing.T) {
	w := newTestWorld(t,
		Collider{Name: "Far", Center: mgl64.Vec3{80, 0, 0}, HalfExtents: mgl64.Vec3{5, 5, 5}, Profiles: []string{ProfileBlockAll}},
		Collider{Name: "Near", Center: mgl64.Vec3{40, 0, 0}, HalfExtents: mgl64.Vec3{5, 5, 5}, Profiles: []string{ProfileBlockAll}},
	)

	hit, res := w.LineTraceSingleByProfile(LineQuery(mgl64.Vec3{}, mgl64.Vec3{100, 0, 0}, ProfileBlockAll))
	if !hit || res.Actor != "Near" {
		t.Fatalf("expected Near hit, got hit=%v actor=%q", hit, res.Actor)
	}
	if !mgl64.FloatEqual(res.Distance, 35) {
		t.Fatalf("expected distance 35, got %v", res.Distance)
	}

	q := LineQuery(mgl64.Vec3{}, mgl64.Vec3{100, 0, 0}, ProfileBlockAll)
	q.Ignore = []string{"Near"}
	if _, res := w.LineTraceSingleByProfile(q); res.Actor != "Far" {
		t.Fatalf("expected Far when Near is ignored, got %q", res.Actor)
	}
}

func TestTraceStartingInside(t *testing.T) {
	w := newTestWorld(t, Collider{Name: "Block", Center: mgl64.Vec3{}, HalfExtents: mgl64.Vec3{10, 10, 10}, Profiles: []string{ProfileBlockAll}})

	hit, res := w.LineTraceSingleByProfile(LineQuery(mgl64.Vec3{}, mgl64.Vec3{50, 0, 0}, ProfileBlockAll))
	if !hit || !res.StartPenetrating {
		t.Fatalf("expected penetrating hit, got %+v", res)
	}
	if res.Time != 0 {
		t.Fatalf("expected time 0, got %v", res.Time)
	}
	if !res.ImpactNormal.ApproxEqual(mgl64.Vec3{-1, 0, 0}) {
		t.Fatalf("expected normal opposing the trace, got %v", res.ImpactNormal)
	}
}

func TestTraceUnknownProfile(t *testing.T) {
	w := newTestWorld(t, Collider{Name: "Block", Center: mgl64.Vec3{40, 0, 0}, HalfExtents: mgl64.Vec3{5, 5, 5}, Profiles: []string{ProfileBlockAll}})
	if hit, _ := w.LineTraceSingleByProfile(LineQuery(mgl64.Vec3{}, mgl64.Vec3{100, 0, 0}, "Water")); hit {
		t.Fatal("expected no hit for an unknown profile")
	}
}

func TestAddColliderRejectsUnknownProfile(t *testing.T) {
	w := NewWorld(nil)
	err := w.AddCollider(Collider{Name: "Bad", HalfExtents: mgl64.Vec3{1, 1, 1}, Profiles: []string{"Nope"}})
	if err == nil {
		t.Fatal("expected error for unknown profile")
	}
	if len(w.Colliders()) != 0 {
		t.Fatal("rejected collider should not be registered")
	}
}

func TestDebugTracesRecorded(t *testing.T) {
	w := newTestWorld(t)
	q := LineQuery(mgl64.Vec3{}, mgl64.Vec3{10, 0, 0}, ProfileLedge)
	w.Trace(q)
	if len(w.DebugTraces()) != 0 {
		t.Fatal("traces without debug draw should not be recorded")
	}
	q.DrawDebug = DrawDebugForOneFrame
	w.Trace(q)
	if len(w.DebugTraces()) != 1 {
		t.Fatalf("expected one debug trace, got %d", len(w.DebugTraces()))
	}
	w.ClearDebugTraces()
	if len(w.DebugTraces()) != 0 {
		t.Fatal("expected debug traces cleared")
	}
}

func TestProfilesRegister(t *testing.T) {
	p, err := NewProfiles("Water")
	if err != nil {
		t.Fatal(err)
	}
	ledge, ok := p.Bit(ProfileLedge)
	if !ok {
		t.Fatal("expected Ledge profile to be built in")
	}
	water, ok := p.Bit("Water")
	if !ok || water == ledge {
		t.Fatalf("expected distinct Water bit, got %b (ledge %b)", water, ledge)
	}
	again, err := p.Register("Water")
	if err != nil || again != water {
		t.Fatalf("re-registering should return the same bit, got %b err=%v", again, err)
	}
	if _, err := p.Mask([]string{"Lava"}); err == nil {
		t.Fatal("expected error for unknown profile in mask")
	}
}
