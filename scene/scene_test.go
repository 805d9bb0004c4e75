package scene

import (
	"sync"
	"testing"

	"github.com/pthm-cable/circlesim/components"
	"github.com/pthm-cable/circlesim/systems"
)

func testStore() *components.Store {
	s := components.NewStore(3, 2)
	for i := range s.Moving.Circles {
		s.Moving.Circles[i] = components.Circle{Radius: 2, X: float32(i), Y: 1}
		s.Moving.Colours[i] = components.Colour{R: 10}
		s.Moving.States[i].Health = 100
	}
	for i := range s.Stationary.Circles {
		s.Stationary.Circles[i] = components.Circle{Radius: 4, X: float32(10 * i), Y: -1}
	}
	s.Stationary.Alive[1] = false
	return s
}

func TestNewMirrorsStore(t *testing.T) {
	sc := New(testStore())

	if sc.Len() != 5 {
		t.Errorf("Len = %d, want 5", sc.Len())
	}
	if got := sc.Visible(); got != 4 {
		t.Errorf("Visible = %d, want 4 (one stationary starts dead)", got)
	}

	h := sc.Moving(2)
	if tr := h.Transform(); tr.X != 2 || tr.Y != 1 {
		t.Errorf("moving 2 transform = %+v", tr)
	}
	if sp := h.Sprite(); sp.Radius != 2 || sp.Kind != components.KindMoving || sp.Colour.R != 10 {
		t.Errorf("moving 2 sprite = %+v", sp)
	}
	if sp := sc.Stationary(1).Sprite(); sp.Visible || sp.Kind != components.KindStationary {
		t.Errorf("stationary 1 sprite = %+v", sp)
	}
}

func TestHandleIsProxy(t *testing.T) {
	sc := New(testStore())
	moving, stationary := sc.Proxies()
	if len(moving) != 3 || len(stationary) != 2 {
		t.Fatalf("proxies = %d/%d, want 3/2", len(moving), len(stationary))
	}

	moving[1].SetPosition(7, 8)
	moving[0].Hide()

	if tr := sc.Moving(1).Transform(); tr.X != 7 || tr.Y != 8 {
		t.Errorf("transform after SetPosition = %+v", tr)
	}

	var seen []Transform
	sc.Each(func(tr *Transform, sp *Sprite) {
		if sp.Kind == components.KindMoving {
			seen = append(seen, *tr)
		}
	})
	if len(seen) != 2 {
		t.Fatalf("visible movers = %d, want 2", len(seen))
	}
	found := false
	for _, tr := range seen {
		if tr.X == 7 && tr.Y == 8 {
			found = true
		}
	}
	if !found {
		t.Error("query did not observe SetPosition")
	}
}

func TestProxiesWithModelSync(t *testing.T) {
	store := testStore()
	sc := New(store)
	moving, _ := sc.Proxies()

	store.Moving.Circles[0].X = 42
	store.Moving.States[2].Health = 0
	systems.SyncProxies(&store.Moving, systems.Span{Start: 0, End: 3}, moving)
	systems.RetireDead(&store.Moving, systems.Span{Start: 0, End: 3}, moving)

	if sc.Moving(0).Transform().X != 42 {
		t.Error("sync did not reach scene")
	}
	if sc.Moving(2).Sprite().Visible {
		t.Error("retired entity still visible")
	}
	if !sc.Moving(1).Sprite().Visible {
		t.Error("healthy entity hidden")
	}
}

func TestConcurrentHandleWrites(t *testing.T) {
	store := components.NewStore(1000, 0)
	sc := New(store)
	moving, _ := sc.Proxies()

	var wg sync.WaitGroup
	for _, span := range systems.Partition(len(moving), 4) {
		wg.Add(1)
		go func(span systems.Span) {
			defer wg.Done()
			for i := span.Start; i < span.End; i++ {
				moving[i].SetPosition(float32(i), float32(-i))
			}
		}(span)
	}
	wg.Wait()

	for i := range moving {
		if tr := sc.Moving(i).Transform(); tr.X != float32(i) || tr.Y != float32(-i) {
			t.Fatalf("moving %d transform = %+v", i, tr)
		}
	}
}
