package systems

import "github.com/pthm-cable/circlesim/components"

// Proxy is the visual stand-in for one entity. The simulation only writes to it.
type Proxy interface {
	SetPosition(x, y float32)
	Hide()
}

// RetireDead marks alive entities in span whose health is <= 0 as dead.
// Moving entities also lose their velocity. The entity's proxy, if any, is
// hidden. Returns the number of entities retired.
func RetireDead(p *components.Population, span Span, proxies []Proxy) int {
	retired := 0
	for i := span.Start; i < span.End; i++ {
		if !p.Alive[i] || p.States[i].Health > 0 {
			continue
		}
		p.Alive[i] = false
		if p.Velocities != nil {
			p.Velocities[i] = components.Velocity{}
		}
		if proxies != nil {
			proxies[i].Hide()
		}
		retired++
	}
	return retired
}

// SyncProxies copies positions of alive entities in span to their proxies.
func SyncProxies(p *components.Population, span Span, proxies []Proxy) {
	if proxies == nil {
		return
	}
	circles := p.Circles
	for i := span.Start; i < span.End; i++ {
		if !p.Alive[i] {
			continue
		}
		proxies[i].SetPosition(circles[i].X, circles[i].Y)
	}
}
