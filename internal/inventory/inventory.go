// Package inventory holds the player's collected items and the acquisition
// event the inventory screen listens to.
package inventory

import (
	"sort"

	"github.com/roach88/slider/internal/setting"
)

// Event describes one acquired collectible.
type Event struct {
	Name string
	Area Area
}

// Store answers "has the player got this" questions.
type Store interface {
	// Contains reports whether name was collected in any area.
	Contains(name string) bool

	// ContainsIn reports whether name was collected in area.
	// AreaNone matches any area.
	ContainsIn(name string, area Area) bool

	HasCollectedAnchor() bool

	// OnCollectibleAcquired subscribes fn to acquisitions.
	OnCollectibleAcquired(fn func(Event)) (unsubscribe func())
}

// Player is an in-memory Store.
type Player struct {
	items    map[Event]struct{}
	anchor   bool
	acquired setting.Observers[Event]
}

var _ Store = (*Player)(nil)

// NewPlayer creates an empty inventory.
func NewPlayer() *Player {
	return &Player{items: make(map[Event]struct{})}
}

// Add records name as collected in area and notifies listeners.
// Adding an item already held is a no-op and returns false.
func (p *Player) Add(name string, area Area) bool {
	e := Event{Name: name, Area: area}
	if _, ok := p.items[e]; ok {
		return false
	}
	p.items[e] = struct{}{}
	p.acquired.Notify(e)
	return true
}

// CollectAnchor marks the anchor as picked up.
func (p *Player) CollectAnchor() {
	p.anchor = true
}

func (p *Player) Contains(name string) bool {
	return p.ContainsIn(name, AreaNone)
}

func (p *Player) ContainsIn(name string, area Area) bool {
	if area != AreaNone {
		_, ok := p.items[Event{Name: name, Area: area}]
		return ok
	}
	for e := range p.items {
		if e.Name == name {
			return true
		}
	}
	return false
}

func (p *Player) HasCollectedAnchor() bool {
	return p.anchor
}

func (p *Player) OnCollectibleAcquired(fn func(Event)) (unsubscribe func()) {
	return p.acquired.Add(fn)
}

// Listeners returns the number of acquisition subscribers.
func (p *Player) Listeners() int {
	return p.acquired.Len()
}

// Items lists held collectibles sorted by name, then area.
func (p *Player) Items() []Event {
	out := make([]Event, 0, len(p.items))
	for e := range p.items {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Area < out[j].Area
	})
	return out
}
