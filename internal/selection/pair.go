package selection

import "github.com/BerylCAtieno/fondue-strategy-agent/internal/models"

// Pair is a fixed-capacity FIFO of two audience profiles keyed by id.
// Pushing onto a full pair evicts the oldest entry.
type Pair struct {
	items [2]models.AudienceProfile
	n     int
}

func (p *Pair) Len() int { return p.n }

func (p *Pair) Contains(id string) bool {
	return p.index(id) >= 0
}

// Remove drops the profile with the given id, keeping the order of the rest.
func (p *Pair) Remove(id string) bool {
	i := p.index(id)
	if i < 0 {
		return false
	}
	if i == 0 && p.n == 2 {
		p.items[0] = p.items[1]
	}
	p.n--
	p.items[p.n] = models.AudienceProfile{}
	return true
}

// Push appends a profile. When the pair is already full the oldest entry is
// evicted and returned, leaving [newest-prior, a].
func (p *Pair) Push(a models.AudienceProfile) (evicted models.AudienceProfile, ok bool) {
	if p.n < len(p.items) {
		p.items[p.n] = a
		p.n++
		return models.AudienceProfile{}, false
	}
	evicted = p.items[0]
	p.items[0] = p.items[1]
	p.items[1] = a
	return evicted, true
}

// Items returns the held profiles, oldest first.
func (p *Pair) Items() []models.AudienceProfile {
	out := make([]models.AudienceProfile, p.n)
	copy(out, p.items[:p.n])
	return out
}

// IDs returns the held profile ids, oldest first.
func (p *Pair) IDs() []string {
	ids := make([]string, p.n)
	for i := 0; i < p.n; i++ {
		ids[i] = p.items[i].ID
	}
	return ids
}

func (p *Pair) Clear() {
	*p = Pair{}
}

func (p *Pair) index(id string) int {
	for i := 0; i < p.n; i++ {
		if p.items[i].ID == id {
			return i
		}
	}
	return -1
}
