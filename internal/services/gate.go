package services

import (
	"sort"

	"inkpost/internal/models"
)

// Gate decides who may change content. The privileged ids come from
// configuration; nothing else grants the right.
type Gate struct {
	allowed map[uint]struct{}
}

func NewGate(ids []uint) *Gate {
	allowed := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if id != 0 {
			allowed[id] = struct{}{}
		}
	}
	return &Gate{allowed: allowed}
}

// IsAuthorized is false for anonymous visitors.
func (g *Gate) IsAuthorized(user *models.User) bool {
	if g == nil || user == nil || user.ID == 0 {
		return false
	}
	_, ok := g.allowed[user.ID]
	return ok
}

// IDs returns the privileged ids in ascending order.
func (g *Gate) IDs() []uint {
	ids := make([]uint, 0, len(g.allowed))
	for id := range g.allowed {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
