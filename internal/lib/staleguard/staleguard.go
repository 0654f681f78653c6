// Package staleguard отбрасывает ответы, которые пришли для уже неактивного представления.
// Каждый запрос берёт номер поколения; более новый запрос того же представления делает старый номер устаревшим.
package staleguard

import (
	"errors"
	"sync"
)

var ErrSuperseded = errors.New("response superseded by a newer request")

type Guard struct {
	mu   sync.Mutex
	gens map[string]uint64
}

func New() *Guard {
	return &Guard{gens: make(map[string]uint64)}
}

// Begin выдаёт новое поколение для представления view.
func (g *Guard) Begin(view string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gens[view]++
	return g.gens[view]
}

// IsCurrent — gen всё ещё последнее поколение view.
func (g *Guard) IsCurrent(view string, gen uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gens[view] == gen
}

// Check возвращает ErrSuperseded для устаревшего поколения.
func (g *Guard) Check(view string, gen uint64) error {
	if !g.IsCurrent(view, gen) {
		return ErrSuperseded
	}
	return nil
}

// Invalidate делает устаревшими все выданные поколения, например при выходе из аккаунта.
func (g *Guard) Invalidate() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for v := range g.gens {
		g.gens[v]++
	}
}
