package analyzing

import "sync"

// StaleGuard descarta respostas de requisições sobrepostas do mesmo cliente:
// cada chave carrega uma sequência monotônica e apenas a resposta com a
// sequência mais recente deve ser entregue. As anteriores são ignoradas,
// nunca canceladas.
type StaleGuard struct {
	mu   sync.Mutex
	seqs map[string]uint64
}

func NewStaleGuard() *StaleGuard {
	return &StaleGuard{
		seqs: make(map[string]uint64),
	}
}

// Issue registra uma nova requisição para a chave e retorna sua sequência.
// Toda requisição posterior para a mesma chave invalida as anteriores.
func (g *StaleGuard) Issue(key string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.seqs[key]++
	return g.seqs[key]
}

// Current indica se a sequência ainda é a mais recente da chave
func (g *StaleGuard) Current(key string, seq uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.seqs[key] == seq
}
