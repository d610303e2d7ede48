package analyzing

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaleGuardDescartaSequenciasAntigas(t *testing.T) {
	guard := NewStaleGuard()

	first := guard.Issue("user-1")
	assert.True(t, guard.Current("user-1", first))

	second := guard.Issue("user-1")
	assert.False(t, guard.Current("user-1", first), "a requisição antiga deve ser descartada")
	assert.True(t, guard.Current("user-1", second))
}

func TestStaleGuardChavesIndependentes(t *testing.T) {
	guard := NewStaleGuard()

	a := guard.Issue("user-a")
	b := guard.Issue("user-b")

	guard.Issue("user-a")

	assert.False(t, guard.Current("user-a", a))
	assert.True(t, guard.Current("user-b", b))
}

func TestStaleGuardConcorrente(t *testing.T) {
	guard := NewStaleGuard()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			guard.Issue("shared")
		}()
	}
	wg.Wait()

	latest := guard.Issue("shared")
	assert.True(t, guard.Current("shared", latest))
	assert.Equal(t, uint64(33), latest)
}
