package auth

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestBlacklistAddContains(t *testing.T) {
	bl := NewBlacklist()

	if bl.Contains("tok") {
		t.Error("empty blacklist should contain nothing")
	}

	bl.Add("tok", time.Now().Add(time.Hour))
	if !bl.Contains("tok") {
		t.Error("token not reported revoked")
	}
	if bl.Contains("other") {
		t.Error("unrelated token reported revoked")
	}
}

func TestBlacklistSelfEviction(t *testing.T) {
	bl := NewBlacklist()

	bl.Add("stale", time.Now().Add(-time.Second))
	if bl.Contains("stale") {
		t.Error("entry past its expiry must be reported absent")
	}
	// The lookup should also have physically removed it.
	if bl.Len() != 0 {
		t.Errorf("Len = %d after eviction", bl.Len())
	}
}

func TestBlacklistAddIsIdempotent(t *testing.T) {
	bl := NewBlacklist()

	exp := time.Now().Add(time.Hour)
	bl.Add("tok", exp)
	bl.Add("tok", exp)

	if !bl.Contains("tok") {
		t.Error("token not revoked after double add")
	}
	if bl.Len() != 1 {
		t.Errorf("Len = %d, want 1", bl.Len())
	}
}

func TestBlacklistSweep(t *testing.T) {
	bl := NewBlacklist()

	bl.Add("live", time.Now().Add(time.Hour))
	bl.Add("dead1", time.Now().Add(-time.Minute))
	bl.Add("dead2", time.Now().Add(-time.Hour))

	if removed := bl.Sweep(); removed != 2 {
		t.Errorf("Sweep removed %d, want 2", removed)
	}
	if !bl.Contains("live") {
		t.Error("sweep evicted a live entry")
	}
}

func TestBlacklistConcurrentAccess(t *testing.T) {
	bl := NewBlacklist()
	exp := time.Now().Add(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				token := fmt.Sprintf("tok-%d-%d", n, j)
				bl.Add(token, exp)
				if !bl.Contains(token) {
					t.Errorf("token %s lost", token)
				}
			}
		}(i)
	}
	wg.Wait()

	if got := bl.Len(); got != 1600 {
		t.Errorf("Len = %d, want 1600", got)
	}
}
