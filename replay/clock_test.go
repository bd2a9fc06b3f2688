package replay

import (
	"sync"
	"testing"
)

func TestClockAdvanceAndReset(t *testing.T) {
	c := NewClock(250)
	if c.Now() != 0 {
		t.Fatalf("fresh clock at %d, want 0", c.Now())
	}
	if got := c.Advance(); got != 250 {
		t.Fatalf("Advance = %d, want 250", got)
	}
	c.Advance()
	c.Advance()
	if c.Now() != 750 {
		t.Fatalf("Now = %d, want 750", c.Now())
	}
	c.Reset()
	if c.Now() != 0 {
		t.Fatalf("Now after Reset = %d, want 0", c.Now())
	}
}

func TestClockDefaultsTick(t *testing.T) {
	c := NewClock(0)
	if c.TickMS() != DefaultTickMS {
		t.Fatalf("TickMS = %d, want %d", c.TickMS(), DefaultTickMS)
	}
}

func TestClockConcurrentReaders(t *testing.T) {
	c := NewClock(1)
	var wg sync.WaitGroup
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
					_ = c.Now()
				}
			}
		}()
	}
	for i := 0; i < 1000; i++ {
		c.Advance()
	}
	close(done)
	wg.Wait()
	if c.Now() != 1000 {
		t.Fatalf("Now = %d, want 1000", c.Now())
	}
}
