package menucache

import (
	"testing"
	"time"
)

func TestSetGetInvalidate(t *testing.T) {
	c := New(time.Minute)

	if _, ok := c.GetMenu(); ok {
		t.Error("GetMenu() on empty cache returned a value")
	}

	c.SetMenu([]string{"Salmon Nigiri"})
	got, ok := c.GetMenu()
	if !ok {
		t.Fatal("GetMenu() miss after SetMenu()")
	}
	if items := got.([]string); items[0] != "Salmon Nigiri" {
		t.Errorf("cached value = %v", items)
	}

	c.Invalidate()
	if _, ok := c.GetMenu(); ok {
		t.Error("GetMenu() hit after Invalidate()")
	}
}

func TestTTLExpiry(t *testing.T) {
	c := New(30 * time.Millisecond)

	c.SetMenu("listing")
	if _, ok := c.GetMenu(); !ok {
		t.Fatal("GetMenu() miss before TTL")
	}

	time.Sleep(60 * time.Millisecond)
	if _, ok := c.GetMenu(); ok {
		t.Error("GetMenu() hit after TTL expiry")
	}
}

func TestZeroTTLGetsDefault(t *testing.T) {
	c := New(0)

	c.SetMenu("listing")
	if _, ok := c.GetMenu(); !ok {
		t.Error("GetMenu() miss; zero TTL should fall back to the default, not expire immediately")
	}
}
