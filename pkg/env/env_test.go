package env

import "testing"

func TestGet(t *testing.T) {
	t.Setenv("GROWLY_TEST_VALUE", "  console ")
	if got := Get("GROWLY_TEST_VALUE", "json"); got != "console" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
	t.Setenv("GROWLY_TEST_VALUE", "   ")
	if got := Get("GROWLY_TEST_VALUE", "json"); got != "json" {
		t.Fatalf("blank value should fall back, got %q", got)
	}
}

func TestFirst(t *testing.T) {
	t.Setenv("GROWLY_TEST_A", "")
	t.Setenv("GROWLY_TEST_B", "8081")
	if got := First("8080", "GROWLY_TEST_A", "GROWLY_TEST_B"); got != "8081" {
		t.Fatalf("expected second key to win, got %q", got)
	}
	if got := First("8080", "GROWLY_TEST_A"); got != "8080" {
		t.Fatalf("expected fallback, got %q", got)
	}
}
