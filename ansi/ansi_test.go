package ansi

import "testing"

func TestEnableANSIIsRepeatable(t *testing.T) {
	first := EnableANSI()
	if second := EnableANSI(); (first == nil) != (second == nil) {
		t.Fatalf("EnableANSI changed its answer: %v then %v", first, second)
	}
}
