package main

import "testing"

func TestValidateClusters(t *testing.T) {
	for _, k := range []int{1, 3, 150} {
		if err := validateClusters(k); err != nil {
			t.Errorf("k=%d: unexpected error: %v", k, err)
		}
	}
	for _, k := range []int{0, -1} {
		if err := validateClusters(k); err == nil {
			t.Errorf("k=%d: expected an error", k)
		}
	}
}
