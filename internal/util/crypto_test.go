package util

import "testing"

func TestGenerateNChar(t *testing.T) {
	for _, n := range []int{1, 8, 21} {
		id, err := GenerateNChar(n)
		if err != nil {
			t.Fatalf("GenerateNChar(%d) returned error: %v", n, err)
		}
		if len(id) != n {
			t.Errorf("GenerateNChar(%d) returned id of length %d", n, len(id))
		}
	}

	a, _ := GenerateNChar(21)
	b, _ := GenerateNChar(21)
	if a == b {
		t.Errorf("Expected two generated ids to differ, both were %s", a)
	}
}
