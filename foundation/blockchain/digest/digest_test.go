package digest_test

import (
	"testing"

	"github.com/actionchain/actionchain/foundation/blockchain/digest"
)

func Test_Hash(t *testing.T) {
	value := struct {
		Name string
	}{
		Name: "Bill",
	}

	h1 := digest.Hash(value)
	if len(h1) != digest.HashLen {
		t.Fatalf("Should get back a hash of %d characters: got %d", digest.HashLen, len(h1))
	}

	h2 := digest.Hash(value)
	if h1 != h2 {
		t.Logf("got: %s", h2)
		t.Logf("exp: %s", h1)
		t.Fatalf("Should get back the same hash twice.")
	}

	value.Name = "Pavel"
	h3 := digest.Hash(value)
	if h1 == h3 {
		t.Fatalf("Should get back a different hash for different data.")
	}
}

func Test_IsSolved(t *testing.T) {
	tests := []struct {
		name       string
		difficulty uint16
		hash       string
		solved     bool
	}{
		{"zero", 0, "ab480e20d3c30b06278911340d9170d361b6a40fdd5eb25591a7ba9c9d6a5b8f", true},
		{"one", 1, "0b480e20d3c30b06278911340d9170d361b6a40fdd5eb25591a7ba9c9d6a5b8f", true},
		{"four", 4, "0000e20d3c30b06278911340d9170d361b6a40fdd5eb25591a7ba9c9d6a5b8f0", true},
		{"short", 4, "0000ab", false},
		{"unsolved", 4, "000ab20d3c30b06278911340d9170d361b6a40fdd5eb25591a7ba9c9d6a5b8f0", false},
	}

	for _, tst := range tests {
		if got := digest.IsSolved(tst.difficulty, tst.hash); got != tst.solved {
			t.Errorf("%s: Should get %v for difficulty %d: got %v", tst.name, tst.solved, tst.difficulty, got)
		}
	}
}
