package simhash

import "testing"

func TestFingerprintDeterministic(t *testing.T) {
	text := "Server rendered product page with pricing and reviews"
	if Fingerprint(text) != Fingerprint(text) {
		t.Error("same text produced different fingerprints")
	}
}

func TestFingerprintNormalizesCaseAndPunctuation(t *testing.T) {
	a := Fingerprint("Welcome to the Store!")
	b := Fingerprint("welcome to the store")
	if a != b {
		t.Errorf("case/punctuation variants differ by %d bits", Distance(a, b))
	}
}

func TestFingerprintEmpty(t *testing.T) {
	for _, in := range []string{"", "   \t\n", "!!! ---"} {
		if fp := Fingerprint(in); fp != 0 {
			t.Errorf("Fingerprint(%q) = %064b, want 0", in, fp)
		}
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b uint64
		want int
	}{
		{"identical", 0xFF, 0xFF, 0},
		{"all different", 0, ^uint64(0), 64},
		{"one bit", 0, 1, 1},
		{"two bits", 0, 3, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); got != tt.want {
				t.Errorf("Distance(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b uint64
		want float64
	}{
		{"both empty", 0, 0, 1},
		{"one empty", 0, 0xF0, 0},
		{"identical", 0xABCD, 0xABCD, 1},
		{"one bit", 0xF0, 0xF1, 1 - 1.0/64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Similarity(tt.a, tt.b); got != tt.want {
				t.Errorf("Similarity = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSimilarityRanksCloseTextsHigher(t *testing.T) {
	base := Fingerprint("the quick brown fox jumps over the lazy dog near the river bank")
	near := Fingerprint("the quick brown fox leaps over the lazy dog near the river bank")
	far := Fingerprint("quarterly revenue grew while operating costs declined sharply overseas")

	if Similarity(base, near) <= Similarity(base, far) {
		t.Errorf("near=%v should exceed far=%v", Similarity(base, near), Similarity(base, far))
	}
}

func TestFingerprintDOMIgnoresTextAndScripts(t *testing.T) {
	a := `<html><head><title>A</title><script>x()</script></head><body><div><h1>Hello</h1><p>World</p></div></body></html>`
	b := `<html><head><title>B</title><meta name="x"></head><body><div><h1>Hi</h1><p>Earth</p></div></body></html>`
	if FingerprintDOM(a) != FingerprintDOM(b) {
		t.Error("same element structure should produce the same fingerprint")
	}
}

func TestFingerprintDOMShellVersusRendered(t *testing.T) {
	shell := `<html><body><div id="root"></div><script src="/app.js"></script></body></html>`
	rendered := `<html><body><div id="root"><header><nav><a>Home</a><a>Shop</a></nav></header>
		<main><h1>Products</h1><ul><li>One</li><li>Two</li><li>Three</li></ul></main></div></body></html>`
	if d := Distance(FingerprintDOM(shell), FingerprintDOM(rendered)); d < 3 {
		t.Errorf("shell and rendered DOM too close: distance %d", d)
	}
}

func TestFingerprintDOMEmpty(t *testing.T) {
	if fp := FingerprintDOM("plain text only"); fp != 0 {
		t.Errorf("no tags should give 0, got %064b", fp)
	}
	if fp := FingerprintDOM("<br/>"); fp == 0 {
		t.Error("a single tag should give a non-zero fingerprint")
	}
}

func TestElementTags(t *testing.T) {
	got := elementTags(`<html><head><style>p{}</style></head><body><div><p>x</p><img src=a /></div></body></html>`)
	want := []string{"html", "head", "body", "div", "p", "img"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tag[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestShingles(t *testing.T) {
	got := shingles([]string{"a", "b", "c", "d"}, 3)
	if len(got) != 2 || got[0] != "a_b_c" || got[1] != "b_c_d" {
		t.Errorf("got %v", got)
	}
	if shingles([]string{"a", "b"}, 3) != nil {
		t.Error("expected nil for fewer tokens than n")
	}
}
