package severity

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		confidence float64
		want       Tier
	}{
		{0, Mild},
		{59.9, Mild},
		{60, Moderate},
		{84.9, Moderate},
		{85, Severe},
		{92, Severe},
		{100, Severe},
	}
	for _, c := range cases {
		if got := Classify(c.confidence); got != c.want {
			t.Fatalf("Classify(%v) = %v, want %v", c.confidence, got, c.want)
		}
	}
}

func TestTierMeta(t *testing.T) {
	if Severe.Meta().Label != "severe" || Severe.Meta().Weight != 2 {
		t.Fatalf("unexpected severe meta: %+v", Severe.Meta())
	}
	if Mild.String() != "mild" {
		t.Fatalf("unexpected mild label: %s", Mild.String())
	}
	// 同一输入必须得到同一结果
	if Classify(85) != Classify(85) {
		t.Fatal("classify not deterministic")
	}
}
