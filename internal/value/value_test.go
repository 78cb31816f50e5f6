package value

import "testing"

func TestCheckSubtype(t *testing.T) {
	two := IntPtr(2)
	three := IntPtr(3)
	cases := []struct {
		name        string
		expected    Type
		actual      Type
		wantErr     bool
	}{
		{"top accepts anything", Top, Number, false},
		{"identical kinds", Number, Number, false},
		{"mismatched kinds", Number, String, true},
		{"array unspecified length accepts fixed", ArrayOf(Number, nil), ArrayOf(Number, two), false},
		{"array fixed length matches", ArrayOf(Number, two), ArrayOf(Number, two), false},
		{"array fixed length mismatch", ArrayOf(Number, two), ArrayOf(Number, three), true},
		{"array item type mismatch", ArrayOf(Number, nil), ArrayOf(String, nil), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := CheckSubtype(c.expected, c.actual)
			if (err != nil) != c.wantErr {
				t.Fatalf("CheckSubtype(%s, %s) err=%v, want err=%v", c.expected, c.actual, err, c.wantErr)
			}
		})
	}
}

func TestIsSafeInteger(t *testing.T) {
	if !Num(5).IsSafeInteger() {
		t.Fatalf("5 should be a safe integer")
	}
	if Num(5.5).IsSafeInteger() {
		t.Fatalf("5.5 should not be a safe integer")
	}
	if Num(9007199254740991).IsSafeInteger() == false {
		t.Fatalf("2^53-1 should be a safe integer")
	}
	if Num(9007199254740992).IsSafeInteger() {
		t.Fatalf("2^53 should not be a safe integer")
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff0000")
	if err != nil {
		t.Fatal(err)
	}
	if c.R != 1 || c.G != 0 || c.B != 0 || c.A != 1 {
		t.Fatalf("unexpected color %+v", c)
	}
	c2, err := ParseColor("rgba(0, 0, 0, 0.5)")
	if err != nil {
		t.Fatal(err)
	}
	if c2.A != 0.5 {
		t.Fatalf("unexpected alpha %+v", c2)
	}
}
