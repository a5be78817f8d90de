package textutil

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"  hello  ", "hello"},
		{"ｄｅｆａｕｌｔ", "default"},
		{"ＡＢＣ１２３", "ABC123"},
		{"default　abc", "default abc"},
		{"　　スキップ　", "スキップ"},
		{"ｄｅｆａｕｌｔ　ｈｅｌｌｏ", "default hello"},
		{"#コメント", "#コメント"},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"ｄｅｆａｕｌｔ　ｈｅｌｌｏ",
		"  mixed ＷＩＤＴＨ ４２  ",
		"スキップ",
		"https://youtu.be/dQw4w9WgXcQ",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}

func TestNormalizeLeavesKanaAlone(t *testing.T) {
	// Full-width kana must not fold to half-width kana.
	if got := Normalize("カラオケ"); got != "カラオケ" {
		t.Errorf("kana was folded: %q", got)
	}
}
