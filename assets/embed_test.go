package assets

import "testing"

func TestCleanAssetPath(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"chest.png", "chest.png"},
		{"assets/chest.png", "chest.png"},
		{"/home/dev/overworld/assets/food.png", "food.png"},
		{"/tmp/reaper.png", "reaper.png"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			if got := cleanAssetPath(c.in); got != c.want {
				t.Fatalf("cleanAssetPath(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}
