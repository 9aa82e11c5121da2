package fonts

import "testing"

func TestLoad(t *testing.T) {
	for _, name := range []string{"embed:gomono", "gobold", "embed:goregular.ttf"} {
		data, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q) failed: %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("Load(%q) returned no data", name)
		}
	}
	if _, err := Load("embed:Inter-Regular"); err == nil {
		t.Fatalf("unknown font should fail")
	}
}

func TestForFamily(t *testing.T) {
	tests := []struct {
		family string
		bold   bool
		want   string
	}{
		{"Courier", false, Mono},
		{"Courier New", true, MonoBold},
		{"JetBrains Mono", false, Mono},
		{"Helvetica", false, Regular},
		{"Helvetica", true, Bold},
		{"", false, Regular},
	}
	for _, tt := range tests {
		if got := ForFamily(tt.family, tt.bold); got != tt.want {
			t.Fatalf("ForFamily(%q, %v) = %s, want %s", tt.family, tt.bold, got, tt.want)
		}
	}
}
