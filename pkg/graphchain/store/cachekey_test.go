package store

import "testing"

func TestFieldCacheKeyNoArgs(t *testing.T) {
	if got := FieldCacheKey("name", nil); got != "name" {
		t.Errorf("FieldCacheKey() = %q, want %q", got, "name")
	}
}

func TestFieldCacheKeyCanonicalizesArgOrder(t *testing.T) {
	a := FieldCacheKey("hero", map[string]interface{}{"episode": "JEDI", "limit": 5})
	b := FieldCacheKey("hero", map[string]interface{}{"limit": 5, "episode": "JEDI"})
	if a != b {
		t.Errorf("FieldCacheKey() not order-independent: %q != %q", a, b)
	}
	want := `hero(episode:JEDI,limit:5)`
	if a != want {
		t.Errorf("FieldCacheKey() = %q, want %q", a, want)
	}
}

func TestDefaultCacheKeyResolver(t *testing.T) {
	tests := []struct {
		name     string
		typename string
		fields   map[string]interface{}
		wantKey  CacheKey
		wantOK   bool
	}{
		{
			name:     "typename and id present",
			typename: "Hero",
			fields:   map[string]interface{}{"id": "42"},
			wantKey:  "Hero:42",
			wantOK:   true,
		},
		{
			name:     "missing typename",
			typename: "",
			fields:   map[string]interface{}{"id": "42"},
			wantOK:   false,
		},
		{
			name:     "missing id",
			typename: "Hero",
			fields:   map[string]interface{}{"name": "Luke"},
			wantOK:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := DefaultCacheKeyResolver(tt.typename, tt.fields)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && key != tt.wantKey {
				t.Errorf("key = %q, want %q", key, tt.wantKey)
			}
		})
	}
}

func TestReferenceString(t *testing.T) {
	r := Reference{Key: "Hero:42"}
	if r.String() != "Hero:42" {
		t.Errorf("String() = %q, want %q", r.String(), "Hero:42")
	}
}
