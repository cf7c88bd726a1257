package testutil

import (
	"reflect"
	"testing"
)

func TestJS(t *testing.T) {
	tests := []struct {
		name string
		arg  interface{}
		want string
	}{
		{
			name: "map",
			arg:  map[string]interface{}{"likes": "tacos"},
			want: `{"likes":"tacos"}`,
		},
		{
			name: "sequence",
			arg:  []interface{}{"queso", float64(3)},
			want: `["queso",3]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JS(tt.arg); got != tt.want {
				t.Errorf("JS() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDwimjs(t *testing.T) {
	tests := []struct {
		name string
		arg  interface{}
		want interface{}
	}{
		{
			name: "valid JSON string",
			arg:  `{"name":"Fatou","age":16}`,
			want: map[string]interface{}{"name": "Fatou", "age": float64(16)},
		},
		{
			name: "valid JSON bytes",
			arg:  []byte(`["project","create"]`),
			want: []interface{}{"project", "create"},
		},
		{
			name: "non-JSON string",
			arg:  "hello world",
			want: "hello world",
		},
		{
			name: "non-string, non-byte-slice type",
			arg:  12345,
			want: 12345,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Dwimjs(tt.arg); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Dwimjs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanon(t *testing.T) {
	got := Canon(map[string]interface{}{"n": 3})
	want := map[string]interface{}{"n": float64(3)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Canon() = %v, want %v", got, want)
	}
}
