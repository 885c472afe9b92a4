package synthesizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeRendering(t *testing.T) {
	cases := []struct {
		name      string
		fieldType string
		want      string
	}{
		{"pointer", "*Profile", "specdefault.Of[*Profile]()"},
		{"slice", "[]string", "specdefault.Of[[]string]()"},
		{"array", "[4]byte", "specdefault.Of[[4]byte]()"},
		{"map", "map[string]int", "specdefault.Of[map[string]int]()"},
		{"channel", "chan int", "specdefault.Of[chan int]()"},
		{"receive channel", "<-chan int", "specdefault.Of[<-chan int]()"},
		{"function", "func(int) error", "specdefault.Of[func(int) error]()"},
		{"empty interface", "interface{}", "specdefault.Of[interface{}]()"},
		{"any", "any", "specdefault.Of[any]()"},
		{"instantiated generic", "List[int]", "specdefault.Of[List[int]]()"},
		{"nested", "map[string][]*Profile", "specdefault.Of[map[string][]*Profile]()"},
	}
	for _, tc := range cases {
		t.Run("Should render "+tc.name+" fields", func(t *testing.T) {
			src := synthesize(t, "package media\n\n"+
				"type Holder struct {\n"+
				"\tV "+tc.fieldType+"\n"+
				"}\n", "Holder")
			assert.Contains(t, src, tc.want)
		})
	}
}

func TestReceiverNames(t *testing.T) {
	t.Run("Should use the lowercased first rune", func(t *testing.T) {
		assert.Equal(t, "r", receiverName("Resolution"))
		assert.Equal(t, "h", receiverName("HTTPInput"))
		assert.Equal(t, "c", receiverName("codec"))
	})
}
