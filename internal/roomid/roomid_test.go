package roomid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardroom/blackjack/internal/randutil"
)

type fixedSource struct {
	values []int
	index  int
}

func (f *fixedSource) IntN(n int) int {
	v := f.values[f.index%len(f.values)] % n
	f.index++
	return v
}

func TestGenerateShape(t *testing.T) {
	g := NewGenerator(randutil.New(1))
	for i := 0; i < 100; i++ {
		id := g.Generate()
		require.Len(t, id, 4)
		for _, c := range id {
			assert.True(t, strings.ContainsRune(alphabet, c), "unexpected character %c in %s", c, id)
		}
		require.NoError(t, Validate(id))
	}
}

func TestGenerateDeterministicWithInjectedSource(t *testing.T) {
	g := NewGenerator(&fixedSource{values: []int{0, 1, 2, 3}})
	assert.Equal(t, "ABCD", g.Generate())
}

func TestGenerateNilSource(t *testing.T) {
	g := NewGenerator(nil)
	require.NoError(t, Validate(g.Generate()))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"AB12", false},
		{"ZZZZ", false},
		{"abc1", true},
		{"AB1", true},
		{"AB123", true},
		{"AB!2", true},
	}

	for _, tt := range tests {
		err := Validate(tt.id)
		if tt.wantErr {
			assert.Error(t, err, "Validate(%q)", tt.id)
		} else {
			assert.NoError(t, err, "Validate(%q)", tt.id)
		}
	}
}
