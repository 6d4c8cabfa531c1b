package codec

import (
	"testing"
	"time"

	"github.com/hupe1980/reqindex/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "go-json"} {
		c, ok := ByName(name)
		require.True(t, ok)
		assert.Equal(t, name, c.Name())
	}

	c, ok := ByName("")
	require.True(t, ok)
	assert.Equal(t, Default, c)

	_, ok = ByName("msgpack")
	assert.False(t, ok)
}

func TestCodecsReadEachOther(t *testing.T) {
	recs := []model.Record{{
		ID:        3,
		Title:     "Water leak",
		Category:  model.CategoryWaterAndSanitation,
		Location:  "Sunset Avenue, Camps Bay",
		Priority:  model.PriorityCritical,
		Status:    model.StatusInReview,
		CreatedAt: time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC),
	}}

	codecs := []Codec{JSON{}, GoJSON{}}
	for _, enc := range codecs {
		for _, dec := range codecs {
			t.Run(enc.Name()+"->"+dec.Name(), func(t *testing.T) {
				var got []model.Record
				require.NoError(t, dec.Unmarshal(MustMarshal(enc, recs), &got))
				assert.Equal(t, recs, got)
			})
		}
	}
}

func TestPretty(t *testing.T) {
	b, err := Pretty(nil, map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", string(b))
}
