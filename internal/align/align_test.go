package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/lqa/internal/model"
)

func segs(texts ...string) []model.Segment {
	out := make([]model.Segment, len(texts))
	for i, t := range texts {
		out[i] = model.Segment{Text: t}
	}
	return out
}

func TestText_PadsShorterSide(t *testing.T) {
	pairs := Text(segs("a", "b", "c"), segs("x", "y"), "en", "fr", model.ModeBilingual)
	require.Len(t, pairs, 3)

	for i, p := range pairs {
		assert.Equal(t, i+1, p.ID)
		assert.Equal(t, "en", p.SourceLang.String())
		assert.Equal(t, "fr", p.TargetLang.String())
	}
	assert.Equal(t, "c", pairs[2].Source)
	assert.Equal(t, "", pairs[2].Target)
	assert.Equal(t, "y", pairs[1].Target)
}

func TestText_PadsSourceSide(t *testing.T) {
	pairs := Text(segs("a"), segs("x", "y"), "en", "de", model.ModeBilingual)
	require.Len(t, pairs, 2)
	assert.Equal(t, "", pairs[1].Source)
	assert.Equal(t, "y", pairs[1].Target)
}

func TestText_Monolingual(t *testing.T) {
	pairs := Text(nil, segs("Hallo.", "Tschüss."), "", "de", model.ModeMonolingual)
	require.Len(t, pairs, 2)
	assert.Equal(t, model.SegmentPair{ID: 2, Target: "Tschüss.", TargetLang: "de"}, pairs[1])
}

func TestText_MonolingualIgnoresSourceWhenTargetPresent(t *testing.T) {
	pairs := Text(segs("Hello."), segs("Hallo."), "en", "de", model.ModeMonolingual)
	require.Len(t, pairs, 1)
	assert.Equal(t, "", pairs[0].Source)
	assert.Equal(t, "", pairs[0].SourceLang.String())
}

func TestText_MonolingualSourceOnly(t *testing.T) {
	pairs := Text(segs("Hello."), nil, "en", "de", model.ModeMonolingual)
	require.Len(t, pairs, 1)
	assert.Equal(t, model.SegmentPair{ID: 1, Source: "Hello.", SourceLang: "en"}, pairs[0])
}

func TestText_Empty(t *testing.T) {
	assert.Empty(t, Text(nil, nil, "en", "fr", model.ModeBilingual))
	assert.Empty(t, Text(nil, nil, "en", "fr", model.ModeMonolingual))
}

func TestFiles_PassThrough(t *testing.T) {
	in := []model.SegmentPair{{ID: 1, Source: "a", Target: "b"}}
	assert.Equal(t, in, Files(in))
}
