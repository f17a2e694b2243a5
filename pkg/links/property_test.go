package links

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/matzehuels/constellation/pkg/layout"
	"github.com/matzehuels/constellation/pkg/similarity"
)

var vocab = []string{"guitar", "bass", "drums", "keys", "voice", "sax"}

func genNodes() gopter.Gen {
	return gen.IntRange(1, 25).FlatMap(func(v any) gopter.Gen {
		return gen.SliceOfN(v.(int), gen.IntRange(0, 63)).Map(func(masks []int) []layout.Node {
			out := make([]layout.Node, len(masks))
			for i, m := range masks {
				var tags []string
				for b, tag := range vocab {
					if m&(1<<b) != 0 {
						tags = append(tags, tag)
					}
				}
				out[i] = node(string(rune('a'+i)), string(rune('A'+i%5)), tags...)
			}
			return out
		})
	}, reflect.TypeOf([]layout.Node{}))
}

func TestSelectProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("ratios are in (0,1] and non-increasing", prop.ForAll(
		func(nodes []layout.Node, topN int) bool {
			got := Select(&nodes[0].Entity, nodes, similarity.ModeBand, topN)
			for i, l := range got {
				if l.Ratio <= 0 || l.Ratio > 1 {
					return false
				}
				if i > 0 && l.Ratio > got[i-1].Ratio {
					return false
				}
			}
			return len(got) == 0 || got[0].Ratio == 1
		},
		genNodes(),
		gen.IntRange(-5, 50),
	))

	properties.Property("count never exceeds clamped topN", prop.ForAll(
		func(nodes []layout.Node, topN int) bool {
			got := Select(&nodes[0].Entity, nodes, similarity.ModeIdeal, topN)
			return len(got) <= Desktop.Clamp(topN) && len(got) < len(nodes)
		},
		genNodes(),
		gen.IntRange(-5, 50),
	))

	properties.Property("selection is deterministic", prop.ForAll(
		func(nodes []layout.Node) bool {
			a := Select(&nodes[0].Entity, nodes, similarity.ModeInfluences, 8)
			b := Select(&nodes[0].Entity, nodes, similarity.ModeInfluences, 8)
			return reflect.DeepEqual(a, b)
		},
		genNodes(),
	))

	properties.TestingRun(t)
}
