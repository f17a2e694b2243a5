package layout

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/matzehuels/constellation/pkg/roster"
)

func genEntities() gopter.Gen {
	return gen.IntRange(0, 40).FlatMap(func(v any) gopter.Gen {
		n := v.(int)
		return gen.SliceOfN(n, gen.IntRange(0, 12)).Map(func(years []int) []roster.Entity {
			out := make([]roster.Entity, len(years))
			for i, y := range years {
				out[i] = student(fmt.Sprintf("s%d", i), fmt.Sprintf("n%d", i%7), y)
			}
			return out
		})
	}, reflect.TypeOf([]roster.Entity{}))
}

func genKind() gopter.Gen {
	return gen.IntRange(0, len(Kinds)-1).Map(func(i int) Kind { return Kinds[i] })
}

func TestLayoutProperties(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	properties := gopter.NewProperties(params)

	properties.Property("positions stay inside the margin box", prop.ForAll(
		func(es []roster.Entity, w, h, rot float64, k Kind) bool {
			r := Compute(es, w, h, WithKind(k), WithRotation(rot))
			m := math.Min(DefaultMargin, math.Min(w/2, h/2))
			for _, n := range r.Nodes {
				if n.X < m || n.X > w-m || n.Y < m || n.Y > h-m {
					return false
				}
			}
			return true
		},
		genEntities(),
		gen.Float64Range(0, 2000),
		gen.Float64Range(0, 2000),
		gen.Float64Range(-20, 20),
		genKind(),
	))

	properties.Property("every entity is placed once", prop.ForAll(
		func(es []roster.Entity, k Kind) bool {
			r := Compute(es, 800, 600, WithKind(k))
			if len(r.Nodes) != len(es) {
				return false
			}
			seen := map[string]bool{}
			for _, n := range r.Nodes {
				if seen[n.ID] {
					return false
				}
				seen[n.ID] = true
			}
			return true
		},
		genEntities(),
		genKind(),
	))

	properties.Property("layout is deterministic", prop.ForAll(
		func(es []roster.Entity, rot float64, k Kind) bool {
			a := Compute(es, 640, 480, WithKind(k), WithRotation(rot))
			b := Compute(es, 640, 480, WithKind(k), WithRotation(rot))
			return reflect.DeepEqual(a, b)
		},
		genEntities(),
		gen.Float64Range(-5, 5),
		genKind(),
	))

	properties.Property("filtering never moves nodes", prop.ForAll(
		func(es []roster.Entity, y int) bool {
			full := Clusters(es, 800, 800, 0.7, All())
			only := Clusters(es, 800, 800, 0.7, Only(GroupKey(y)))
			for _, n := range only.Nodes {
				f := full.Node(n.ID)
				if f == nil || f.X != n.X || f.Y != n.Y {
					return false
				}
			}
			return true
		},
		genEntities(),
		gen.IntRange(0, 12),
	))

	properties.TestingRun(t)
}
