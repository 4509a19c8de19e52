package partition

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/cppbind/cppbind/internal/model"
)

// TestPartitionCorrectnessProperty verifies §8 Property 4 over randomly
// generated inheritance forests, declaration-count weights, and budgets:
// every base of an emitted class is emitted no later than that class, and
// every file's declaration-count sum respects the budget except for a
// single class exceeding it on its own.
func TestPartitionCorrectnessProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("base-before-derived and budget-respecting", prop.ForAll(
		func(parents []int, counts []int, budget int) bool {
			n := len(parents)
			classes := make([]*model.WrappedClass, n)
			for i := range classes {
				classes[i] = newClass(string(rune('A' + i)))
				classes[i].DeclarationCount = 1 + counts[i]%5
			}
			for i, p := range parents {
				if i == 0 {
					continue
				}
				classes[i].AddBase(classes[p%i])
			}

			files := Partition(classes, budget)

			fileOf := map[*model.WrappedClass]int{}
			for idx, f := range files {
				for _, c := range f.Classes {
					fileOf[c] = idx
				}
			}
			for _, wc := range classes {
				for _, b := range wc.BaseTypes {
					if fileOf[b] > fileOf[wc] {
						return false
					}
				}
			}
			if budget > 0 {
				for _, f := range files {
					if f.DeclarationCount > budget && len(f.Classes) > 1 {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOfN(6, gen.IntRange(0, 100)),
		gen.SliceOfN(6, gen.IntRange(0, 100)),
		gen.IntRange(0, 15),
	))

	properties.TestingRun(t)
}

// TestIncludeClosureUnionProperty verifies §8 Property 5's packing half:
// every file's Includes set is a superset of the union of its classes' own
// IncludeFiles.
func TestIncludeClosureUnionProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("file includes are a superset of its classes' includes", prop.ForAll(
		func(headers []string) bool {
			classes := make([]*model.WrappedClass, len(headers))
			for i, h := range headers {
				classes[i] = newClass(string(rune('A' + i)))
				classes[i].AddIncludes([]string{`"` + h + `.h"`})
			}

			files := Partition(classes, 0)

			for _, f := range files {
				for _, c := range f.Classes {
					for inc := range c.IncludeFiles {
						if !f.Includes[inc] {
							return false
						}
					}
				}
			}
			return true
		},
		gen.SliceOfN(5, gen.AlphaString().SuchThat(func(s string) bool { return len(s) > 0 })),
	))

	properties.TestingRun(t)
}
