package category_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/budget-insights/internal/category"
)

func TestCategory(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Category Suite")
}

var _ = Describe("Category", func() {
	Describe("All", func() {
		It("should list every category exactly once", func() {
			all := category.All()

			Expect(all).To(HaveLen(11))
			seen := make(map[category.Category]struct{})
			for _, c := range all {
				Expect(category.IsValid(c)).To(BeTrue(), "category %s", c)
				seen[c] = struct{}{}
			}
			Expect(seen).To(HaveLen(len(all)))
		})
	})

	Describe("IsValid", func() {
		It("should reject unknown values", func() {
			Expect(category.IsValid("GROCERIES")).To(BeFalse())
			Expect(category.IsValid("")).To(BeFalse())
			// raw values are case-sensitive
			Expect(category.IsValid("food")).To(BeFalse())
		})
	})

	Describe("IsImportant", func() {
		It("should mark exactly the essential recurring categories", func() {
			important := map[category.Category]bool{
				category.Services:      true,
				category.Food:          true,
				category.Transport:     true,
				category.Health:        true,
				category.Housing:       true,
				category.Study:         true,
				category.Subscriptions: true,
			}

			for _, c := range category.All() {
				Expect(category.IsImportant(c)).To(Equal(important[c]), "category %s", c)
			}
		})
	})

	Describe("Template", func() {
		It("should expose savings templates with the expected rates", func() {
			rates := map[category.Category]float64{
				category.Food:          0.20,
				category.Entertainment: 0.25,
				category.Transport:     0.15,
				category.Services:      0.10,
				category.Misc:          0.20,
			}

			for _, c := range category.All() {
				tmpl, ok := category.Template(c)
				rate, expected := rates[c]
				Expect(ok).To(Equal(expected), "category %s", c)
				if ok {
					Expect(tmpl.Rate).To(Equal(rate))
					Expect(tmpl.ActionItems).ToNot(BeEmpty())
				}
			}
		})
	})

	Describe("Icon", func() {
		It("should fall back to the default icon for unknown categories", func() {
			Expect(category.Icon("NOPE")).To(Equal(category.DefaultIcon))
			Expect(category.Icon(category.Food)).ToNot(Equal(category.DefaultIcon))
		})
	})

	Describe("DisplayName", func() {
		It("should fall back to the raw value for unknown categories", func() {
			Expect(category.DisplayName("NOPE")).To(Equal("NOPE"))
			Expect(category.DisplayName(category.Misc)).To(Equal("Miscellaneous"))
		})
	})
})
