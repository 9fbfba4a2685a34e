package seed

import "fmt"

// Random is the source of every random choice made while generating
// products. *gofakeit.Faker satisfies it.
type Random interface {
	RandomString(a []string) string
	Number(min, max int) int
}

// Template describes how products of a primary category are named and which
// categories they may additionally be filed under.
type Template struct {
	// Format is a fmt format with one %s verb per slot.
	Format string
	// Slots are the choice lists filling Format's verbs, in order.
	Slots [][]string
	// Related lists candidate secondary categories.
	Related []string
}

// Render fills the template with one random choice per slot.
func (t Template) Render(r Random) string {
	if len(t.Slots) == 0 {
		return t.Format
	}
	args := make([]any, len(t.Slots))
	for i, choices := range t.Slots {
		args[i] = r.RandomString(choices)
	}
	return fmt.Sprintf(t.Format, args...)
}

// Templates maps a primary category to its product template.
var Templates = map[string]Template{
	CategoryLaptops: {
		Format:  "Laptop %s %s",
		Slots:   [][]string{brands, specs},
		Related: []string{CategoryGaming},
	},
	CategorySmartphones: {
		Format:  "Smartphone %s 128GB",
		Slots:   [][]string{brands},
		Related: []string{CategoryAccesorios},
	},
	CategoryAccesorios: {
		Format:  "%s %s",
		Slots:   [][]string{{"Mouse", "Teclado", "Headset"}, brands},
		Related: []string{CategoryGaming},
	},
	CategoryMonitores: {
		Format:  "Monitor %s 24 pulgadas",
		Slots:   [][]string{brands},
		Related: []string{CategoryGaming},
	},
	CategoryRedes: {
		Format:  "Router %s Dual Band",
		Slots:   [][]string{brands},
		Related: []string{CategoryGaming},
	},
	CategoryGaming: {
		Format:  "Gaming %s RGB",
		Slots:   [][]string{{"Laptop", "Mouse", "Teclado"}},
		Related: []string{CategoryLaptops, CategoryAccesorios},
	},
}

// FallbackTemplate names products whose primary category has no template.
var FallbackTemplate = Template{Format: "Producto Genérico"}

// TemplateFor returns the template for a primary category.
func TemplateFor(category string) Template {
	if t, ok := Templates[category]; ok {
		return t
	}
	return FallbackTemplate
}
