// Package seed populates a catalog service with synthetic users, categories
// and products through its HTTP API.
package seed

// Category names known to the template table.
const (
	CategoryLaptops     = "Laptops"
	CategorySmartphones = "Smartphones"
	CategoryAccesorios  = "Accesorios"
	CategoryMonitores   = "Monitores"
	CategoryRedes       = "Redes"
	CategoryGaming      = "Gaming"
)

// CategorySpec describes one category to create.
type CategorySpec struct {
	Name        string
	Description string
}

var (
	// FullNames are the users created by SeedUsers. Every entry must have at
	// least a first and a last name.
	FullNames = []string{
		"Diana Avila",
		"Sebastian Cabrera",
		"Claudia Quevedo",
		"Valeria Mantilla",
		"Leonel Messi",
	}

	// Categories are created by SeedCategories in this order.
	Categories = []CategorySpec{
		{Name: CategoryLaptops, Description: "Computadoras portátiles"},
		{Name: CategorySmartphones, Description: "Teléfonos inteligentes"},
		{Name: CategoryAccesorios, Description: "Mouse, teclados y periféricos"},
		{Name: CategoryMonitores, Description: "Pantallas y monitores"},
		{Name: CategoryRedes, Description: "Equipos de red y conectividad"},
		{Name: CategoryGaming, Description: "Equipos para videojuegos"},
	}

	brands = []string{"Lenovo", "HP", "Dell", "Asus", "Samsung", "Logitech", "Apple"}
	specs  = []string{"i5", "i7", "Ryzen7", "16GB", "32GB", "512GB", "1TB"}
)
