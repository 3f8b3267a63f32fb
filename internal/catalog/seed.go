package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/fairyhunter13/pos-checkout-simulator/internal/model"
)

// Seed returns the built-in catalog snapshot the service starts from.
func Seed() []model.Product {
	price := decimal.RequireFromString
	return []model.Product{
		{ID: 1, Name: "Café molido 500g", UnitPrice: price("3250.00"), Stock: 24},
		{ID: 2, Name: "Pan baguette", UnitPrice: price("950.00"), Stock: 40},
		{ID: 3, Name: "Leche entera 1L", UnitPrice: price("1150.00"), Stock: 36},
		{ID: 4, Name: "Queso Turrialba 400g", UnitPrice: price("2875.50"), Stock: 15},
		{ID: 5, Name: "Arroz 1.8kg", UnitPrice: price("1990.00"), Stock: 50},
		{ID: 6, Name: "Frijoles negros 900g", UnitPrice: price("1425.00"), Stock: 44},
		{ID: 7, Name: "Aceite de girasol 900ml", UnitPrice: price("2390.00"), Stock: 18},
		{ID: 8, Name: "Azúcar 2kg", UnitPrice: price("1680.00"), Stock: 30},
		{ID: 9, Name: "Galletas surtidas", UnitPrice: price("1200.00"), Stock: 60},
		{ID: 10, Name: "Agua mineral 600ml", UnitPrice: price("650.00"), Stock: 120},
	}
}
