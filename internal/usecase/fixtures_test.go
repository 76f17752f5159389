package usecase

import (
	"testing"

	"github.com/phenrril/fightshop/internal/adapters/repo/memory"
	"github.com/phenrril/fightshop/internal/domain"
)

func fixtureProducts() []domain.Product {
	return []domain.Product{
		{
			ID: "1", Name: "Боксерские перчатки Pro", Price: 4500, Category: "boxing", Brand: "Everlast",
			Sizes: []string{"10 oz", "12 oz", "8 oz"}, InStock: true, Rating: 4.8, Popularity: 95,
			Colors: []domain.ColorVariant{
				{Name: "Красный", Value: "#dc2626", Available: true},
				{Name: "Черный", Value: "#000000", Available: true},
			},
			Images:      []string{"/img/gloves.jpg"},
			Description: "Профессиональные перчатки из натуральной кожи",
		},
		{
			ID: "2", Name: "Перчатки для MMA", Price: 3200, Category: "mma", Brand: "Venum",
			Sizes: []string{"S", "M", "L"}, InStock: true, Rating: 4.6, Popularity: 80, IsNew: true,
			Colors: []domain.ColorVariant{{Name: "Черный", Value: "#111111", Available: true}},
		},
		{
			ID: "3", Name: "Кимоно для карате", Price: 6800, Category: "karate", Brand: "Adidas",
			Sizes: []string{"160", "170", "180"}, InStock: true, Rating: 4.9, Popularity: 70,
			Colors: []domain.ColorVariant{{Name: "Белый", Value: "#ffffff", Available: true}},
		},
		{
			ID: "5", Name: "Боксерские бинты", Price: 800, Category: "boxing", Brand: "Twins",
			InStock: false, Rating: 4.3, Popularity: 60,
			Colors: []domain.ColorVariant{{Name: "Синий", Value: "#2563eb", Available: false}},
		},
		{
			ID: "7", Name: "Костюм для Ушу Таолу", Price: 8900, Category: "wushu-taolu", Brand: "Red Dragon",
			Sizes: []string{"M", "L"}, InStock: true, Rating: 4.7, Popularity: 88, IsNew: true,
		},
	}
}

func newProductUC(t *testing.T) *ProductUC {
	t.Helper()
	return &ProductUC{Products: memory.NewProductRepo(fixtureProducts()...)}
}

func ids(list []domain.Product) []string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, p.ID)
	}
	return out
}
