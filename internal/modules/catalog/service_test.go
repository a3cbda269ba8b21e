package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samytrends/retail-api/internal/money"
)

func TestCreateProductValidation(t *testing.T) {
	svc := NewService(NewFixtureRepository())

	cases := []struct {
		name string
		req  ProductRequest
		want string
	}{
		{"missing name", ProductRequest{Category: "Clothing"}, "name is required"},
		{"bad category", ProductRequest{Name: "Socks", Category: "Footwear"}, "invalid category: Footwear"},
		{"negative price", ProductRequest{Name: "Socks", Category: "Clothing", Price: -1}, "price cannot be negative"},
		{"negative stock", ProductRequest{Name: "Socks", Category: "Clothing", Stock: -1}, "stock cannot be negative"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProduct(context.Background(), tc.req)
			assert.EqualError(t, err, tc.want)
		})
	}
}

func TestCreateProductDefaultsMinStock(t *testing.T) {
	svc := NewService(NewFixtureRepository())

	p, err := svc.CreateProduct(context.Background(), ProductRequest{
		Name:     "Linen Kurta",
		Category: "Clothing",
		Price:    money.FromRupeeInt(1899),
		Stock:    40,
		SKU:      "SKU-100",
	})
	require.NoError(t, err)
	assert.Equal(t, 10, p.MinStock)
	assert.NotEqual(t, "", p.ID.String())
}

func TestListProductsFilters(t *testing.T) {
	repo := NewFixtureRepository()
	svc := NewService(repo)

	electronics, err := svc.ListProducts(context.Background(), ListFilter{Category: "Electronics"})
	require.NoError(t, err)
	assert.Len(t, electronics, 3)
	for _, p := range electronics {
		assert.Equal(t, "Electronics", p.Category)
	}

	bySearch, err := svc.ListProducts(context.Background(), ListFilter{Search: "sku-004"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "Premium Running Shoes", bySearch[0].Name)

	byPrice, err := svc.ListProducts(context.Background(), ListFilter{SortBy: "price"})
	require.NoError(t, err)
	require.NotEmpty(t, byPrice)
	for i := 1; i < len(byPrice); i++ {
		assert.LessOrEqual(t, byPrice[i-1].Price, byPrice[i].Price)
	}

	paged, err := svc.ListProducts(context.Background(), ListFilter{Limit: 5, Offset: 10})
	require.NoError(t, err)
	assert.Len(t, paged, 2)
}

func TestUpdateProduct(t *testing.T) {
	repo := NewFixtureRepository()
	svc := NewService(repo)

	products, err := repo.List(context.Background(), ListFilter{Search: "Ceramic Vase"})
	require.NoError(t, err)
	require.Len(t, products, 1)

	updated, err := svc.UpdateProduct(context.Background(), products[0].ID.String(), ProductRequest{
		Name:     "Ceramic Vase Large",
		Category: "Home & Living",
		Price:    money.FromRupeeInt(1599),
		Stock:    18,
		MinStock: 8,
		SKU:      "SKU-011",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ceramic Vase Large", updated.Name)
	assert.Equal(t, money.FromRupeeInt(1599), updated.Price)

	fetched, err := repo.GetByID(context.Background(), products[0].ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Ceramic Vase Large", fetched.Name)
}

func TestDeleteProduct(t *testing.T) {
	repo := NewFixtureRepository()
	svc := NewService(repo)

	products, err := repo.List(context.Background(), ListFilter{Search: "Leather Wallet"})
	require.NoError(t, err)
	require.Len(t, products, 1)

	require.NoError(t, svc.DeleteProduct(context.Background(), products[0].ID.String()))

	_, err = repo.GetByID(context.Background(), products[0].ID.String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSetStockClampsNegative(t *testing.T) {
	repo := NewFixtureRepository()

	products, err := repo.List(context.Background(), ListFilter{Search: "Bluetooth Speaker"})
	require.NoError(t, err)
	require.Len(t, products, 1)

	require.NoError(t, repo.SetStock(context.Background(), products[0].ID.String(), -7))

	p, err := repo.GetByID(context.Background(), products[0].ID.String())
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)
}
