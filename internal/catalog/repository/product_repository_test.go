package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/machbazar/storefront/internal/catalog/domain"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Discard,
	})
	require.NoError(t, err)
	return db, mock
}

const everyFilterWhere = `WHERE published = \$1 AND fish_type = \$2 AND fish_size_kg = \$3 ` +
	`AND \$4 = ANY\(cutting_sizes\) AND source = \$5 ` +
	`AND sale_price >= \$6 AND sale_price <= \$7 AND stock_kg > 0 ` +
	`AND \(name_en ILIKE \$8 OR name_bn ILIKE \$9 OR fish_type ILIKE \$10\)`

func TestSearch_AppliesEveryFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormProductRepository(db)

	minPrice, maxPrice := 100.0, 500.0
	filter := domain.ProductFilter{
		FishType:    "carp",
		FishSizeKg:  "1-2",
		CuttingSize: "medium",
		Source:      "river",
		Search:      " 50%_off ",
		MinPrice:    &minPrice,
		MaxPrice:    &maxPrice,
		InStockOnly: true,
		Sort:        domain.ResolveSort(domain.SortPriceAsc),
		Limit:       12,
		Offset:      12,
	}

	pattern := `%50\%\_off%`
	args := []driver.Value{true, "carp", "1-2", "medium", "river", 100.0, 500.0, pattern, pattern, pattern}

	mock.ExpectQuery(`^SELECT count\(\*\) FROM "products" ` + everyFilterWhere + `$`).
		WithArgs(args...).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(13))
	mock.ExpectQuery(`^SELECT \* FROM "products" ` + everyFilterWhere + ` ORDER BY "sale_price",id LIMIT \$11 OFFSET \$12$`).
		WithArgs(append(args, 12, 12)...).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "slug", "sale_price"}).AddRow("rui", "rui", 450))

	products, total, err := repo.Search(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, int64(13), total)
	require.Len(t, products, 1)
	assert.Equal(t, "rui", products[0].ProductID)
	assert.Equal(t, 450.0, products[0].SalePrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearch_SortKeys(t *testing.T) {
	tests := []struct {
		key     string
		orderBy string
	}{
		{domain.SortPriceAsc, `"sale_price",id`},
		{domain.SortPriceDesc, `"sale_price" DESC,id`},
		{domain.SortPopular, `"sold_count" DESC,id`},
		{domain.SortRating, `"rating" DESC,id`},
		{domain.SortNewest, `"created_at" DESC,id`},
		{domain.SortFeatured, `"featured" DESC,"sold_count" DESC,id`},
		{"", `"featured" DESC,"sold_count" DESC,id`},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewGormProductRepository(db)

			mock.ExpectQuery(`^SELECT count\(\*\) FROM "products" WHERE published = \$1$`).
				WithArgs(true).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
			mock.ExpectQuery(`^SELECT \* FROM "products" WHERE published = \$1 ORDER BY `+tt.orderBy+` LIMIT \$2$`).
				WithArgs(true, 12).
				WillReturnRows(sqlmock.NewRows([]string{"product_id"}).AddRow("rui"))

			_, _, err := repo.Search(context.Background(), domain.ProductFilter{
				Sort:  domain.ResolveSort(tt.key),
				Limit: 12,
			})
			require.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSearch_EmptyResultSkipsPageQuery(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormProductRepository(db)

	mock.ExpectQuery(`^SELECT count\(\*\) FROM "products" WHERE published = \$1 AND fish_type = \$2$`).
		WithArgs(true, "shark").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	products, total, err := repo.Search(context.Background(), domain.ProductFilter{FishType: "shark", Limit: 12})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, products)
	assert.Empty(t, products)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearch_CountFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormProductRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "products"`).WillReturnError(errors.New("connection reset"))

	_, _, err := repo.Search(context.Background(), domain.ProductFilter{Limit: 12})
	assert.ErrorContains(t, err, "failed to count products")
}

func TestFacets(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormProductRepository(db)

	distinct := func(column string, values ...string) {
		rows := sqlmock.NewRows([]string{column})
		for _, v := range values {
			rows.AddRow(v)
		}
		mock.ExpectQuery(`^SELECT DISTINCT "` + column + `" FROM "products" WHERE published = \$1 AND ` +
			column + ` <> '' ORDER BY ` + column + `$`).
			WithArgs(true).
			WillReturnRows(rows)
	}
	distinct("fish_type", "carp", "prawn")
	distinct("fish_size_kg", "1-2")
	distinct("source")
	mock.ExpectQuery(`^SELECT DISTINCT size FROM products, unnest\(cutting_sizes\) AS size\s+` +
		`WHERE published = true AND size <> '' ORDER BY size$`).
		WillReturnRows(sqlmock.NewRows([]string{"size"}).AddRow("large").AddRow("medium"))
	mock.ExpectQuery(`^SELECT COALESCE\(MIN\(sale_price\), 0\) AS min, COALESCE\(MAX\(sale_price\), 0\) AS max ` +
		`FROM "products" WHERE published = \$1$`).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"min", "max"}).AddRow(250, 1800))

	facets, err := repo.Facets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"carp", "prawn"}, facets.FishTypes)
	assert.Equal(t, []string{"1-2"}, facets.FishSizes)
	assert.Empty(t, facets.Sources)
	assert.Equal(t, []string{"large", "medium"}, facets.CuttingSizes)
	assert.Equal(t, domain.PriceRange{Min: 250, Max: 1800}, facets.PriceRange)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordSale(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormProductRepository(db)

	query := `^UPDATE "products" SET "sold_count"=sold_count \+ \$1,"stock_kg"=GREATEST\(stock_kg - \$2, 0\),` +
		`"updated_at"=\$3 WHERE product_id = \$4$`
	mock.ExpectExec(query).
		WithArgs(1.5, 1.5, sqlmock.AnyArg(), "rui").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(query).
		WithArgs(1.0, 1.0, sqlmock.AnyArg(), "gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.RecordSale(context.Background(), "rui", 1.5))
	assert.ErrorIs(t, repo.RecordSale(context.Background(), "gone", 1), domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%\_off \\ rui`, escapeLike(`50%_off \ rui`))
}
