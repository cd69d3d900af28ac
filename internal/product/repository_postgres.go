package product

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	listProductsQuery = `
		SELECT "productId", "productName", "productDesc", "productPrice", category, "productImg", stock, "createdAt"
		FROM products
		ORDER BY "productId"
	`
	listByCategoryQuery = `
		SELECT "productId", "productName", "productDesc", "productPrice", category, "productImg", stock, "createdAt"
		FROM products
		WHERE category = $1
		ORDER BY "productId"
	`
	getProductQuery = `
		SELECT "productId", "productName", "productDesc", "productPrice", category, "productImg", stock, "createdAt"
		FROM products
		WHERE "productId" = $1
	`
	insertProductQuery = `
		INSERT INTO products ("productName", "productDesc", "productPrice", category, "productImg", stock, "createdAt")
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING "productId"
	`
	updateProductQuery = `
		UPDATE products
		SET "productName" = $1,
			"productDesc" = $2,
			"productPrice" = $3,
			category = $4,
			"productImg" = $5,
			stock = $6
		WHERE "productId" = $7
	`
	deleteProductQuery = `DELETE FROM products WHERE "productId" = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() []Product {
	return r.queryMany(listProductsQuery)
}

func (r *PostgresRepository) ListByCategory(category string) []Product {
	return r.queryMany(listByCategoryQuery, category)
}

func (r *PostgresRepository) queryMany(query string, args ...any) []Product {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return []Product{}
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(getProductQuery, id))
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	err := r.db.QueryRow(insertProductQuery,
		p.Name, p.Description, p.Price, p.Category, p.Image, p.Stock, p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	res, err := r.db.Exec(updateProductQuery,
		p.Name, p.Description, p.Price, p.Category, p.Image, p.Stock, id)
	if err != nil {
		return Product{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Product{}, ErrNotFound
	}
	p.ID = id
	return p, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(deleteProductQuery, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	var image sql.NullString
	var createdAt sql.NullString
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &image, &p.Stock, &createdAt)
	if err != nil {
		return Product{}, err
	}
	if image.Valid {
		p.Image = &image.String
	}
	p.CreatedAt = createdAt.String
	return p, nil
}
