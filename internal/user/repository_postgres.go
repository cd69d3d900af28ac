package user

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
	listUsersQuery = `
		SELECT "userId", username, email, password, "isAdmin", phone, address, city, state, "createdAt"
		FROM users
		ORDER BY "userId"
	`
	getUserByIDQuery = `
		SELECT "userId", username, email, password, "isAdmin", phone, address, city, state, "createdAt"
		FROM users
		WHERE "userId" = $1
	`
	getUserByEmailQuery = `
		SELECT "userId", username, email, password, "isAdmin", phone, address, city, state, "createdAt"
		FROM users
		WHERE email = $1
	`
	getUserByUsernameQuery = `
		SELECT "userId", username, email, password, "isAdmin", phone, address, city, state, "createdAt"
		FROM users
		WHERE username = $1
	`
	insertUserQuery = `
		INSERT INTO users (username, email, password, "isAdmin", phone, address, city, state, "createdAt")
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING "userId"
	`
	updateUserQuery = `
		UPDATE users
		SET username = $1,
			email = $2,
			phone = $3,
			address = $4,
			city = $5,
			state = $6
		WHERE "userId" = $7
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() []User {
	rows, err := r.db.Query(listUsersQuery)
	if err != nil {
		return []User{}
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			continue
		}
		users = append(users, user)
	}

	return users
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	return r.getOne(getUserByIDQuery, id)
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	return r.getOne(getUserByEmailQuery, email)
}

func (r *PostgresRepository) GetByUsername(username string) (User, error) {
	return r.getOne(getUserByUsernameQuery, username)
}

func (r *PostgresRepository) getOne(query string, arg any) (User, error) {
	user, err := scanUser(r.db.QueryRow(query, arg))
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (r *PostgresRepository) Create(user User) (User, error) {
	err := r.db.QueryRow(insertUserQuery,
		user.Username, user.Email, user.Password, user.IsAdmin,
		user.Phone, user.Address, user.City, user.State, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (r *PostgresRepository) Update(id int, user User) (User, error) {
	res, err := r.db.Exec(updateUserQuery,
		user.Username, user.Email, user.Phone, user.Address, user.City, user.State, id)
	if err != nil {
		return User{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return User{}, ErrNotFound
	}
	return r.GetByID(id)
}

func scanUser(row rowScanner) (User, error) {
	var user User
	var phone, address, city, state, createdAt sql.NullString
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Password, &user.IsAdmin,
		&phone, &address, &city, &state, &createdAt)
	if err != nil {
		return User{}, err
	}
	user.Phone = phone.String
	user.Address = address.String
	user.City = city.String
	user.State = state.String
	user.CreatedAt = createdAt.String
	return user, nil
}
