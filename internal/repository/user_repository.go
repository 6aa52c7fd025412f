package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/weather-mood/internal/model"
	"github.com/iliyamo/weather-mood/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,username,password_hash,last_login,last_login_lat,last_login_lon,feeling_score"

// Create hashes the password and inserts a user row, returning its ID.
// last_login defaults to the creation time.  A duplicate username maps to
// ErrUsernameExists via the unique constraint, so concurrent
// registrations cannot both succeed.
func (r *UserRepo) Create(ctx context.Context, username, password string, cost int) (uint64, error) {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, last_login) VALUES (?,?,?)",
		username, hash, time.Now().UTC())
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches a user by exact (case-sensitive) username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username=? LIMIT 1", username)
	return scanUser(row)
}

// UpdateLocation overwrites the user's coordinates and refreshes
// last_login unconditionally.
func (r *UserRepo) UpdateLocation(ctx context.Context, id uint64, lat, lon float64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET last_login=?, last_login_lat=?, last_login_lon=? WHERE id=?",
		time.Now().UTC(), lat, lon, id)
	return err
}

// UpdateFeeling overwrites the user's feeling score unconditionally.
func (r *UserRepo) UpdateFeeling(ctx context.Context, id uint64, score int64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET feeling_score=? WHERE id=?", score, id)
	return err
}

// ListNearby returns all users other than the requester whose feeling
// score is set and whose latitude and longitude each lie within maxDelta
// degrees of the requester's coordinates.  This is an axis-aligned
// bounding box, not a radius.  The scan runs without isolation
// guarantees; a concurrent location update may be observed stale.
func (r *UserRepo) ListNearby(ctx context.Context, u model.User, maxDelta float64) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users "+
			"WHERE id<>? AND feeling_score IS NOT NULL "+
			"AND ABS(last_login_lat-?)<=? AND ABS(last_login_lon-?)<=?",
		u.ID, *u.LastLoginLat, maxDelta, *u.LastLoginLon, maxDelta)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		other, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, other)
	}
	return users, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(s rowScanner) (model.User, error) {
	var (
		u     model.User
		lat   sql.NullFloat64
		lon   sql.NullFloat64
		score sql.NullInt64
	)
	err := s.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.LastLogin, &lat, &lon, &score)
	if err != nil {
		return model.User{}, err
	}
	if lat.Valid {
		u.LastLoginLat = &lat.Float64
	}
	if lon.Valid {
		u.LastLoginLon = &lon.Float64
	}
	if score.Valid {
		u.FeelingScore = &score.Int64
	}
	return u, nil
}
