package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/alexivanou/cityinfo-api/internal/model"
	"github.com/alexivanou/cityinfo-api/internal/paging"
	"github.com/jmoiron/sqlx"
)

type sqliteCityRepository struct {
	db *sqlx.DB
}

// cityFilter builds the WHERE clause shared by the count and page queries.
// SQLite's LIKE is case-insensitive only for ASCII, so both sides are lowered
// explicitly to match the postgres implementation.
func cityFilterSQLite(params paging.Params) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if params.HasName() {
		conds = append(conds, "name = ?")
		args = append(args, params.Name)
	}
	if params.HasSearch() {
		conds = append(conds, "(LOWER(name) LIKE ? OR (description IS NOT NULL AND LOWER(description) LIKE ?))")
		term := "%" + strings.ToLower(params.SearchQuery) + "%"
		args = append(args, term, term)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *sqliteCityRepository) ListCities(ctx context.Context, params paging.Params) ([]model.City, int, error) {
	where, args := cityFilterSQLite(params)

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM cities"+where, args...); err != nil {
		return nil, 0, err
	}

	q := "SELECT id, name, description FROM cities" + where + " ORDER BY name LIMIT ? OFFSET ?"
	pageArgs := append(args, params.PageSize, params.Offset())

	cities := []model.City{}
	if err := r.db.SelectContext(ctx, &cities, q, pageArgs...); err != nil {
		return nil, 0, err
	}
	return cities, total, nil
}

func (r *sqliteCityRepository) GetCity(ctx context.Context, id int) (*model.City, error) {
	var city model.City
	if err := r.db.GetContext(ctx, &city, "SELECT id, name, description FROM cities WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &city, nil
}

func (r *sqliteCityRepository) CityExists(ctx context.Context, id int) (bool, error) {
	var exists int
	err := r.db.GetContext(ctx, &exists, "SELECT COUNT(*) FROM cities WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (r *sqliteCityRepository) CityNameForID(ctx context.Context, id int) (string, error) {
	var name string
	if err := r.db.GetContext(ctx, &name, "SELECT name FROM cities WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return name, nil
}

func (r *sqliteCityRepository) InsertCity(ctx context.Context, city *model.City) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO cities (name, description) VALUES (?, ?)",
		city.Name, city.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	city.ID = int(id)
	return nil
}

type sqlitePointRepository struct {
	db *sqlx.DB
}

func (r *sqlitePointRepository) ListForCity(ctx context.Context, cityID int) ([]model.PointOfInterest, error) {
	points := []model.PointOfInterest{}
	q := "SELECT id, city_id, name, description FROM points_of_interest WHERE city_id = ? ORDER BY id"
	if err := r.db.SelectContext(ctx, &points, q, cityID); err != nil {
		return nil, err
	}
	return points, nil
}

func (r *sqlitePointRepository) GetForCity(ctx context.Context, cityID, pointID int) (*model.PointOfInterest, error) {
	var point model.PointOfInterest
	q := "SELECT id, city_id, name, description FROM points_of_interest WHERE city_id = ? AND id = ?"
	if err := r.db.GetContext(ctx, &point, q, cityID, pointID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &point, nil
}

func (r *sqlitePointRepository) CountForCity(ctx context.Context, cityID int) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM points_of_interest WHERE city_id = ?", cityID)
	return count, err
}

func (r *sqlitePointRepository) Add(ctx context.Context, cityID int, point *model.PointOfInterest) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO points_of_interest (city_id, name, description) VALUES (?, ?, ?)",
		cityID, point.Name, point.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	point.ID = int(id)
	point.CityID = cityID
	return nil
}

func (r *sqlitePointRepository) Update(ctx context.Context, point model.PointOfInterest) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE points_of_interest SET name = ?, description = ? WHERE city_id = ? AND id = ?",
		point.Name, point.Description, point.CityID, point.ID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *sqlitePointRepository) Delete(ctx context.Context, cityID, pointID int) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM points_of_interest WHERE city_id = ? AND id = ?",
		cityID, pointID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
