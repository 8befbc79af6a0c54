package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexivanou/cityinfo-api/internal/model"
	"github.com/alexivanou/cityinfo-api/internal/paging"
	"github.com/jmoiron/sqlx"
)

type pgCityRepository struct {
	db *sqlx.DB
}

func cityFilterPg(params paging.Params) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if params.HasName() {
		args = append(args, params.Name)
		conds = append(conds, fmt.Sprintf("name = $%d", len(args)))
	}
	if params.HasSearch() {
		term := "%" + strings.ToLower(params.SearchQuery) + "%"
		args = append(args, term)
		n := len(args)
		conds = append(conds, fmt.Sprintf("(LOWER(name) LIKE $%d OR (description IS NOT NULL AND LOWER(description) LIKE $%d))", n, n))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *pgCityRepository) ListCities(ctx context.Context, params paging.Params) ([]model.City, int, error) {
	where, args := cityFilterPg(params)

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM cities"+where, args...); err != nil {
		return nil, 0, err
	}

	pageArgs := append(args, params.PageSize, params.Offset())
	q := fmt.Sprintf(
		"SELECT id, name, description FROM cities%s ORDER BY name LIMIT $%d OFFSET $%d",
		where, len(pageArgs)-1, len(pageArgs))

	cities := []model.City{}
	if err := r.db.SelectContext(ctx, &cities, q, pageArgs...); err != nil {
		return nil, 0, err
	}
	return cities, total, nil
}

func (r *pgCityRepository) GetCity(ctx context.Context, id int) (*model.City, error) {
	var city model.City
	if err := r.db.GetContext(ctx, &city, "SELECT id, name, description FROM cities WHERE id = $1", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &city, nil
}

func (r *pgCityRepository) CityExists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM cities WHERE id = $1)", id)
	return exists, err
}

func (r *pgCityRepository) CityNameForID(ctx context.Context, id int) (string, error) {
	var name string
	if err := r.db.GetContext(ctx, &name, "SELECT name FROM cities WHERE id = $1", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return name, nil
}

func (r *pgCityRepository) InsertCity(ctx context.Context, city *model.City) error {
	return r.db.GetContext(ctx, &city.ID,
		"INSERT INTO cities (name, description) VALUES ($1, $2) RETURNING id",
		city.Name, city.Description)
}

type pgPointRepository struct {
	db *sqlx.DB
}

func (r *pgPointRepository) ListForCity(ctx context.Context, cityID int) ([]model.PointOfInterest, error) {
	points := []model.PointOfInterest{}
	q := "SELECT id, city_id, name, description FROM points_of_interest WHERE city_id = $1 ORDER BY id"
	if err := r.db.SelectContext(ctx, &points, q, cityID); err != nil {
		return nil, err
	}
	return points, nil
}

func (r *pgPointRepository) GetForCity(ctx context.Context, cityID, pointID int) (*model.PointOfInterest, error) {
	var point model.PointOfInterest
	q := "SELECT id, city_id, name, description FROM points_of_interest WHERE city_id = $1 AND id = $2"
	if err := r.db.GetContext(ctx, &point, q, cityID, pointID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &point, nil
}

func (r *pgPointRepository) CountForCity(ctx context.Context, cityID int) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM points_of_interest WHERE city_id = $1", cityID)
	return count, err
}

func (r *pgPointRepository) Add(ctx context.Context, cityID int, point *model.PointOfInterest) error {
	err := r.db.GetContext(ctx, &point.ID,
		"INSERT INTO points_of_interest (city_id, name, description) VALUES ($1, $2, $3) RETURNING id",
		cityID, point.Name, point.Description)
	if err != nil {
		return err
	}
	point.CityID = cityID
	return nil
}

func (r *pgPointRepository) Update(ctx context.Context, point model.PointOfInterest) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE points_of_interest SET name = $1, description = $2 WHERE city_id = $3 AND id = $4",
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

func (r *pgPointRepository) Delete(ctx context.Context, cityID, pointID int) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM points_of_interest WHERE city_id = $1 AND id = $2",
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
