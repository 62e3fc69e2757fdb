package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Leopold1975/whiskeys_catalog/internal/pkg/pgtools"
	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/domain/models"
	repo "github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/repository/whiskeyrepo"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	tagIDsColumn   = "ARRAY(SELECT wt.tag_id FROM whiskey_tags wt WHERE wt.whiskey_id = w.id ORDER BY wt.tag_id)"
	placeIDsColumn = "ARRAY(SELECT wp.place_id FROM whiskey_places wp WHERE wp.whiskey_id = w.id ORDER BY wp.place_id)"
)

type WhiskeysPostgresRepo struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) WhiskeysPostgresRepo {
	return WhiskeysPostgresRepo{
		db: db,
	}
}

func (wr WhiskeysPostgresRepo) CreateWhiskey(ctx context.Context, //nolint:nonamedreturns
	w models.Whiskey,
) (id int64, err error) {
	tx, err := wr.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("cannot begin transaction error: %w", err)
	}

	defer func() {
		err = pgtools.CommitOrRollback(ctx, tx, err, "create")
	}()

	query, args, err := pgtools.PSQL.Insert("whiskeys").
		Columns("brand", "style", "year", "price", "link", "image", "user_id").
		Values(w.Brand, w.Style, w.Year, w.Price, w.Link, w.Image, w.OwnerID).
		Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, fmt.Errorf("to sql error: %w", err)
	}

	if err = tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("scan error: %w", err)
	}

	if err = setRelations(ctx, tx, id, w.TagIDs, w.PlaceIDs); err != nil {
		return 0, err
	}

	return id, nil
}

// UpdateWhiskey replaces every column and both relation sets of the
// whiskey owned by w.OwnerID.
func (wr WhiskeysPostgresRepo) UpdateWhiskey(ctx context.Context, w models.Whiskey) (err error) { //nolint:nonamedreturns
	tx, err := wr.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("cannot begin transaction error: %w", err)
	}

	defer func() {
		err = pgtools.CommitOrRollback(ctx, tx, err, "update")
	}()

	query, args, err := pgtools.PSQL.Update("whiskeys").
		Set("brand", w.Brand).
		Set("style", w.Style).
		Set("year", w.Year).
		Set("price", w.Price).
		Set("link", w.Link).
		Where(squirrel.Eq{"id": w.ID, "user_id": w.OwnerID}).ToSql()
	if err != nil {
		return fmt.Errorf("to sql error: %w", err)
	}

	ct, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("exec error: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return repo.ErrNotFound
	}

	for _, rel := range []string{"whiskey_tags", "whiskey_places"} {
		query, args, err = pgtools.PSQL.Delete(rel).Where(squirrel.Eq{"whiskey_id": w.ID}).ToSql()
		if err != nil {
			return fmt.Errorf("to sql error: %w", err)
		}

		if _, err = tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("exec error: %w", err)
		}
	}

	return setRelations(ctx, tx, w.ID, w.TagIDs, w.PlaceIDs)
}

// SetImage points the whiskey at a new image and returns the previous one.
func (wr WhiskeysPostgresRepo) SetImage(ctx context.Context, //nolint:nonamedreturns
	ownerID, id int64, image string,
) (previous string, err error) {
	tx, err := wr.db.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("cannot begin transaction error: %w", err)
	}

	defer func() {
		err = pgtools.CommitOrRollback(ctx, tx, err, "set image")
	}()

	query, args, err := pgtools.PSQL.Select("image").
		From("whiskeys").
		Where(squirrel.Eq{"id": id, "user_id": ownerID}).
		Suffix("FOR UPDATE").ToSql()
	if err != nil {
		return "", fmt.Errorf("to sql error: %w", err)
	}

	if err = tx.QueryRow(ctx, query, args...).Scan(&previous); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", repo.ErrNotFound
		}

		return "", fmt.Errorf("scan error: %w", err)
	}

	query, args, err = pgtools.PSQL.Update("whiskeys").
		Set("image", image).
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return "", fmt.Errorf("to sql error: %w", err)
	}

	if _, err = tx.Exec(ctx, query, args...); err != nil {
		return "", fmt.Errorf("exec error: %w", err)
	}

	return previous, nil
}

func (wr WhiskeysPostgresRepo) GetWhiskey(ctx context.Context, ownerID, id int64) (models.Whiskey, error) {
	whiskeys, err := wr.query(ctx, selectWhiskeys().
		Where(squirrel.Eq{"w.user_id": ownerID, "w.id": id}))
	if err != nil {
		return models.Whiskey{}, err
	}

	if len(whiskeys) == 0 {
		return models.Whiskey{}, repo.ErrNotFound
	}

	return whiskeys[0], nil
}

func (wr WhiskeysPostgresRepo) ListWhiskeys(ctx context.Context, req repo.ListRequest) ([]models.Whiskey, error) {
	sb := selectWhiskeys().Where(squirrel.Eq{"w.user_id": req.OwnerID})

	if len(req.TagIDs) != 0 {
		sb = sb.Where("EXISTS (SELECT 1 FROM whiskey_tags ft WHERE ft.whiskey_id = w.id AND ft.tag_id = ANY(?))",
			req.TagIDs)
	}

	if len(req.PlaceIDs) != 0 {
		sb = sb.Where("EXISTS (SELECT 1 FROM whiskey_places fp WHERE fp.whiskey_id = w.id AND fp.place_id = ANY(?))",
			req.PlaceIDs)
	}

	return wr.query(ctx, sb.OrderBy("w.id DESC"))
}

func selectWhiskeys() squirrel.SelectBuilder {
	return pgtools.PSQL.Select("w.id", "w.brand", "w.style", "w.year", "w.price", "w.link", "w.image", "w.user_id",
		tagIDsColumn, placeIDsColumn).
		From("whiskeys w")
}

func (wr WhiskeysPostgresRepo) query(ctx context.Context, sb squirrel.SelectBuilder) ([]models.Whiskey, error) {
	query, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("to sql error: %w", err)
	}

	rows, err := wr.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	whiskeys := make([]models.Whiskey, 0, 10) //nolint:gomnd

	for rows.Next() {
		var w models.Whiskey

		err = rows.Scan(&w.ID, &w.Brand, &w.Style, &w.Year, &w.Price, &w.Link, &w.Image, &w.OwnerID,
			&w.TagIDs, &w.PlaceIDs)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}

		whiskeys = append(whiskeys, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return whiskeys, nil
}

func setRelations(ctx context.Context, tx pgx.Tx, whiskeyID int64, tagIDs, placeIDs []int64) error {
	if err := insertRelation(ctx, tx, "whiskey_tags", "tag_id", "tags", whiskeyID, tagIDs); err != nil {
		return err
	}

	return insertRelation(ctx, tx, "whiskey_places", "place_id", "places", whiskeyID, placeIDs)
}

func insertRelation(ctx context.Context, tx pgx.Tx, table, column, field string, whiskeyID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	ib := pgtools.PSQL.Insert(table).Columns("whiskey_id", column)
	for _, id := range ids {
		ib = ib.Values(whiskeyID, id)
	}

	query, args, err := ib.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("to sql error: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		if pgtools.PgErrorCode(err) == pgtools.CodeForeignKeyViolation {
			return repo.ReferenceError{Field: field}
		}

		return fmt.Errorf("exec error: %w", err)
	}

	return nil
}
