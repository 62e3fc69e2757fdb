package postgres

import (
	"context"
	"fmt"

	"github.com/Leopold1975/whiskeys_catalog/internal/pkg/pgtools"
	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/domain/models"
	repo "github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/repository/attrrepo"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

type table struct {
	name      string
	relation  string
	relColumn string
}

var tables = map[models.AttributeKind]table{ //nolint:gochecknoglobals
	models.KindTag:   {name: "tags", relation: "whiskey_tags", relColumn: "tag_id"},
	models.KindPlace: {name: "places", relation: "whiskey_places", relColumn: "place_id"},
}

// AttributesPostgresRepo stores one attribute kind: tags or places.
type AttributesPostgresRepo struct {
	db   *pgxpool.Pool
	kind models.AttributeKind
	t    table
}

func New(db *pgxpool.Pool, kind models.AttributeKind) (AttributesPostgresRepo, error) {
	t, ok := tables[kind]
	if !ok {
		return AttributesPostgresRepo{}, fmt.Errorf("unknown attribute kind %q", kind) //nolint:goerr113
	}

	return AttributesPostgresRepo{
		db:   db,
		kind: kind,
		t:    t,
	}, nil
}

func (ar AttributesPostgresRepo) CreateAttribute(ctx context.Context, //nolint:nonamedreturns
	a models.Attribute,
) (id int64, err error) {
	tx, err := ar.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("cannot begin transaction error: %w", err)
	}

	defer func() {
		err = pgtools.CommitOrRollback(ctx, tx, err, "create")
	}()

	query, args, err := pgtools.PSQL.Insert(ar.t.name).
		Columns("name", "user_id").
		Values(a.Name, a.OwnerID).
		Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, fmt.Errorf("to sql error: %w", err)
	}

	if err = tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("scan error: %w", err)
	}

	return id, nil
}

func (ar AttributesPostgresRepo) ListAttributes(ctx context.Context,
	req repo.ListRequest,
) ([]models.Attribute, error) {
	sb := pgtools.PSQL.Select("a.id", "a.name", "a.user_id").
		From(ar.t.name + " a").
		Where(squirrel.Eq{"a.user_id": req.OwnerID})

	if req.AssignedOnly {
		// EXISTS instead of a join keeps every attribute once.
		sb = sb.Where(fmt.Sprintf("EXISTS (SELECT 1 FROM %s r WHERE r.%s = a.id)", ar.t.relation, ar.t.relColumn))
	}

	sb = sb.OrderBy("a.name DESC", "a.id DESC")

	return ar.query(ctx, sb)
}

// GetAttributes returns the attributes with the given ids regardless of owner,
// ordered by id. Unknown ids are skipped.
func (ar AttributesPostgresRepo) GetAttributes(ctx context.Context, ids []int64) ([]models.Attribute, error) {
	if len(ids) == 0 {
		return []models.Attribute{}, nil
	}

	sb := pgtools.PSQL.Select("a.id", "a.name", "a.user_id").
		From(ar.t.name + " a").
		Where("a.id = ANY(?)", ids).
		OrderBy("a.id ASC")

	return ar.query(ctx, sb)
}

func (ar AttributesPostgresRepo) query(ctx context.Context, sb squirrel.SelectBuilder) ([]models.Attribute, error) {
	query, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("to sql error: %w", err)
	}

	rows, err := ar.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	attrs := make([]models.Attribute, 0, 10) //nolint:gomnd

	for rows.Next() {
		a := models.Attribute{Kind: ar.kind} //nolint:exhaustruct

		if err := rows.Scan(&a.ID, &a.Name, &a.OwnerID); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}

		attrs = append(attrs, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return attrs, nil
}
