//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Leopold1975/whiskeys_catalog/internal/pkg/config"
	"github.com/Leopold1975/whiskeys_catalog/internal/pkg/pgtools"
	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/domain/models"
	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/repository/attrrepo"
	ar "github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/repository/attrrepo/postgres"
	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/repository/userrepo"
	ur "github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/repository/userrepo/postgres"
	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/repository/whiskeyrepo"
	wr "github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/repository/whiskeyrepo/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type RepoSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *pgxpool.Pool
	users     ur.UsersPostgresRepo
	tags      ar.AttributesPostgresRepo
	places    ar.AttributesPostgresRepo
	whiskeys  wr.WhiskeysPostgresRepo
	alice     models.Requester
	bob       models.Requester
}

func (rs *RepoSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("catalog"),
		postgres.WithUsername("whiskey"),
		postgres.WithPassword("whiskey"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	rs.Require().NoError(err)
	rs.container = container

	addr, err := container.Endpoint(ctx, "")
	rs.Require().NoError(err)

	cfg := config.PostgresDB{
		Addr:     addr,
		Username: "whiskey",
		Password: "whiskey",
		DB:       "catalog",
		SSLmode:  "disable",
		MaxConns: "5",
	}

	rs.Require().NoError(pgtools.ApplyMigration(ctx, cfg))

	rs.db, err = pgtools.Connect(ctx, cfg.ConnString())
	rs.Require().NoError(err)

	rs.users = ur.New(rs.db)
	rs.whiskeys = wr.New(rs.db)

	rs.tags, err = ar.New(rs.db, models.KindTag)
	rs.Require().NoError(err)

	rs.places, err = ar.New(rs.db, models.KindPlace)
	rs.Require().NoError(err)
}

func (rs *RepoSuite) TearDownSuite() {
	if rs.db != nil {
		rs.db.Close()
	}

	if rs.container != nil {
		if err := rs.container.Terminate(context.Background()); err != nil {
			rs.T().Logf("terminate container error: %v", err)
		}
	}
}

func (rs *RepoSuite) SetupTest() {
	_, err := rs.db.Exec(context.Background(), "TRUNCATE users RESTART IDENTITY CASCADE")
	rs.Require().NoError(err)

	rs.alice = rs.createUser("alice")
	rs.bob = rs.createUser("bob")
}

func (rs *RepoSuite) createUser(name string) models.Requester {
	id, err := rs.users.CreateUser(context.Background(), models.User{Username: name, PasswordHash: "hash"})
	rs.Require().NoError(err)

	return models.Requester{UserID: id, Username: name}
}

func (rs *RepoSuite) createAttr(repo ar.AttributesPostgresRepo, kind models.AttributeKind,
	owner models.Requester, name string,
) int64 {
	a, err := models.NewAttribute(kind, owner, name)
	rs.Require().NoError(err)

	id, err := repo.CreateAttribute(context.Background(), a)
	rs.Require().NoError(err)

	return id
}

func (rs *RepoSuite) createWhiskey(owner models.Requester, brand string, tags, places []int64) int64 {
	w, err := models.NewWhiskey(owner, brand, "Whiskey")
	rs.Require().NoError(err)

	w.TagIDs = tags
	w.PlaceIDs = places

	id, err := rs.whiskeys.CreateWhiskey(context.Background(), w)
	rs.Require().NoError(err)

	return id
}

func names(attrs []models.Attribute) []string {
	res := make([]string, 0, len(attrs))
	for _, a := range attrs {
		res = append(res, a.Name)
	}

	return res
}

func (rs *RepoSuite) TestUsers() {
	ctx := context.Background()

	_, err := rs.users.CreateUser(ctx, models.User{Username: "alice", PasswordHash: "other"})
	rs.Require().ErrorIs(err, userrepo.ErrAlreadyExists)

	u, err := rs.users.GetUser(ctx, "alice")
	rs.Require().NoError(err)
	rs.Require().Equal(rs.alice.UserID, u.ID)
	rs.Require().Equal("hash", u.PasswordHash)

	_, err = rs.users.GetUser(ctx, "nobody")
	rs.Require().ErrorIs(err, userrepo.ErrNotFound)
}

func (rs *RepoSuite) TestListAttributesOrderAndIsolation() {
	ctx := context.Background()

	rs.createAttr(rs.tags, models.KindTag, rs.alice, "Bourbon")
	rs.createAttr(rs.tags, models.KindTag, rs.alice, "Smoky")
	rs.createAttr(rs.tags, models.KindTag, rs.bob, "Peaty")

	tags, err := rs.tags.ListAttributes(ctx, attrrepo.ListRequest{OwnerID: rs.alice.UserID})
	rs.Require().NoError(err)
	rs.Require().Equal([]string{"Smoky", "Bourbon"}, names(tags))

	places, err := rs.places.ListAttributes(ctx, attrrepo.ListRequest{OwnerID: rs.alice.UserID})
	rs.Require().NoError(err)
	rs.Require().Empty(places)
}

func (rs *RepoSuite) TestAssignedOnlyIsDistinct() {
	ctx := context.Background()

	assigned := rs.createAttr(rs.places, models.KindPlace, rs.alice, "Dublin")
	rs.createAttr(rs.places, models.KindPlace, rs.alice, "Cork")

	rs.createWhiskey(rs.alice, "Jameson", nil, []int64{assigned})
	rs.createWhiskey(rs.alice, "Powers", nil, []int64{assigned})

	places, err := rs.places.ListAttributes(ctx, attrrepo.ListRequest{OwnerID: rs.alice.UserID, AssignedOnly: true})
	rs.Require().NoError(err)
	rs.Require().Equal([]string{"Dublin"}, names(places))

	all, err := rs.places.ListAttributes(ctx, attrrepo.ListRequest{OwnerID: rs.alice.UserID})
	rs.Require().NoError(err)
	rs.Require().Len(all, 2)
}

func (rs *RepoSuite) TestFilterAndIsolation() {
	ctx := context.Background()

	t1 := rs.createAttr(rs.tags, models.KindTag, rs.alice, "Smoky")
	t2 := rs.createAttr(rs.tags, models.KindTag, rs.alice, "Sweet")
	p1 := rs.createAttr(rs.places, models.KindPlace, rs.alice, "Bar")

	w1 := rs.createWhiskey(rs.alice, "Laphroaig", []int64{t1}, []int64{p1})
	w2 := rs.createWhiskey(rs.alice, "Maker's Mark", []int64{t2}, nil)
	w3 := rs.createWhiskey(rs.alice, "Glenfiddich", nil, nil)
	rs.createWhiskey(rs.bob, "Bob's", []int64{t1}, nil)

	all, err := rs.whiskeys.ListWhiskeys(ctx, whiskeyrepo.ListRequest{OwnerID: rs.alice.UserID})
	rs.Require().NoError(err)
	rs.Require().Len(all, 3)
	rs.Require().Equal([]int64{w3, w2, w1}, []int64{all[0].ID, all[1].ID, all[2].ID})

	byTags, err := rs.whiskeys.ListWhiskeys(ctx, whiskeyrepo.ListRequest{
		OwnerID: rs.alice.UserID,
		TagIDs:  []int64{t1, t2},
	})
	rs.Require().NoError(err)
	rs.Require().Len(byTags, 2)

	both, err := rs.whiskeys.ListWhiskeys(ctx, whiskeyrepo.ListRequest{
		OwnerID:  rs.alice.UserID,
		TagIDs:   []int64{t1, t2},
		PlaceIDs: []int64{p1},
	})
	rs.Require().NoError(err)
	rs.Require().Len(both, 1)
	rs.Require().Equal(w1, both[0].ID)
	rs.Require().Equal([]int64{t1}, both[0].TagIDs)
	rs.Require().Equal([]int64{p1}, both[0].PlaceIDs)

	_, err = rs.whiskeys.GetWhiskey(ctx, rs.bob.UserID, w1)
	rs.Require().ErrorIs(err, whiskeyrepo.ErrNotFound)
}

func (rs *RepoSuite) TestUpdateReplacesRelations() {
	ctx := context.Background()

	t1 := rs.createAttr(rs.tags, models.KindTag, rs.alice, "Smoky")
	t2 := rs.createAttr(rs.tags, models.KindTag, rs.alice, "Sweet")

	id := rs.createWhiskey(rs.alice, "Jack Daniels", []int64{t1}, nil)

	w, err := rs.whiskeys.GetWhiskey(ctx, rs.alice.UserID, id)
	rs.Require().NoError(err)

	year, price := 2010, 25.5
	w.Year = &year
	w.Price = &price
	w.TagIDs = []int64{t2}

	rs.Require().NoError(rs.whiskeys.UpdateWhiskey(ctx, w))

	got, err := rs.whiskeys.GetWhiskey(ctx, rs.alice.UserID, id)
	rs.Require().NoError(err)
	rs.Require().Equal([]int64{t2}, got.TagIDs)
	rs.Require().Equal(2010, *got.Year)
	rs.Require().InDelta(25.5, *got.Price, 0.001)

	got.TagIDs = nil
	rs.Require().NoError(rs.whiskeys.UpdateWhiskey(ctx, got))

	cleared, err := rs.whiskeys.GetWhiskey(ctx, rs.alice.UserID, id)
	rs.Require().NoError(err)
	rs.Require().Empty(cleared.TagIDs)

	foreign := got
	foreign.OwnerID = rs.bob.UserID
	rs.Require().ErrorIs(rs.whiskeys.UpdateWhiskey(ctx, foreign), whiskeyrepo.ErrNotFound)

	got.TagIDs = []int64{9999}
	err = rs.whiskeys.UpdateWhiskey(ctx, got)
	rs.Require().True(errors.Is(err, whiskeyrepo.ErrInvalidReference), err)

	var ref whiskeyrepo.ReferenceError
	rs.Require().True(errors.As(err, &ref), err)
	rs.Require().Equal("tags", ref.Field)

	got.TagIDs = nil
	got.PlaceIDs = []int64{9999}
	err = rs.whiskeys.UpdateWhiskey(ctx, got)
	rs.Require().True(errors.As(err, &ref), err)
	rs.Require().Equal("places", ref.Field)
}

func (rs *RepoSuite) TestSetImage() {
	ctx := context.Background()

	id := rs.createWhiskey(rs.alice, "Jack Daniels", nil, nil)

	previous, err := rs.whiskeys.SetImage(ctx, rs.alice.UserID, id, "whiskeys/a.png")
	rs.Require().NoError(err)
	rs.Require().Empty(previous)

	previous, err = rs.whiskeys.SetImage(ctx, rs.alice.UserID, id, "whiskeys/b.png")
	rs.Require().NoError(err)
	rs.Require().Equal("whiskeys/a.png", previous)

	_, err = rs.whiskeys.SetImage(ctx, rs.bob.UserID, id, "whiskeys/c.png")
	rs.Require().ErrorIs(err, whiskeyrepo.ErrNotFound)

	w, err := rs.whiskeys.GetWhiskey(ctx, rs.alice.UserID, id)
	rs.Require().NoError(err)
	rs.Require().Equal("whiskeys/b.png", w.Image)
}

func (rs *RepoSuite) TestGetAttributesIgnoresOwner() {
	ctx := context.Background()

	mine := rs.createAttr(rs.tags, models.KindTag, rs.alice, "Mine")
	theirs := rs.createAttr(rs.tags, models.KindTag, rs.bob, "Theirs")

	attrs, err := rs.tags.GetAttributes(ctx, []int64{theirs, mine, 12345})
	rs.Require().NoError(err)
	rs.Require().Equal([]string{"Mine", "Theirs"}, names(attrs))
}

func TestRepoSuite(t *testing.T) {
	suite.Run(t, new(RepoSuite))
}
