package whiskeyservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/domain/models"
	repo "github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/repository/whiskeyrepo"
	"github.com/Leopold1975/whiskeys_catalog/pkg/logger"
)

type WhiskeyService struct {
	whiskeys Repository
	tags     Attributes
	places   Attributes
	images   ImageStore
	v        Validator
	lg       logger.Logger
}

type Repository interface {
	CreateWhiskey(context.Context, models.Whiskey) (int64, error)
	UpdateWhiskey(context.Context, models.Whiskey) error
	SetImage(ctx context.Context, ownerID, id int64, image string) (string, error)
	GetWhiskey(ctx context.Context, ownerID, id int64) (models.Whiskey, error)
	ListWhiskeys(context.Context, repo.ListRequest) ([]models.Whiskey, error)
}

// Attributes resolves tag or place ids regardless of their owner.
type Attributes interface {
	GetAttributes(context.Context, []int64) ([]models.Attribute, error)
}

type ImageStore interface {
	Detect(data []byte) (string, error)
	Save(data []byte, format string) (string, error)
	Delete(name string) error
}

type Validator interface {
	Validate(interface{}) error
}

func New(whiskeys Repository, tags, places Attributes, images ImageStore,
	v Validator, lg logger.Logger,
) *WhiskeyService {
	return &WhiskeyService{
		whiskeys: whiskeys,
		tags:     tags,
		places:   places,
		images:   images,
		v:        v,
		lg:       lg,
	}
}

// ListWhiskeys returns the requester's whiskeys, newest first. Non-empty
// Tags or Places keep only whiskeys related to at least one of the ids.
func (ws *WhiskeyService) ListWhiskeys(ctx context.Context,
	requester models.Requester, req ListRequest,
) ([]models.Whiskey, error) {
	whiskeys, err := ws.whiskeys.ListWhiskeys(ctx, repo.ListRequest{
		OwnerID:  requester.UserID,
		TagIDs:   unique(req.Tags),
		PlaceIDs: unique(req.Places),
	})
	if err != nil {
		return nil, fmt.Errorf("list whiskeys error: %w", err)
	}

	return whiskeys, nil
}

func (ws *WhiskeyService) GetWhiskey(ctx context.Context,
	requester models.Requester, id int64,
) (models.WhiskeyDetail, error) {
	w, err := ws.get(ctx, requester, id)
	if err != nil {
		return models.WhiskeyDetail{}, err
	}

	tags, err := ws.tags.GetAttributes(ctx, w.TagIDs)
	if err != nil {
		return models.WhiskeyDetail{}, fmt.Errorf("get tags error: %w", err)
	}

	places, err := ws.places.GetAttributes(ctx, w.PlaceIDs)
	if err != nil {
		return models.WhiskeyDetail{}, fmt.Errorf("get places error: %w", err)
	}

	return models.WhiskeyDetail{
		Whiskey: w,
		Tags:    tags,
		Places:  places,
	}, nil
}

func (ws *WhiskeyService) CreateWhiskey(ctx context.Context,
	requester models.Requester, req CreateRequest,
) (models.Whiskey, error) {
	w, err := ws.build(ctx, requester, req)
	if err != nil {
		return models.Whiskey{}, err
	}

	w.ID, err = ws.whiskeys.CreateWhiskey(ctx, w)
	if err != nil {
		return models.Whiskey{}, ws.writeError("create", err)
	}

	return w, nil
}

// UpdateWhiskey overwrites the whiskey with req. A partial update keeps
// the fields req does not carry; a full one resets them, relations
// included.
func (ws *WhiskeyService) UpdateWhiskey(ctx context.Context,
	requester models.Requester, id int64, req UpdateRequest, partial bool,
) (models.Whiskey, error) {
	existing, err := ws.get(ctx, requester, id)
	if err != nil {
		return models.Whiskey{}, err
	}

	var state CreateRequest
	if partial {
		state = fromWhiskey(existing)
	}

	req.apply(&state)

	w, err := ws.build(ctx, requester, state)
	if err != nil {
		return models.Whiskey{}, err
	}

	w.ID = existing.ID
	w.Image = existing.Image

	if err := ws.whiskeys.UpdateWhiskey(ctx, w); err != nil {
		return models.Whiskey{}, ws.writeError("update", err)
	}

	return w, nil
}

func (ws *WhiskeyService) get(ctx context.Context, requester models.Requester, id int64) (models.Whiskey, error) {
	w, err := ws.whiskeys.GetWhiskey(ctx, requester.UserID, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return models.Whiskey{}, models.ErrNotFound
		}

		return models.Whiskey{}, fmt.Errorf("get whiskey error: %w", err)
	}

	return w, nil
}

// build validates req and turns it into a whiskey owned by requester.
func (ws *WhiskeyService) build(ctx context.Context,
	requester models.Requester, req CreateRequest,
) (models.Whiskey, error) {
	req.Brand = strings.TrimSpace(req.Brand)
	req.Style = strings.TrimSpace(req.Style)
	req.Link = strings.TrimSpace(req.Link)
	req.Tags = unique(req.Tags)
	req.Places = unique(req.Places)

	if err := ws.v.Validate(req); err != nil {
		return models.Whiskey{}, err //nolint:wrapcheck
	}

	if err := ws.checkReferences(ctx, req); err != nil {
		return models.Whiskey{}, err
	}

	w, err := models.NewWhiskey(requester, req.Brand, req.Style)
	if err != nil {
		return models.Whiskey{}, err
	}

	w.Year = req.Year
	w.Price = req.Price
	w.Link = req.Link
	w.TagIDs = req.Tags
	w.PlaceIDs = req.Places

	return w, nil
}

func (ws *WhiskeyService) checkReferences(ctx context.Context, req CreateRequest) error {
	var verr models.ValidationError

	for _, ref := range []struct {
		field string
		ids   []int64
		attrs Attributes
	}{
		{"tags", req.Tags, ws.tags},
		{"places", req.Places, ws.places},
	} {
		if len(ref.ids) == 0 {
			continue
		}

		found, err := ref.attrs.GetAttributes(ctx, ref.ids)
		if err != nil {
			return fmt.Errorf("get %s error: %w", ref.field, err)
		}

		if missing, ok := firstMissing(ref.ids, found); ok {
			verr = verr.With(ref.field, fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", missing))
		}
	}

	if len(verr.Fields) != 0 {
		return verr
	}

	return nil
}

// writeError maps repository write failures. A relation removed between
// the reference check and the write still surfaces as a validation error
// on the relation that failed.
func (ws *WhiskeyService) writeError(op string, err error) error {
	var ref repo.ReferenceError

	switch {
	case errors.Is(err, repo.ErrNotFound):
		return models.ErrNotFound
	case errors.As(err, &ref):
		return models.NewValidationError(ref.Field, "Referenced object does not exist.")
	case errors.Is(err, repo.ErrInvalidReference):
		return models.NewValidationError("non_field_errors", "Referenced tag or place does not exist.")
	default:
		return fmt.Errorf("%s whiskey error: %w", op, err)
	}
}

func (r UpdateRequest) apply(state *CreateRequest) {
	if r.Brand != nil {
		state.Brand = *r.Brand
	}

	if r.Style != nil {
		state.Style = *r.Style
	}

	if r.Year != nil {
		state.Year = r.Year
	}

	if r.Price != nil {
		state.Price = r.Price
	}

	if r.Link != nil {
		state.Link = *r.Link
	}

	if r.Tags != nil {
		state.Tags = *r.Tags
	}

	if r.Places != nil {
		state.Places = *r.Places
	}
}

func fromWhiskey(w models.Whiskey) CreateRequest {
	return CreateRequest{
		Brand:  w.Brand,
		Style:  w.Style,
		Year:   w.Year,
		Price:  w.Price,
		Link:   w.Link,
		Tags:   w.TagIDs,
		Places: w.PlaceIDs,
	}
}

func firstMissing(ids []int64, found []models.Attribute) (int64, bool) {
	known := make(map[int64]struct{}, len(found))
	for _, a := range found {
		known[a.ID] = struct{}{}
	}

	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return id, true
		}
	}

	return 0, false
}

// unique drops repeated ids keeping the first occurrence; nil becomes empty.
func unique(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	res := make([]int64, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		res = append(res, id)
	}

	return res
}
