package attrservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/domain/models"
	repo "github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/repository/attrrepo"
	"github.com/Leopold1975/whiskeys_catalog/pkg/logger"
)

// AttributeService lists and creates the attributes of one kind owned by
// the requester.
type AttributeService struct {
	kind models.AttributeKind
	repo Repository
	v    Validator
	lg   logger.Logger
}

type Repository interface {
	CreateAttribute(context.Context, models.Attribute) (int64, error)
	ListAttributes(context.Context, repo.ListRequest) ([]models.Attribute, error)
}

type Validator interface {
	Validate(interface{}) error
}

func New(kind models.AttributeKind, r Repository, v Validator, lg logger.Logger) *AttributeService {
	return &AttributeService{
		kind: kind,
		repo: r,
		v:    v,
		lg:   lg,
	}
}

func (as *AttributeService) Kind() models.AttributeKind {
	return as.kind
}

// ListAttributes returns the requester's attributes, by name descending.
func (as *AttributeService) ListAttributes(ctx context.Context,
	requester models.Requester, req ListRequest,
) ([]models.Attribute, error) {
	attrs, err := as.repo.ListAttributes(ctx, repo.ListRequest{
		OwnerID:      requester.UserID,
		AssignedOnly: req.AssignedOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("list %ss error: %w", as.kind, err)
	}

	return attrs, nil
}

func (as *AttributeService) CreateAttribute(ctx context.Context,
	requester models.Requester, req CreateRequest,
) (models.Attribute, error) {
	req.Name = strings.TrimSpace(req.Name)

	if err := as.v.Validate(req); err != nil {
		return models.Attribute{}, err //nolint:wrapcheck
	}

	a, err := models.NewAttribute(as.kind, requester, req.Name)
	if err != nil {
		return models.Attribute{}, err
	}

	a.ID, err = as.repo.CreateAttribute(ctx, a)
	if err != nil {
		return models.Attribute{}, fmt.Errorf("create %s error: %w", as.kind, err)
	}

	as.lg.Debugf("user %d created %s %d %q", requester.UserID, as.kind, a.ID, a.Name)

	return a, nil
}
