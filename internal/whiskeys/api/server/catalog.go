package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/api/oapi"
	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/domain/models"
	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/services/attrservice"
	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/services/whiskeyservice"
)

// multipartMemory bounds the part of a form kept in memory.
const multipartMemory = 32 << 20

// List the requester's tags
// (GET /tags).
func (s *Server) GetTags(w http.ResponseWriter, r *http.Request, params oapi.GetTagsParams) {
	s.listAttributes(w, r, s.tags, params.Authorization, params.AssignedOnly)
}

// Create a tag
// (POST /tags).
func (s *Server) PostTags(w http.ResponseWriter, r *http.Request, params oapi.PostTagsParams) {
	s.createAttribute(w, r, s.tags, params.Authorization)
}

// List the requester's places
// (GET /places).
func (s *Server) GetPlaces(w http.ResponseWriter, r *http.Request, params oapi.GetPlacesParams) {
	s.listAttributes(w, r, s.places, params.Authorization, params.AssignedOnly)
}

// Create a place
// (POST /places).
func (s *Server) PostPlaces(w http.ResponseWriter, r *http.Request, params oapi.PostPlacesParams) {
	s.createAttribute(w, r, s.places, params.Authorization)
}

func (s *Server) listAttributes(w http.ResponseWriter, r *http.Request,
	svc AttributeService, authorization, assignedOnly *string,
) {
	requester, ok := s.authenticate(w, r, authorization)
	if !ok {
		return
	}

	var req attrservice.ListRequest

	if v := strings.TrimSpace(deref(assignedOnly)); v != "" {
		flag, err := strconv.ParseBool(v)
		if err != nil {
			s.handleError(w, models.NewValidationError("assigned_only", "Must be one of 0, 1, true, false."))

			return
		}

		req.AssignedOnly = flag
	}

	attrs, err := svc.ListAttributes(r.Context(), requester, req)
	if err != nil {
		s.handleError(w, fmt.Errorf("list attributes error: %w", err))

		return
	}

	s.respond(w, http.StatusOK, attributeReprs(attrs))
}

func (s *Server) createAttribute(w http.ResponseWriter, r *http.Request, svc AttributeService, authorization *string) {
	requester, ok := s.authenticate(w, r, authorization)
	if !ok {
		return
	}

	var b oapi.AttributeCreate

	if err := decode(r, &b); err != nil {
		s.handleError(w, err)

		return
	}

	a, err := svc.CreateAttribute(r.Context(), requester, attrservice.CreateRequest{Name: deref(b.Name)})
	if err != nil {
		s.handleError(w, fmt.Errorf("create attribute error: %w", err))

		return
	}

	s.respond(w, http.StatusCreated, attributeRepr(a))
}

// List the requester's whiskeys filtered by tags and places
// (GET /whiskeys).
func (s *Server) GetWhiskeys(w http.ResponseWriter, r *http.Request, params oapi.GetWhiskeysParams) {
	requester, ok := s.authenticate(w, r, params.Authorization)
	if !ok {
		return
	}

	var (
		req whiskeyservice.ListRequest
		err error
	)

	if req.Tags, err = parseIDs("tags", deref(params.Tags)); err != nil {
		s.handleError(w, err)

		return
	}

	if req.Places, err = parseIDs("places", deref(params.Places)); err != nil {
		s.handleError(w, err)

		return
	}

	whiskeys, err := s.whiskeys.ListWhiskeys(r.Context(), requester, req)
	if err != nil {
		s.handleError(w, fmt.Errorf("list whiskeys error: %w", err))

		return
	}

	s.respond(w, http.StatusOK, whiskeySummaries(whiskeys))
}

// Create a whiskey
// (POST /whiskeys).
func (s *Server) PostWhiskeys(w http.ResponseWriter, r *http.Request, params oapi.PostWhiskeysParams) {
	requester, ok := s.authenticate(w, r, params.Authorization)
	if !ok {
		return
	}

	var b oapi.PostWhiskeysJSONBody

	if err := decode(r, &b); err != nil {
		s.handleError(w, err)

		return
	}

	wh, err := s.whiskeys.CreateWhiskey(r.Context(), requester, whiskeyservice.CreateRequest{
		Brand:  deref(b.Brand),
		Style:  deref(b.Style),
		Year:   b.Year,
		Price:  b.Price,
		Link:   deref(b.Link),
		Tags:   deref(b.Tags),
		Places: deref(b.Places),
	})
	if err != nil {
		s.handleError(w, fmt.Errorf("create whiskey error: %w", err))

		return
	}

	s.respond(w, http.StatusCreated, whiskeySummary(wh))
}

// Retrieve a whiskey
// (GET /whiskeys/{id}).
func (s *Server) GetWhiskeysId(w http.ResponseWriter, r *http.Request, id int64, //nolint:revive,stylecheck
	params oapi.GetWhiskeysIdParams,
) {
	requester, ok := s.authenticate(w, r, params.Authorization)
	if !ok {
		return
	}

	d, err := s.whiskeys.GetWhiskey(r.Context(), requester, id)
	if err != nil {
		s.handleError(w, fmt.Errorf("get whiskey error: %w", err))

		return
	}

	s.respond(w, http.StatusOK, whiskeyDetail(d))
}

// Replace a whiskey
// (PUT /whiskeys/{id}).
func (s *Server) PutWhiskeysId(w http.ResponseWriter, r *http.Request, id int64, //nolint:revive,stylecheck
	params oapi.PutWhiskeysIdParams,
) {
	s.updateWhiskey(w, r, id, params.Authorization, false)
}

// Partially update a whiskey
// (PATCH /whiskeys/{id}).
func (s *Server) PatchWhiskeysId(w http.ResponseWriter, r *http.Request, id int64, //nolint:revive,stylecheck
	params oapi.PatchWhiskeysIdParams,
) {
	s.updateWhiskey(w, r, id, params.Authorization, true)
}

func (s *Server) updateWhiskey(w http.ResponseWriter, r *http.Request, id int64, authorization *string, partial bool) {
	requester, ok := s.authenticate(w, r, authorization)
	if !ok {
		return
	}

	var b oapi.WhiskeyWrite

	if err := decode(r, &b); err != nil {
		s.handleError(w, err)

		return
	}

	wh, err := s.whiskeys.UpdateWhiskey(r.Context(), requester, id, whiskeyservice.UpdateRequest{
		Brand:  b.Brand,
		Style:  b.Style,
		Year:   b.Year,
		Price:  b.Price,
		Link:   b.Link,
		Tags:   b.Tags,
		Places: b.Places,
	}, partial)
	if err != nil {
		s.handleError(w, fmt.Errorf("update whiskey error: %w", err))

		return
	}

	s.respond(w, http.StatusOK, whiskeySummary(wh))
}

// Upload a whiskey image
// (POST /whiskeys/{id}/upload-image).
func (s *Server) PostWhiskeysIdUploadImage(w http.ResponseWriter, r *http.Request, id int64, //nolint:revive,stylecheck
	params oapi.PostWhiskeysIdUploadImageParams,
) {
	requester, ok := s.authenticate(w, r, params.Authorization)
	if !ok {
		return
	}

	data, err := s.readImage(w, r)
	if err != nil {
		s.handleError(w, err)

		return
	}

	wh, err := s.whiskeys.AttachImage(r.Context(), requester, id, data)
	if err != nil {
		s.handleError(w, fmt.Errorf("attach image error: %w", err))

		return
	}

	s.respond(w, http.StatusOK, whiskeyImage(wh, s.media.URL(wh.Image)))
}

// readImage returns the "image" part of a multipart form.
func (s *Server) readImage(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxImage+multipartMemory)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return nil, fmt.Errorf("%w: parse form error: %w", ErrBadRequest, err)
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, models.NewValidationError("image", "No file was submitted.")
		}

		return nil, fmt.Errorf("%w: form file error: %w", ErrBadRequest, err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.maxImage+1))
	if err != nil {
		return nil, fmt.Errorf("read image error: %w", err)
	}

	if int64(len(data)) > s.maxImage {
		return nil, models.NewValidationError("image", "The submitted file is too large.")
	}

	return data, nil
}

// parseIDs reads a comma separated id list such as "1, 2".
func parseIDs(param, value string) ([]int64, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	parts := strings.Split(value, ",")
	res := make([]int64, 0, len(parts))

	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, models.NewValidationError(param, fmt.Sprintf("%q is not a valid id.", strings.TrimSpace(p)))
		}

		res = append(res, id)
	}

	return res, nil
}
