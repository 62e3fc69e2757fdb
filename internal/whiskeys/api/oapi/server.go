package oapi

import (
	_ "embed"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

//go:embed openapi.yaml
var spec []byte

// Spec returns the OpenAPI document the routes below are built from.
func Spec() []byte {
	return spec
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Register a user
	// (POST /user)
	PostUser(w http.ResponseWriter, r *http.Request)
	// Obtain a token
	// (POST /auth)
	PostAuth(w http.ResponseWriter, r *http.Request)
	// Revoke the presented token
	// (DELETE /auth)
	DeleteAuth(w http.ResponseWriter, r *http.Request, params DeleteAuthParams)
	// List the requester's tags
	// (GET /tags)
	GetTags(w http.ResponseWriter, r *http.Request, params GetTagsParams)
	// Create a tag
	// (POST /tags)
	PostTags(w http.ResponseWriter, r *http.Request, params PostTagsParams)
	// List the requester's places
	// (GET /places)
	GetPlaces(w http.ResponseWriter, r *http.Request, params GetPlacesParams)
	// Create a place
	// (POST /places)
	PostPlaces(w http.ResponseWriter, r *http.Request, params PostPlacesParams)
	// List the requester's whiskeys filtered by tags and places
	// (GET /whiskeys)
	GetWhiskeys(w http.ResponseWriter, r *http.Request, params GetWhiskeysParams)
	// Create a whiskey
	// (POST /whiskeys)
	PostWhiskeys(w http.ResponseWriter, r *http.Request, params PostWhiskeysParams)
	// Retrieve a whiskey
	// (GET /whiskeys/{id})
	GetWhiskeysId(w http.ResponseWriter, r *http.Request, id int64, params GetWhiskeysIdParams) //nolint:revive,stylecheck
	// Replace a whiskey
	// (PUT /whiskeys/{id})
	PutWhiskeysId(w http.ResponseWriter, r *http.Request, id int64, params PutWhiskeysIdParams) //nolint:revive,stylecheck
	// Partially update a whiskey
	// (PATCH /whiskeys/{id})
	PatchWhiskeysId(w http.ResponseWriter, r *http.Request, id int64, params PatchWhiskeysIdParams) //nolint:revive,stylecheck
	// Upload a whiskey image
	// (POST /whiskeys/{id}/upload-image)
	PostWhiskeysIdUploadImage(w http.ResponseWriter, r *http.Request, id int64, //nolint:revive,stylecheck
		params PostWhiskeysIdUploadImageParams)
	// API document
	// (GET /docs)
	GetDocs(w http.ResponseWriter, r *http.Request)
}

// ServerInterfaceWrapper converts contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

type MiddlewareFunc func(http.Handler) http.Handler

// PostUser operation middleware.
func (siw *ServerInterfaceWrapper) PostUser(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.PostUser(w, r)
	})
}

// PostAuth operation middleware.
func (siw *ServerInterfaceWrapper) PostAuth(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.PostAuth(w, r)
	})
}

// DeleteAuth operation middleware.
func (siw *ServerInterfaceWrapper) DeleteAuth(w http.ResponseWriter, r *http.Request) {
	var params DeleteAuthParams

	if !siw.bindAuthorization(w, r, &params.Authorization) {
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.DeleteAuth(w, r, params)
	})
}

// GetTags operation middleware.
func (siw *ServerInterfaceWrapper) GetTags(w http.ResponseWriter, r *http.Request) {
	var params GetTagsParams

	if !siw.bindQuery(w, r, "assigned_only", &params.AssignedOnly) ||
		!siw.bindAuthorization(w, r, &params.Authorization) {
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetTags(w, r, params)
	})
}

// PostTags operation middleware.
func (siw *ServerInterfaceWrapper) PostTags(w http.ResponseWriter, r *http.Request) {
	var params PostTagsParams

	if !siw.bindAuthorization(w, r, &params.Authorization) {
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.PostTags(w, r, params)
	})
}

// GetPlaces operation middleware.
func (siw *ServerInterfaceWrapper) GetPlaces(w http.ResponseWriter, r *http.Request) {
	var params GetPlacesParams

	if !siw.bindQuery(w, r, "assigned_only", &params.AssignedOnly) ||
		!siw.bindAuthorization(w, r, &params.Authorization) {
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetPlaces(w, r, params)
	})
}

// PostPlaces operation middleware.
func (siw *ServerInterfaceWrapper) PostPlaces(w http.ResponseWriter, r *http.Request) {
	var params PostPlacesParams

	if !siw.bindAuthorization(w, r, &params.Authorization) {
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.PostPlaces(w, r, params)
	})
}

// GetWhiskeys operation middleware.
func (siw *ServerInterfaceWrapper) GetWhiskeys(w http.ResponseWriter, r *http.Request) {
	var params GetWhiskeysParams

	if !siw.bindQuery(w, r, "tags", &params.Tags) ||
		!siw.bindQuery(w, r, "places", &params.Places) ||
		!siw.bindAuthorization(w, r, &params.Authorization) {
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetWhiskeys(w, r, params)
	})
}

// PostWhiskeys operation middleware.
func (siw *ServerInterfaceWrapper) PostWhiskeys(w http.ResponseWriter, r *http.Request) {
	var params PostWhiskeysParams

	if !siw.bindAuthorization(w, r, &params.Authorization) {
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.PostWhiskeys(w, r, params)
	})
}

// GetWhiskeysId operation middleware.
func (siw *ServerInterfaceWrapper) GetWhiskeysId(w http.ResponseWriter, r *http.Request) { //nolint:revive,stylecheck
	var params GetWhiskeysIdParams

	id, ok := siw.bindID(w, r)
	if !ok || !siw.bindAuthorization(w, r, &params.Authorization) {
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetWhiskeysId(w, r, id, params)
	})
}

// PutWhiskeysId operation middleware.
func (siw *ServerInterfaceWrapper) PutWhiskeysId(w http.ResponseWriter, r *http.Request) { //nolint:revive,stylecheck
	var params PutWhiskeysIdParams

	id, ok := siw.bindID(w, r)
	if !ok || !siw.bindAuthorization(w, r, &params.Authorization) {
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.PutWhiskeysId(w, r, id, params)
	})
}

// PatchWhiskeysId operation middleware.
func (siw *ServerInterfaceWrapper) PatchWhiskeysId(w http.ResponseWriter, r *http.Request) { //nolint:revive,stylecheck
	var params PatchWhiskeysIdParams

	id, ok := siw.bindID(w, r)
	if !ok || !siw.bindAuthorization(w, r, &params.Authorization) {
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.PatchWhiskeysId(w, r, id, params)
	})
}

// PostWhiskeysIdUploadImage operation middleware.
func (siw *ServerInterfaceWrapper) PostWhiskeysIdUploadImage(w http.ResponseWriter, r *http.Request) { //nolint:revive,stylecheck,lll
	var params PostWhiskeysIdUploadImageParams

	id, ok := siw.bindID(w, r)
	if !ok || !siw.bindAuthorization(w, r, &params.Authorization) {
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.PostWhiskeysIdUploadImage(w, r, id, params)
	})
}

// GetDocs operation middleware.
func (siw *ServerInterfaceWrapper) GetDocs(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.GetDocs)
}

func (siw *ServerInterfaceWrapper) serve(w http.ResponseWriter, r *http.Request, h http.HandlerFunc) {
	var handler http.Handler = h

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r)
}

// bindID binds the "id" path parameter.
func (siw *ServerInterfaceWrapper) bindID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	var id int64

	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "id", Err: err})

		return 0, false
	}

	return id, true
}

// bindQuery binds an optional form-style query parameter.
func (siw *ServerInterfaceWrapper) bindQuery(w http.ResponseWriter, r *http.Request, name string, dest **string) bool {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: name, Err: err})

		return false
	}

	return true
}

// bindAuthorization binds the optional "Authorization" header.
func (siw *ServerInterfaceWrapper) bindAuthorization(w http.ResponseWriter, r *http.Request, dest **string) bool {
	valueList, found := r.Header[http.CanonicalHeaderKey("Authorization")]
	if !found {
		return true
	}

	if n := len(valueList); n != 1 {
		siw.ErrorHandlerFunc(w, r, &TooManyValuesForParamError{ParamName: "Authorization", Count: n})

		return false
	}

	var authorization string

	err := runtime.BindStyledParameterWithOptions("simple", "Authorization", valueList[0], &authorization,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: false})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "Authorization", Err: err})

		return false
	}

	*dest = &authorization

	return true
}

type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

type TooManyValuesForParamError struct {
	ParamName string
	Count     int
}

func (e *TooManyValuesForParamError) Error() string {
	return fmt.Sprintf("Expected one value for %s, got %d", e.ParamName, e.Count)
}

type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// Handler creates http.Handler with routing matching OpenAPI spec.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{}) //nolint:exhaustruct
}

// HandlerWithOptions creates http.Handler with additional options.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}

	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}

	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandlerFunc:   options.ErrorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/user", wrapper.PostUser)
		r.Post(options.BaseURL+"/auth", wrapper.PostAuth)
		r.Delete(options.BaseURL+"/auth", wrapper.DeleteAuth)
		r.Get(options.BaseURL+"/tags", wrapper.GetTags)
		r.Post(options.BaseURL+"/tags", wrapper.PostTags)
		r.Get(options.BaseURL+"/places", wrapper.GetPlaces)
		r.Post(options.BaseURL+"/places", wrapper.PostPlaces)
		r.Get(options.BaseURL+"/whiskeys", wrapper.GetWhiskeys)
		r.Post(options.BaseURL+"/whiskeys", wrapper.PostWhiskeys)
		r.Get(options.BaseURL+"/whiskeys/{id}", wrapper.GetWhiskeysId)
		r.Put(options.BaseURL+"/whiskeys/{id}", wrapper.PutWhiskeysId)
		r.Patch(options.BaseURL+"/whiskeys/{id}", wrapper.PatchWhiskeysId)
		r.Post(options.BaseURL+"/whiskeys/{id}/upload-image", wrapper.PostWhiskeysIdUploadImage)
		r.Get(options.BaseURL+"/docs", wrapper.GetDocs)
	})

	return r
}
