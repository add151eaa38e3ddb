// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/remark/internal/platform/apperr"
	"github.com/taibuivan/remark/internal/platform/ctxutil"
	"github.com/taibuivan/remark/internal/platform/i18n"
	"github.com/taibuivan/remark/internal/platform/sec"
	"github.com/taibuivan/remark/internal/platform/validate"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 64 << 10

/*
DecodeJSON reads the request body and decodes it into the target structure.

Returns:
  - error: a localized validation error if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	ctx := request.Context()
	decoder := json.NewDecoder(http.MaxBytesReader(nil, request.Body, maxBodyBytes))

	if err := decoder.Decode(target); err != nil {
		var typeError *json.UnmarshalTypeError
		if errors.As(err, &typeError) && typeError.Field != "" {
			v := validate.ForContext(ctx)
			return v.Custom(typeError.Field, true, v.T(i18n.MsgInvalidType, typeError.Type.Kind().String(), typeError.Value)).Err()
		}
		return validate.InvalidJSON(ctx)
	}

	// Exactly one JSON value per body.
	if err := decoder.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		return validate.InvalidJSON(ctx)
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Identity extracts the verified identity from the request context.

Returns nil if the request is not authenticated.
*/
func Identity(request *http.Request) *sec.Identity {
	return ctxutil.GetIdentity(request.Context())
}

/*
RequiredIdentity ensures the request is authenticated and returns the identity.

Returns:
  - *sec.Identity: The verified identity
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredIdentity(request *http.Request) (*sec.Identity, error) {
	identity := ctxutil.GetIdentity(request.Context())
	if identity == nil {
		return nil, apperr.Unauthorized(i18n.PrinterFromContext(request.Context()).Sprintf(i18n.MsgAuthRequired))
	}
	return identity, nil
}
