package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/feastline/feastline-backend/api/middleware"
	pkgerrors "github.com/feastline/feastline-backend/pkg/errors"
)

// actorID extracts the authenticated actor's uuid from the request context.
func actorID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.ActorIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "actor identity missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid actor id")
	}
	return id, nil
}
