package service

import "github.com/MKhiriev/go-video-tube/models"

// AuthorizeOwnership allows the action only when identity owns the resource.
// Callers check that the resource exists first, so a missing resource is
// reported as NotFound and never as Forbidden.
func AuthorizeOwnership(identity models.Identity, ownerID string) error {
	if identity.UserID == "" || identity.UserID != ownerID {
		return ErrForbidden
	}
	return nil
}

// AuthorizeSelfExclusion rejects an edge from an account to itself with
// rejection, which should be of kind InvalidOperation.
func AuthorizeSelfExclusion(identity models.Identity, targetID string, rejection error) error {
	if identity.UserID == targetID {
		return rejection
	}
	return nil
}
