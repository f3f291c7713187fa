// Package service contains the domain logic layered between handlers and repositories.
package service

import (
	"time"

	"menuboard/internal/models"
)

// RetractionWindow is how long after creation a device may delete its own
// forum content.
const RetractionWindow = 30 * time.Minute

// AuthorizeRetraction decides whether the requesting device may delete a
// forum record it claims to own. Callers resolve the record first, so absence
// is reported as NotFound before this runs; here the order is ownership, then
// time window, which keeps error precedence deterministic (a stranger probing
// an expired record sees Forbidden, never Expired).
//
// ownerDeviceID is nil on rows that predate the device_id column; those rows
// never match any requester.
func AuthorizeRetraction(ownerDeviceID *string, createdAt int64, requesterDeviceID string, now time.Time) error {
	if ownerDeviceID == nil || *ownerDeviceID != requesterDeviceID {
		return models.NewForbiddenError("You can only delete your own content")
	}

	if now.Unix()-createdAt > int64(RetractionWindow.Seconds()) {
		return models.NewExpiredError("Content can no longer be deleted 30 minutes after creation")
	}

	return nil
}
