package service

import "giphyexplorer/internal/microservices/http-api/apperror"

// CheckOwnership is the single capability check for mutating a user-owned
// record: only the owner may do it. action completes "Not authorized to ...".
func CheckOwnership(ownerID, callerID, action string) error {
	if callerID == "" || ownerID != callerID {
		return apperror.NewForbidden("Not authorized to " + action)
	}
	return nil
}
