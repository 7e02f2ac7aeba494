package action

import (
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/dispatch"
)

// Permission returns the permission a command needs. ok is false for
// entity types that have no handler.
func Permission(entityType string, kind dispatch.Kind) (perm user.Permission, ok bool) {
	switch entityType {
	case EntityUser:
		return user.PermissionUserManage, true
	case EntityTimesheet:
		if kind == dispatch.KindApprove || kind == dispatch.KindReject {
			return user.PermissionTimesheetApprove, true
		}
		return user.PermissionTimesheetManage, true
	case EntityLeave:
		if kind == dispatch.KindApprove || kind == dispatch.KindReject {
			return user.PermissionLeaveApprove, true
		}
		return user.PermissionLeaveManage, true
	}
	return "", false
}

// Authorize reports whether role may issue kind on entityType.
func Authorize(role user.Role, entityType string, kind dispatch.Kind) bool {
	perm, ok := Permission(entityType, kind)
	if !ok {
		// unknown types fail later with ErrUnknownEntity
		return true
	}
	return user.HasPermission(role, perm)
}
