package rbac

// Default role policy. Coordinators, rectors, and admins are the
// administrative actors that may lock and unlock gradebooks; a plain
// instructor may edit content but never toggle the lock.
var RolePermissions = map[string][]string{
	"student": {
		"reports:view-own",
	},
	"teacher": {
		"gradebook:view",
		"gradebook:edit",
		"reports:view",
		"roster:view",
	},
	"coordinator": {
		"gradebook:*",
		"reports:*",
		"roster:view",
	},
	"rector": {
		"gradebook:*",
		"reports:*",
		"roster:*",
	},
	"admin": {
		"*", // everything
	},
}
